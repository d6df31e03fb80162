// Package config loads and persists the monitor's yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sf044/vitalsync/internal/adapters/demo"
	"github.com/sf044/vitalsync/internal/domain"
)

type Config struct {
	Demo      demo.Config             `yaml:"demo"`
	Settings  domain.ProviderSettings `yaml:"settings"`
	Channels  ChannelsConfig          `yaml:"channels"`
	Alarms    []AlarmOverride         `yaml:"alarms"`
	Journal   JournalConfig           `yaml:"journal"`
	Timescale TimescaleConfig         `yaml:"timescale"`
	Metrics   MetricsConfig           `yaml:"metrics"`
	Render    RenderConfig            `yaml:"render"`
}

// ChannelsConfig selects which channels are shown. Empty lists keep the
// built-in defaults.
type ChannelsConfig struct {
	Waveforms  []string `yaml:"waveforms"`
	Parameters []string `yaml:"parameters"`
}

// AlarmOverride replaces the default alarm limits of one parameter.
type AlarmOverride struct {
	Parameter    string  `yaml:"parameter"`
	LowCritical  float64 `yaml:"low_critical"`
	LowWarning   float64 `yaml:"low_warning"`
	HighWarning  float64 `yaml:"high_warning"`
	HighCritical float64 `yaml:"high_critical"`
	Disabled     bool    `yaml:"disabled"`
}

type JournalConfig struct {
	Dir string `yaml:"dir"`
}

// TimescaleConfig enables the trend recorder when a connection string is
// set; left empty, the monitor runs without persistence.
type TimescaleConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
	BatchSize  int    `yaml:"batch_size"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type RenderConfig struct {
	SweepSpeed float64 `yaml:"sweep_speed"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a ready-to-run configuration, used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	c.Demo.ApplyDefaults()
	if c.Journal.Dir == "" {
		c.Journal.Dir = "./data/journal"
	}
	if c.Timescale.Table == "" {
		c.Timescale.Table = "vitals"
	}
	if c.Timescale.BatchSize == 0 {
		c.Timescale.BatchSize = 30
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9190"
	}
	if c.Render.SweepSpeed == 0 {
		c.Render.SweepSpeed = domain.DefaultSweepSpeed
	}
}

func (c *Config) Validate() error {
	if err := c.Demo.Validate(); err != nil {
		return fmt.Errorf("demo config: %w", err)
	}
	if c.Journal.Dir == "" {
		return fmt.Errorf("journal.dir is required")
	}
	if c.Timescale.BatchSize < 1 {
		return fmt.Errorf("timescale.batch_size must be positive")
	}
	if c.Render.SweepSpeed <= 0 {
		return fmt.Errorf("render.sweep_speed must be positive")
	}
	for _, a := range c.Alarms {
		if _, ok := ParseParameterKind(a.Parameter); !ok {
			return fmt.Errorf("alarms: unknown parameter %q", a.Parameter)
		}
		if a.LowCritical > a.LowWarning || a.LowWarning > a.HighWarning || a.HighWarning > a.HighCritical {
			return fmt.Errorf("alarms: %s limits not ordered", a.Parameter)
		}
	}
	for _, w := range c.Channels.Waveforms {
		if _, ok := ParseWaveformKind(w); !ok {
			return fmt.Errorf("channels: unknown waveform %q", w)
		}
	}
	for _, p := range c.Channels.Parameters {
		if _, ok := ParseParameterKind(p); !ok {
			return fmt.Errorf("channels: unknown parameter %q", p)
		}
	}
	return nil
}

// Save writes the configuration back to disk, creating parent directories as
// needed. The monitor calls this at shutdown so runtime adjustments persist.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o644)
}

// ParseWaveformKind resolves a configuration name to a waveform kind.
func ParseWaveformKind(name string) (domain.WaveformKind, bool) {
	for _, k := range domain.WaveformKinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// ParseParameterKind resolves a configuration name to a parameter kind.
func ParseParameterKind(name string) (domain.ParameterKind, bool) {
	for _, k := range domain.ParameterKinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
