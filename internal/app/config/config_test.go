package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sf044/vitalsync/internal/domain"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
demo:
  seed: 7
settings:
  heart_rate: 80
channels:
  waveforms: ["ECG II", "SpO2"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Demo.WaveformInterval != domain.DefaultWaveformInterval {
		t.Fatalf("expected default waveform interval, got %v", cfg.Demo.WaveformInterval)
	}
	if cfg.Demo.ParameterInterval != time.Second {
		t.Fatalf("expected default parameter interval 1s, got %v", cfg.Demo.ParameterInterval)
	}
	if cfg.Demo.Seed != 7 {
		t.Fatalf("expected seed 7, got %d", cfg.Demo.Seed)
	}
	if cfg.Journal.Dir != "./data/journal" {
		t.Fatalf("expected default journal dir, got %s", cfg.Journal.Dir)
	}
	if cfg.Metrics.Addr != ":9190" {
		t.Fatalf("expected default metrics addr :9190, got %s", cfg.Metrics.Addr)
	}
	if cfg.Render.SweepSpeed != domain.DefaultSweepSpeed {
		t.Fatalf("expected default sweep speed, got %v", cfg.Render.SweepSpeed)
	}
	if cfg.Settings.HeartRate == nil || *cfg.Settings.HeartRate != 80 {
		t.Fatalf("expected heart rate setting 80, got %v", cfg.Settings.HeartRate)
	}
}

func TestLoadRejectsUnknownNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
channels:
  waveforms: ["No Such Lead"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown waveform name to be rejected")
	}
}

func TestLoadRejectsUnorderedAlarmLimits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
alarms:
  - parameter: HR
    low_critical: 60
    low_warning: 50
    high_warning: 120
    high_critical: 150
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unordered alarm limits to be rejected")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	hr := 90
	cfg.Settings.HeartRate = &hr
	cfg.Render.SweepSpeed = 50

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Settings.HeartRate == nil || *loaded.Settings.HeartRate != 90 {
		t.Fatalf("heart rate did not round-trip: %v", loaded.Settings.HeartRate)
	}
	if loaded.Render.SweepSpeed != 50 {
		t.Fatalf("sweep speed did not round-trip: %v", loaded.Render.SweepSpeed)
	}
}

func TestParseKindNames(t *testing.T) {
	if k, ok := ParseWaveformKind("ECG II"); !ok || k != domain.ECGII {
		t.Fatalf("ParseWaveformKind failed: %v %v", k, ok)
	}
	if k, ok := ParseParameterKind("SpO2"); !ok || k != domain.SpO2 {
		t.Fatalf("ParseParameterKind failed: %v %v", k, ok)
	}
	if _, ok := ParseParameterKind("bogus"); ok {
		t.Fatalf("expected bogus name to fail")
	}
}
