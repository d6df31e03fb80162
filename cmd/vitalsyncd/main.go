// Command vitalsyncd runs the patient monitor: a demo vitals provider feeding
// the channel registry, alarm journal, optional TimescaleDB trend recorder,
// and either the terminal UI or a headless service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/sf044/vitalsync"
	"github.com/sf044/vitalsync/internal/ui"
)

func main() {
	var (
		configPath = kingpin.Flag("config", "Path to the monitor configuration file.").Default("./data/config.yaml").String()
		headless   = kingpin.Flag("headless", "Run without the terminal UI.").Bool()
		listenAddr = kingpin.Flag("metrics.listen-address", "Address for the Prometheus metrics endpoint; overrides the config file.").String()
		sweepSpeed = kingpin.Flag("sweep", "Initial waveform sweep speed in px/s; overrides the config file.").Float64()
		seed       = kingpin.Flag("seed", "Demo provider random seed; 0 seeds from the clock.").Int64()
		saveConfig = kingpin.Flag("save-config", "Write the effective configuration back at shutdown.").Default("true").Bool()
	)
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	if err := run(*configPath, *headless, *listenAddr, *sweepSpeed, *seed, *saveConfig); err != nil {
		log.Fatalf("vitalsyncd: %v", err)
	}
}

func run(configPath string, headless bool, listenAddr string, sweepSpeed float64, seed int64, saveConfig bool) error {
	cfg, err := loadOrDefault(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Metrics.Addr = listenAddr
	}
	if sweepSpeed > 0 {
		cfg.Render.SweepSpeed = sweepSpeed
	}
	if seed != 0 {
		cfg.Demo.Seed = seed
	}

	m, err := vitalsync.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if headless {
		err = m.Run(ctx)
	} else {
		err = runUI(ctx, m, cfg)
	}
	if err != nil {
		return err
	}

	if saveConfig {
		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	return nil
}

func loadOrDefault(path string) (*vitalsync.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("config %s not found, using defaults", path)
		return vitalsync.DefaultConfig(), nil
	}
	return vitalsync.LoadConfig(path)
}

// runUI starts the monitor, hands the registry to the terminal UI, and shuts
// the monitor down when either the UI exits or the context is cancelled.
func runUI(ctx context.Context, m *vitalsync.Monitor, cfg *vitalsync.Config) error {
	if err := m.Start(); err != nil {
		return err
	}

	model := ui.NewModel(m.Registry(), m.Status, cfg.Render.SweepSpeed)
	prog := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	_, uiErr := prog.Run()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return uiErr
}
