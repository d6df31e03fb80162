// Package vitalsync is the embeddable monitor runtime: it wires the data
// provider, channel registry, alarm journal, and optional trend sink into a
// single lifecycle, and serves the Prometheus metrics endpoint.
package vitalsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sf044/vitalsync/internal/adapters/demo"
	"github.com/sf044/vitalsync/internal/adapters/journal"
	"github.com/sf044/vitalsync/internal/adapters/observability"
	"github.com/sf044/vitalsync/internal/adapters/sink"
	"github.com/sf044/vitalsync/internal/app/config"
	"github.com/sf044/vitalsync/internal/app/pipeline"
	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/model"
	"github.com/sf044/vitalsync/internal/ports"
)

// Option customizes the dependencies used by Monitor.
type Option func(*overrides)

type overrides struct {
	provider      ports.Provider
	sink          ports.ReadingSink
	journal       ports.AlarmJournal
	observability ports.Observability
}

// WithProvider injects a custom data provider (device gateways, replayers,
// simulators).
func WithProvider(p ports.Provider) Option {
	return func(o *overrides) { o.provider = p }
}

// WithSink injects a custom trend sink instead of the TimescaleDB recorder.
func WithSink(s ports.ReadingSink) Option {
	return func(o *overrides) { o.sink = s }
}

// WithJournal lets callers bring their own alarm journal implementation.
func WithJournal(j ports.AlarmJournal) Option {
	return func(o *overrides) { o.journal = j }
}

// WithObservability plugs in a custom logging/metrics backend.
func WithObservability(obs ports.Observability) Option {
	return func(o *overrides) { o.observability = obs }
}

// Monitor wires provider → channels → journal/sink and exposes lifecycle
// hooks for embedding the runtime inside any Go program.
type Monitor struct {
	mu  sync.Mutex
	cfg *config.Config
	reg *model.Registry
	obs ports.Observability

	provider ports.Provider
	journal  ports.AlarmJournal
	sink     ports.ReadingSink
	db       *sql.DB

	router     *pipeline.Router
	ch         pipeline.Channels
	routerStop chan struct{}
	routerDone chan struct{}

	metricsSrv  *http.Server
	gaugeStopCh chan struct{}
	started     bool

	errorFn func(domain.ProviderError)
}

// New bootstraps the default adapters: demo provider, file alarm journal,
// Timescale trend sink when configured, Prometheus observability. Options
// override any dependency.
func New(cfg *config.Config, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var ov overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}

	obs := ov.observability
	if obs == nil {
		obs = observability.NewPromObs()
	}

	jnl := ov.journal
	if jnl == nil {
		fj, err := journal.NewFileJournal(cfg.Journal.Dir)
		if err != nil {
			return nil, fmt.Errorf("alarm journal: %w", err)
		}
		jnl = fj
	}

	var (
		db  *sql.DB
		snk ports.ReadingSink
		err error
	)
	if ov.sink != nil {
		snk = ov.sink
	} else if cfg.Timescale.ConnString != "" {
		db, err = sql.Open("postgres", cfg.Timescale.ConnString)
		if err != nil {
			return nil, fmt.Errorf("trend sink: %w", err)
		}
		snk = sink.NewTimescaleSink(db, cfg.Timescale.Table)
	}

	prov := ov.provider
	if prov == nil {
		prov, err = demo.NewProvider(cfg.Demo, obs)
		if err != nil {
			return nil, err
		}
	}
	if err := prov.Configure(cfg.Settings); err != nil {
		return nil, fmt.Errorf("provider settings: %w", err)
	}

	reg := model.NewRegistry()
	if err := applyChannelConfig(reg, cfg); err != nil {
		return nil, err
	}

	m := &Monitor{
		cfg:      cfg,
		reg:      reg,
		obs:      obs,
		provider: prov,
		journal:  jnl,
		sink:     snk,
		db:       db,
	}
	m.router = pipeline.NewRouter(reg, jnl, snk, cfg.Timescale.BatchSize, obs)
	return m, nil
}

func applyChannelConfig(reg *model.Registry, cfg *config.Config) error {
	if len(cfg.Channels.Waveforms) > 0 {
		for _, k := range domain.WaveformKinds {
			reg.Waveform(k).SetActive(false)
		}
		for _, name := range cfg.Channels.Waveforms {
			k, ok := config.ParseWaveformKind(name)
			if !ok {
				return fmt.Errorf("unknown waveform channel %q", name)
			}
			reg.Waveform(k).SetActive(true)
		}
	}
	if len(cfg.Channels.Parameters) > 0 {
		for _, k := range domain.ParameterKinds {
			reg.Parameter(k).SetActive(false)
		}
		for _, name := range cfg.Channels.Parameters {
			k, ok := config.ParseParameterKind(name)
			if !ok {
				return fmt.Errorf("unknown parameter channel %q", name)
			}
			reg.Parameter(k).SetActive(true)
		}
	}
	for _, a := range cfg.Alarms {
		k, ok := config.ParseParameterKind(a.Parameter)
		if !ok {
			return fmt.Errorf("unknown alarm parameter %q", a.Parameter)
		}
		c := reg.Parameter(k)
		if a.Disabled {
			c.SetAlarmEnabled(false)
			continue
		}
		if err := c.SetThresholds(domain.AlarmThresholds{
			LowCritical:  a.LowCritical,
			LowWarning:   a.LowWarning,
			HighWarning:  a.HighWarning,
			HighCritical: a.HighCritical,
		}); err != nil {
			return err
		}
	}
	for _, k := range domain.WaveformKinds {
		reg.Waveform(k).SetSweepSpeed(cfg.Render.SweepSpeed)
	}
	return nil
}

// Registry exposes the channel registry for views and embedders.
func (m *Monitor) Registry() *model.Registry { return m.reg }

// Status reports the provider's connection state.
func (m *Monitor) Status() domain.ConnectionStatus { return m.provider.Status() }

// Configure forwards a sparse settings patch to the provider and records it
// in the configuration so Save persists it.
func (m *Monitor) Configure(s domain.ProviderSettings) error {
	if err := m.provider.Configure(s); err != nil {
		return err
	}
	m.mu.Lock()
	mergeSettings(&m.cfg.Settings, s)
	m.mu.Unlock()
	return nil
}

// SetStatusFunc registers a connection status callback. Must be called
// before Start.
func (m *Monitor) SetStatusFunc(fn func(domain.ConnectionStatus)) { m.router.SetStatusFunc(fn) }

// SetErrorFunc registers a provider error callback. Must be called before
// Start.
func (m *Monitor) SetErrorFunc(fn func(domain.ProviderError)) {
	m.errorFn = fn
	m.router.SetErrorFunc(fn)
}

// Start launches the router, the provider, and the metrics endpoint. It
// returns immediately; call Run to block on a context instead. Starting an
// already-running monitor is a no-op.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}

	if !m.reg.HasActiveChannels() {
		err := fmt.Errorf("no active channels configured")
		m.obs.LogError("monitor start refused", err,
			ports.Field{Key: "code", Value: int(domain.CodeConfiguration)})
		if m.errorFn != nil {
			m.errorFn(domain.ProviderError{
				Code:    domain.CodeConfiguration,
				Message: err.Error(),
			})
		}
		return err
	}

	m.ch = pipeline.NewChannels()
	m.routerStop = make(chan struct{})
	m.routerDone = make(chan struct{})
	go func() {
		m.router.Run(m.ch, m.routerStop)
		close(m.routerDone)
	}()

	if err := m.provider.Start(m.ch.Events()); err != nil {
		close(m.routerStop)
		<-m.routerDone
		return err
	}

	m.startMetrics()
	m.started = true
	return nil
}

// Run starts the monitor and blocks until the context is cancelled, then
// attempts a graceful shutdown.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Shutdown(shutdownCtx)
}

// Shutdown stops the provider, drains the router, and releases the journal,
// database, and metrics server. Safe to call more than once.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return nil
	}
	m.started = false

	var errs []error

	if err := m.provider.Stop(); err != nil {
		errs = append(errs, err)
	}

	close(m.routerStop)
	select {
	case <-m.routerDone:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}

	if m.gaugeStopCh != nil {
		close(m.gaugeStopCh)
		m.gaugeStopCh = nil
	}
	if m.metricsSrv != nil {
		if err := m.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
		m.metricsSrv = nil
	}

	if c, ok := m.journal.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *Monitor) startMetrics() {
	if m.cfg.Metrics.Addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	m.metricsSrv = &http.Server{
		Addr:    m.cfg.Metrics.Addr,
		Handler: mux,
	}
	go func(srv *http.Server) {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server exited: %v", err)
		}
	}(m.metricsSrv)

	m.gaugeStopCh = make(chan struct{})
	go m.recordResourceGauges(m.gaugeStopCh, time.Second)
}

func (m *Monitor) recordResourceGauges(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			stats := m.journal.Stats()
			m.obs.SetGauge("alarm_journal_size_bytes", float64(stats.SizeBytes))
		}
	}
}

func mergeSettings(dst *domain.ProviderSettings, src domain.ProviderSettings) {
	if src.HeartRate != nil {
		dst.HeartRate = src.HeartRate
	}
	if src.RespirationRate != nil {
		dst.RespirationRate = src.RespirationRate
	}
	if src.SpO2 != nil {
		dst.SpO2 = src.SpO2
	}
	if src.SystolicBP != nil {
		dst.SystolicBP = src.SystolicBP
	}
	if src.DiastolicBP != nil {
		dst.DiastolicBP = src.DiastolicBP
	}
	if src.Temperature != nil {
		dst.Temperature = src.Temperature
	}
	if src.Temperature2 != nil {
		dst.Temperature2 = src.Temperature2
	}
	if src.EtCO2 != nil {
		dst.EtCO2 = src.EtCO2
	}
	if src.IBP1Systolic != nil {
		dst.IBP1Systolic = src.IBP1Systolic
	}
	if src.IBP1Diastolic != nil {
		dst.IBP1Diastolic = src.IBP1Diastolic
	}
	if src.IBP2Systolic != nil {
		dst.IBP2Systolic = src.IBP2Systolic
	}
	if src.IBP2Diastolic != nil {
		dst.IBP2Diastolic = src.IBP2Diastolic
	}
	if src.UpdateIntervalMs != nil {
		dst.UpdateIntervalMs = src.UpdateIntervalMs
	}
	if src.Amplitude != nil {
		dst.Amplitude = src.Amplitude
	}
	if src.Frequency != nil {
		dst.Frequency = src.Frequency
	}
	if src.Noise != nil {
		dst.Noise = src.Noise
	}
	if src.Artifacts != nil {
		dst.Artifacts = src.Artifacts
	}
}
