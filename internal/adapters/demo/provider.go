package demo

import (
	"fmt"
	"sync"
	"time"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

// Config carries the demo provider's acquisition settings.
type Config struct {
	// WaveformInterval between waveform batch ticks.
	WaveformInterval time.Duration `yaml:"waveform_interval"`
	// ParameterInterval between parameter set ticks.
	ParameterInterval time.Duration `yaml:"parameter_interval"`
	// ConnectDelay simulates device handshake time before Connected.
	ConnectDelay time.Duration `yaml:"connect_delay"`
	// SampleRate of the synthesized waveforms in Hz.
	SampleRate int `yaml:"sample_rate"`
	// Seed for the generators; 0 seeds from the wall clock.
	Seed int64 `yaml:"seed"`
}

func (c *Config) ApplyDefaults() {
	if c.WaveformInterval <= 0 {
		c.WaveformInterval = domain.DefaultWaveformInterval
	}
	if c.ParameterInterval <= 0 {
		c.ParameterInterval = domain.DefaultParameterInterval
	}
	if c.ConnectDelay < 0 {
		c.ConnectDelay = 0
	} else if c.ConnectDelay == 0 {
		c.ConnectDelay = 500 * time.Millisecond
	}
	if c.SampleRate <= 0 {
		c.SampleRate = domain.DefaultSampleRate
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

func (c Config) Validate() error {
	if c.WaveformInterval < time.Millisecond {
		return fmt.Errorf("demo: waveform interval %v below 1ms", c.WaveformInterval)
	}
	if c.ParameterInterval < c.WaveformInterval {
		return fmt.Errorf("demo: parameter interval %v below waveform interval %v",
			c.ParameterInterval, c.WaveformInterval)
	}
	if c.SampleRate < 1 || c.SampleRate > 10000 {
		return fmt.Errorf("demo: sample rate %d out of range", c.SampleRate)
	}
	return nil
}

// vitalsState is the provider's mutable physiological baseline, updated
// through Configure and read by the tick handlers.
type vitalsState struct {
	heartRate       int
	respirationRate int
	spo2            int
	systolicBP      int
	diastolicBP     int
	temperature     float64
	temperature2    float64
	etco2           int
	ibp1Systolic    int
	ibp1Diastolic   int
	ibp2Systolic    int
	ibp2Diastolic   int
	amplitude       float64
	frequency       float64
	noise           float64
	artifacts       bool
}

func defaultVitals() vitalsState {
	return vitalsState{
		heartRate:       72,
		respirationRate: 15,
		spo2:            98,
		systolicBP:      120,
		diastolicBP:     80,
		temperature:     36.8,
		temperature2:    36.5,
		etco2:           38,
		ibp1Systolic:    125,
		ibp1Diastolic:   78,
		ibp2Systolic:    8,
		ibp2Diastolic:   4,
		amplitude:       1.0,
		frequency:       1.0,
		noise:           0.05,
		artifacts:       true,
	}
}

// Provider is the built-in synthetic data source. It satisfies ports.Provider
// and runs two independent timers once connected: a fast one producing
// waveform batches for every kind with a generator, and a slow one producing
// the full parameter set.
type Provider struct {
	mu     sync.Mutex
	cfg    Config
	vitals vitalsState
	status domain.ConnectionStatus

	started  bool
	stopCh   chan struct{}
	reconfig chan struct{}
	wg       sync.WaitGroup

	wave   *WaveGen
	params *ParamGen
	obs    ports.Observability
}

func NewProvider(cfg Config, obs ports.Observability) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider{
		cfg:    cfg,
		vitals: defaultVitals(),
		status: domain.Disconnected,
		wave:   NewWaveGen(cfg.Seed),
		params: NewParamGen(cfg.Seed+1, obs),
		obs:    obs,
	}, nil
}

func (p *Provider) Name() string { return "demo" }

// Status returns the current connection state.
func (p *Provider) Status() domain.ConnectionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Start transitions to Connecting, then Connected after the configured
// handshake delay, and begins emitting on the event channels. Start returns
// immediately; a second call while running is a no-op.
func (p *Provider) Start(ev ports.ProviderEvents) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	p.stopCh = make(chan struct{})
	p.reconfig = make(chan struct{}, 1)
	p.status = domain.Connecting
	stop := p.stopCh
	p.mu.Unlock()

	p.emitStatus(ev, domain.Connecting)
	p.obs.LogInfo("demo provider connecting",
		ports.Field{Key: "delay", Value: p.cfg.ConnectDelay.String()})

	p.wg.Add(1)
	go p.run(ev, stop)
	return nil
}

// Stop halts the acquisition loop and waits for it to drain. Safe to call
// whether or not the provider is running.
func (p *Provider) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	p.status = domain.Disconnected
	p.mu.Unlock()
	p.obs.LogInfo("demo provider stopped")
	return nil
}

// Configure applies a sparse settings patch. Values outside plausible
// physiological bounds are clamped rather than rejected. Safe while running;
// the next tick picks up the new baseline.
func (p *Provider) Configure(s domain.ProviderSettings) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.HeartRate != nil {
		p.vitals.heartRate = clampInt(*s.HeartRate, 20, 300)
	}
	if s.RespirationRate != nil {
		p.vitals.respirationRate = clampInt(*s.RespirationRate, 4, 60)
	}
	if s.SpO2 != nil {
		p.vitals.spo2 = clampInt(*s.SpO2, 50, 100)
	}
	if s.SystolicBP != nil {
		p.vitals.systolicBP = clampInt(*s.SystolicBP, 60, 250)
	}
	if s.DiastolicBP != nil {
		p.vitals.diastolicBP = clampInt(*s.DiastolicBP, 30, 150)
	}
	if p.vitals.systolicBP <= p.vitals.diastolicBP {
		p.vitals.systolicBP = p.vitals.diastolicBP + 20
	}
	if s.Temperature != nil {
		p.vitals.temperature = clamp(*s.Temperature, 30, 43)
	}
	if s.Temperature2 != nil {
		p.vitals.temperature2 = clamp(*s.Temperature2, 30, 43)
	}
	if s.EtCO2 != nil {
		p.vitals.etco2 = clampInt(*s.EtCO2, 10, 100)
	}
	if s.IBP1Systolic != nil {
		p.vitals.ibp1Systolic = clampInt(*s.IBP1Systolic, 60, 250)
	}
	if s.IBP1Diastolic != nil {
		p.vitals.ibp1Diastolic = clampInt(*s.IBP1Diastolic, 30, 150)
	}
	if p.vitals.ibp1Systolic <= p.vitals.ibp1Diastolic {
		p.vitals.ibp1Systolic = p.vitals.ibp1Diastolic + 20
	}
	if s.IBP2Systolic != nil {
		p.vitals.ibp2Systolic = clampInt(*s.IBP2Systolic, 0, 40)
	}
	if s.IBP2Diastolic != nil {
		p.vitals.ibp2Diastolic = clampInt(*s.IBP2Diastolic, 0, 30)
	}
	if s.Amplitude != nil {
		p.vitals.amplitude = clamp(*s.Amplitude, 0.1, 5.0)
	}
	if s.Frequency != nil {
		p.vitals.frequency = clamp(*s.Frequency, 0.1, 10.0)
	}
	if s.Noise != nil {
		p.vitals.noise = clamp(*s.Noise, 0, 1.0)
	}
	if s.Artifacts != nil {
		p.vitals.artifacts = *s.Artifacts
	}
	// updateIntervalMs retunes the waveform timer, matching the knob the
	// device settings expose.
	if s.UpdateIntervalMs != nil {
		iv := time.Duration(clampInt(*s.UpdateIntervalMs, 10, 1000)) * time.Millisecond
		if iv != p.cfg.WaveformInterval {
			p.cfg.WaveformInterval = iv
			select {
			case p.reconfig <- struct{}{}:
			default:
			}
		}
	}
	return nil
}

func (p *Provider) run(ev ports.ProviderEvents, stop <-chan struct{}) {
	defer p.wg.Done()

	// Simulated handshake; cancellable so Stop during Connecting does not
	// block on the full delay.
	connect := time.NewTimer(p.cfg.ConnectDelay)
	defer connect.Stop()
	select {
	case <-stop:
		p.emitStatus(ev, domain.Disconnected)
		return
	case <-connect.C:
	}

	p.mu.Lock()
	p.status = domain.Connected
	p.mu.Unlock()
	p.emitStatus(ev, domain.Connected)
	p.obs.LogInfo("demo provider connected")
	p.obs.IncCounter("provider_connects_total", 1)

	p.mu.Lock()
	waveInterval := p.cfg.WaveformInterval
	p.mu.Unlock()
	waveTicker := time.NewTicker(waveInterval)
	defer waveTicker.Stop()
	paramTicker := time.NewTicker(p.cfg.ParameterInterval)
	defer paramTicker.Stop()

	var elapsed float64
	var lastWaveTS, lastParamTS int64

	for {
		select {
		case <-stop:
			p.emitStatus(ev, domain.Disconnected)
			return
		case <-p.reconfig:
			p.mu.Lock()
			waveInterval = p.cfg.WaveformInterval
			p.mu.Unlock()
			waveTicker.Reset(waveInterval)
		case <-waveTicker.C:
			p.safeTick("waveform", func() {
				lastWaveTS = p.waveformTick(ev, stop, elapsed, lastWaveTS, waveInterval)
			})
			elapsed += waveInterval.Seconds()
		case <-paramTicker.C:
			p.safeTick("parameter", func() {
				lastParamTS = p.parameterTick(ev, stop, lastParamTS)
			})
		}
	}
}

// safeTick isolates one tick handler so a panic skips the tick instead of
// killing the acquisition loop.
func (p *Provider) safeTick(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.obs.LogError("tick panicked", fmt.Errorf("%v", r),
				ports.Field{Key: "tick", Value: name})
			p.obs.IncCounter("provider_tick_panics_total", 1)
		}
	}()
	start := time.Now()
	fn()
	p.obs.ObserveLatency("provider_tick_seconds", time.Since(start).Seconds())
}

func (p *Provider) cycleParams() CycleParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	noise := p.vitals.noise
	if !p.vitals.artifacts {
		noise = 0
	}
	return CycleParams{
		HeartRate:       float64(p.vitals.heartRate),
		RespirationRate: float64(p.vitals.respirationRate),
		SpO2:            float64(p.vitals.spo2),
		SystolicBP:      float64(p.vitals.systolicBP),
		DiastolicBP:     float64(p.vitals.diastolicBP),
		EtCO2:           float64(p.vitals.etco2),
		Amplitude:       p.vitals.amplitude,
		Noise:           noise,
		SampleInterval:  1.0 / float64(p.cfg.SampleRate),
	}
}

func (p *Provider) baseline() Baseline {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Baseline{
		HeartRate:       float64(p.vitals.heartRate),
		RespirationRate: float64(p.vitals.respirationRate),
		SpO2:            float64(p.vitals.spo2),
		SystolicBP:      float64(p.vitals.systolicBP),
		DiastolicBP:     float64(p.vitals.diastolicBP),
		Temperature:     p.vitals.temperature,
		Temperature2:    p.vitals.temperature2,
		EtCO2:           float64(p.vitals.etco2),
		IBP1Systolic:    float64(p.vitals.ibp1Systolic),
		IBP1Diastolic:   float64(p.vitals.ibp1Diastolic),
		IBP2Systolic:    float64(p.vitals.ibp2Systolic),
		IBP2Diastolic:   float64(p.vitals.ibp2Diastolic),
	}
}

func (p *Provider) waveformTick(ev ports.ProviderEvents, stop <-chan struct{}, elapsed float64, lastTS int64, interval time.Duration) int64 {
	cp := p.cycleParams()
	points := int(float64(p.cfg.SampleRate) * interval.Seconds())
	if points < 1 {
		points = 1
	}

	ts := time.Now().UnixMilli()
	if ts <= lastTS {
		ts = lastTS + 1
	}

	for _, kind := range domain.WaveformKinds {
		if !HasGenerator(kind) {
			continue
		}
		samples := p.wave.Generate(kind, elapsed, points, cp)
		batch := domain.WaveformBatch{Kind: kind, TimestampMs: ts, Samples: samples}
		select {
		case ev.Waveforms <- batch:
		case <-stop:
			return ts
		}
	}
	return ts
}

func (p *Provider) parameterTick(ev ports.ProviderEvents, stop <-chan struct{}, lastTS int64) int64 {
	values := p.params.Next(p.baseline())

	ts := time.Now().UnixMilli()
	if ts <= lastTS {
		ts = lastTS + 1
	}

	for _, kind := range domain.ParameterKinds {
		reading := domain.ParameterReading{Kind: kind, TimestampMs: ts, Value: values[kind]}
		select {
		case ev.Parameters <- reading:
		case <-stop:
			return ts
		}
	}
	return ts
}

func (p *Provider) emitStatus(ev ports.ProviderEvents, s domain.ConnectionStatus) {
	if ev.Status == nil {
		return
	}
	select {
	case ev.Status <- s:
	default:
		p.obs.LogWarn("status channel full, dropping update",
			ports.Field{Key: "status", Value: s.String()})
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
