// Package pipeline wires provider event streams into the channel registry,
// the alarm journal, and the optional trend sink.
package pipeline

import (
	"time"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/model"
	"github.com/sf044/vitalsync/internal/ports"
)

// Channels carries the buffered event streams between a provider and the
// router. Buffer sizes absorb scheduling jitter without blocking the
// acquisition timers.
type Channels struct {
	Waveforms  chan domain.WaveformBatch
	Parameters chan domain.ParameterReading
	Status     chan domain.ConnectionStatus
	Errors     chan domain.ProviderError
}

func NewChannels() Channels {
	return Channels{
		Waveforms:  make(chan domain.WaveformBatch, 256),
		Parameters: make(chan domain.ParameterReading, 256),
		Status:     make(chan domain.ConnectionStatus, 16),
		Errors:     make(chan domain.ProviderError, 16),
	}
}

// Events exposes the send side handed to a provider's Start.
func (c Channels) Events() ports.ProviderEvents {
	return ports.ProviderEvents{
		Waveforms:  c.Waveforms,
		Parameters: c.Parameters,
		Status:     c.Status,
		Errors:     c.Errors,
	}
}

// Router consumes provider events and fans them out: waveform batches and
// parameter readings into the registry, alarm transitions into the journal,
// readings additionally batched into the trend sink. Run owns all downstream
// writes, so journal and sink see a single goroutine.
type Router struct {
	reg       *model.Registry
	journal   ports.AlarmJournal
	sink      ports.ReadingSink
	batchSize int
	obs       ports.Observability

	statusFn func(domain.ConnectionStatus)
	errorFn  func(domain.ProviderError)

	alarmTiers map[domain.ParameterKind]domain.AlarmTier
	pending    []domain.ParameterReading
}

// NewRouter builds a router over the registry. journal and sink may be nil
// to disable persistence.
func NewRouter(reg *model.Registry, journal ports.AlarmJournal, sink ports.ReadingSink, batchSize int, obs ports.Observability) *Router {
	if batchSize < 1 {
		batchSize = 1
	}
	r := &Router{
		reg:        reg,
		journal:    journal,
		sink:       sink,
		batchSize:  batchSize,
		obs:        obs,
		alarmTiers: make(map[domain.ParameterKind]domain.AlarmTier),
	}
	for _, k := range domain.ParameterKinds {
		if c := reg.Parameter(k); c != nil {
			c.SubscribeAlarms(r.handleAlarm)
		}
	}
	return r
}

// SetStatusFunc registers a callback for connection status changes. Must be
// called before Run.
func (r *Router) SetStatusFunc(fn func(domain.ConnectionStatus)) { r.statusFn = fn }

// SetErrorFunc registers a callback for provider errors. Must be called
// before Run.
func (r *Router) SetErrorFunc(fn func(domain.ProviderError)) { r.errorFn = fn }

// Run drains the event channels until stop closes, then consumes whatever is
// still buffered and flushes the pending sink batch. Blocks; callers run it
// on its own goroutine.
func (r *Router) Run(ch Channels, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			r.drain(ch)
			r.flush()
			return
		case b := <-ch.Waveforms:
			r.handleWaveform(b)
		case reading := <-ch.Parameters:
			r.handleReading(reading)
		case s := <-ch.Status:
			r.handleStatus(s)
		case e := <-ch.Errors:
			r.handleError(e)
		}
	}
}

// drain empties the buffered channels so late events (e.g. the provider's
// final Disconnected status) are not lost at shutdown.
func (r *Router) drain(ch Channels) {
	for {
		select {
		case b := <-ch.Waveforms:
			r.handleWaveform(b)
		case reading := <-ch.Parameters:
			r.handleReading(reading)
		case s := <-ch.Status:
			r.handleStatus(s)
		case e := <-ch.Errors:
			r.handleError(e)
		default:
			return
		}
	}
}

func (r *Router) handleWaveform(b domain.WaveformBatch) {
	if err := r.reg.ApplyWaveformBatch(b); err != nil {
		r.obs.LogWarn("waveform batch rejected",
			ports.Field{Key: "kind", Value: b.Kind.String()},
			ports.Field{Key: "reason", Value: err.Error()})
		r.obs.IncCounter("waveform_batches_rejected_total", 1)
		return
	}
	r.obs.IncCounter("waveform_batches_total", 1)
}

func (r *Router) handleReading(reading domain.ParameterReading) {
	if err := r.reg.ApplyParameterReading(reading); err != nil {
		r.obs.LogWarn("parameter reading rejected",
			ports.Field{Key: "kind", Value: reading.Kind.String()},
			ports.Field{Key: "reason", Value: err.Error()})
		return
	}
	r.obs.IncCounter("parameter_readings_total", 1)
	r.enqueueTrend(reading)
}

func (r *Router) handleStatus(s domain.ConnectionStatus) {
	r.obs.LogInfo("provider status",
		ports.Field{Key: "status", Value: s.String()})
	if r.statusFn != nil {
		r.statusFn(s)
	}
}

func (r *Router) handleError(e domain.ProviderError) {
	r.obs.LogError("provider error", nil,
		ports.Field{Key: "code", Value: int(e.Code)},
		ports.Field{Key: "message", Value: e.Message})
	if r.errorFn != nil {
		r.errorFn(e)
	}
}

// handleAlarm runs on the Run goroutine via the channel subscriptions.
func (r *Router) handleAlarm(e domain.AlarmEvent) {
	r.alarmTiers[e.Kind] = e.Tier
	active := 0
	for _, tier := range r.alarmTiers {
		if tier != domain.TierNormal {
			active++
		}
	}
	r.obs.IncCounter("alarm_transitions_total", 1)
	r.obs.SetGauge("active_alarms", float64(active))

	if r.journal == nil {
		return
	}
	if _, err := r.journal.Append(e); err != nil {
		r.obs.LogError("alarm journal append failed", err,
			ports.Field{Key: "kind", Value: e.Kind.String()})
		return
	}
	r.obs.SetGauge("alarm_journal_size_bytes", float64(r.journal.Stats().SizeBytes))
}

func (r *Router) enqueueTrend(reading domain.ParameterReading) {
	if r.sink == nil {
		return
	}
	r.pending = append(r.pending, reading)
	if len(r.pending) >= r.batchSize {
		r.flush()
	}
}

// flush writes the pending trend batch. Failed batches are dropped after
// logging; trend history is best-effort and the channels keep the live data.
func (r *Router) flush() {
	if r.sink == nil || len(r.pending) == 0 {
		return
	}
	start := time.Now()
	if err := r.sink.WriteBatch(r.pending); err != nil {
		r.obs.LogError("trend sink write failed", err,
			ports.Field{Key: "sink", Value: r.sink.Name()},
			ports.Field{Key: "batch", Value: len(r.pending)})
		r.obs.IncCounter("sink_write_errors_total", 1)
	} else {
		r.obs.ObserveLatency("sink_write_seconds", time.Since(start).Seconds())
	}
	r.pending = r.pending[:0]
}
