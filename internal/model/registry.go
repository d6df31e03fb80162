package model

import (
	"sync"

	"github.com/sf044/vitalsync/internal/domain"
)

// defaultActiveWaveforms is the standard adult monitoring layout shown when
// no configuration overrides it.
var defaultActiveWaveforms = []domain.WaveformKind{
	domain.ECGII, domain.Resp, domain.Pleth, domain.ABP, domain.Capno,
}

// Registry owns one channel per known waveform and parameter kind and routes
// incoming provider events to them.
type Registry struct {
	mu         sync.RWMutex
	waveforms  map[domain.WaveformKind]*WaveformChannel
	parameters map[domain.ParameterKind]*ParameterChannel
}

func NewRegistry() *Registry {
	r := &Registry{
		waveforms:  make(map[domain.WaveformKind]*WaveformChannel, len(domain.WaveformKinds)),
		parameters: make(map[domain.ParameterKind]*ParameterChannel, len(domain.ParameterKinds)),
	}
	for _, k := range domain.WaveformKinds {
		r.waveforms[k] = NewWaveformChannel(k)
	}
	for _, k := range defaultActiveWaveforms {
		r.waveforms[k].SetActive(true)
	}
	for _, k := range domain.ParameterKinds {
		r.parameters[k] = NewParameterChannel(k)
	}
	return r
}

// Waveform returns the channel for a kind, or nil for an unknown kind.
func (r *Registry) Waveform(k domain.WaveformKind) *WaveformChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.waveforms[k]
}

// Parameter returns the channel for a kind, or nil for an unknown kind.
func (r *Registry) Parameter(k domain.ParameterKind) *ParameterChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parameters[k]
}

// ActiveWaveforms lists active waveform channels in display order.
func (r *Registry) ActiveWaveforms() []*WaveformChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*WaveformChannel, 0, len(domain.WaveformKinds))
	for _, k := range domain.WaveformKinds {
		if c := r.waveforms[k]; c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// ActiveParameters lists active parameter channels in display order.
func (r *Registry) ActiveParameters() []*ParameterChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ParameterChannel, 0, len(domain.ParameterKinds))
	for _, k := range domain.ParameterKinds {
		if c := r.parameters[k]; c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// HasActiveChannels reports whether at least one channel of either type is
// active. Starting a monitor with nothing active is a configuration error.
func (r *Registry) HasActiveChannels() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.waveforms {
		if c.Active() {
			return true
		}
	}
	for _, c := range r.parameters {
		if c.Active() {
			return true
		}
	}
	return false
}

// ApplyWaveformBatch routes a provider batch to its channel. Data arrives
// whether or not the channel is displayed; active only governs rendering.
func (r *Registry) ApplyWaveformBatch(b domain.WaveformBatch) error {
	c := r.Waveform(b.Kind)
	if c == nil {
		return nil
	}
	return c.AppendBatch(b)
}

// ApplyParameterReading routes a provider reading to its channel.
func (r *Registry) ApplyParameterReading(reading domain.ParameterReading) error {
	c := r.Parameter(reading.Kind)
	if c == nil {
		return nil
	}
	return c.Update(reading)
}

// ClearWaveforms drops all buffered history, e.g. when switching providers.
func (r *Registry) ClearWaveforms() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.waveforms {
		c.Clear()
	}
}
