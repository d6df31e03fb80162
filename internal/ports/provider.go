package ports

import "github.com/sf044/vitalsync/internal/domain"

// ProviderEvents carries the typed channels a provider pushes onto while
// running. The runtime owns the channels; the provider must stop writing to
// them after Stop returns.
type ProviderEvents struct {
	Waveforms  chan<- domain.WaveformBatch
	Parameters chan<- domain.ParameterReading
	Status     chan<- domain.ConnectionStatus
	Errors     chan<- domain.ProviderError
}

// Provider is a source of physiological data (the demo simulator, or an
// external acquisition front-end). Start and Stop are idempotent: a second
// Start while running succeeds as a no-op, a second Stop is a no-op.
type Provider interface {
	Name() string
	Start(ev ProviderEvents) error
	Stop() error
	Status() domain.ConnectionStatus
	Configure(s domain.ProviderSettings) error
}
