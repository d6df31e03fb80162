package vitalsync

import (
	base "github.com/sf044/vitalsync/pkg/vitalsync"
)

// Re-exported errors for convenience.
var (
	ErrChannelSinkClosed = base.ErrChannelSinkClosed
)

// Type aliases so consumers can import github.com/sf044/vitalsync directly.
type (
	Config           = base.Config
	AlarmOverride    = base.AlarmOverride
	DemoConfig       = base.DemoConfig
	Monitor          = base.Monitor
	Option           = base.Option
	WaveformKind     = base.WaveformKind
	ParameterKind    = base.ParameterKind
	AlarmTier        = base.AlarmTier
	AlarmThresholds  = base.AlarmThresholds
	ConnectionStatus = base.ConnectionStatus
	ErrorCode        = base.ErrorCode
	WaveformBatch    = base.WaveformBatch
	Reading          = base.Reading
	AlarmEvent       = base.AlarmEvent
	ProviderError    = base.ProviderError
	ProviderSettings = base.ProviderSettings
	Provider         = base.Provider
	ProviderEvents   = base.ProviderEvents
	ReadingSink      = base.ReadingSink
	ReadingBatchSink = base.ReadingBatchSink
	AlarmJournal     = base.AlarmJournal
	Observability    = base.Observability
)

// Waveform kinds.
const (
	ECGI   = base.ECGI
	ECGII  = base.ECGII
	ECGIII = base.ECGIII
	Resp   = base.Resp
	Pleth  = base.Pleth
	ABP    = base.ABP
	CVP    = base.CVP
	Capno  = base.Capno
	EEG    = base.EEG
)

// Parameter kinds.
const (
	HR      = base.HR
	RR      = base.RR
	SpO2    = base.SpO2
	NIBPSys = base.NIBPSys
	NIBPDia = base.NIBPDia
	NIBPMap = base.NIBPMap
	Temp1   = base.Temp1
	Temp2   = base.Temp2
	EtCO2   = base.EtCO2
	IBP1Sys = base.IBP1Sys
	IBP1Dia = base.IBP1Dia
	IBP1Map = base.IBP1Map
	IBP2Sys = base.IBP2Sys
	IBP2Dia = base.IBP2Dia
	IBP2Map = base.IBP2Map
)

// Alarm tiers.
const (
	TierLowCritical  = base.TierLowCritical
	TierLowWarning   = base.TierLowWarning
	TierNormal       = base.TierNormal
	TierHighWarning  = base.TierHighWarning
	TierHighCritical = base.TierHighCritical
	TierTechnical    = base.TierTechnical
)

// Connection states.
const (
	Disconnected    = base.Disconnected
	Connecting      = base.Connecting
	Connected       = base.Connected
	ConnectionError = base.ConnectionError
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

func DefaultConfig() *Config {
	return base.DefaultConfig()
}

// Monitor construction and options.
func New(cfg *Config, opts ...Option) (*Monitor, error) {
	return base.New(cfg, opts...)
}

func WithProvider(p Provider) Option {
	return base.WithProvider(p)
}

func WithSink(s ReadingSink) Option {
	return base.WithSink(s)
}

func WithJournal(j AlarmJournal) Option {
	return base.WithJournal(j)
}

func WithObservability(obs Observability) Option {
	return base.WithObservability(obs)
}

// Sink adapters.
func NewCallbackSink(name string, fn ReadingBatchSink) ReadingSink {
	return base.NewCallbackSink(name, fn)
}

func NewChannelSink(name string, buffer int) (ReadingSink, <-chan []Reading, func()) {
	return base.NewChannelSink(name, buffer)
}
