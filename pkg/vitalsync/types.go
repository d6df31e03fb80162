package vitalsync

import (
	"github.com/sf044/vitalsync/internal/adapters/demo"
	"github.com/sf044/vitalsync/internal/app/config"
	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

// Type aliases so embedders work against this package alone.
type (
	Config           = config.Config
	AlarmOverride    = config.AlarmOverride
	DemoConfig       = demo.Config
	WaveformKind     = domain.WaveformKind
	ParameterKind    = domain.ParameterKind
	AlarmTier        = domain.AlarmTier
	AlarmThresholds  = domain.AlarmThresholds
	ConnectionStatus = domain.ConnectionStatus
	ErrorCode        = domain.ErrorCode
	WaveformBatch    = domain.WaveformBatch
	Reading          = domain.ParameterReading
	AlarmEvent       = domain.AlarmEvent
	ProviderError    = domain.ProviderError
	ProviderSettings = domain.ProviderSettings
	Provider         = ports.Provider
	ProviderEvents   = ports.ProviderEvents
	ReadingSink      = ports.ReadingSink
	AlarmJournal     = ports.AlarmJournal
	Observability    = ports.Observability
)

// Waveform kinds.
const (
	ECGI   = domain.ECGI
	ECGII  = domain.ECGII
	ECGIII = domain.ECGIII
	Resp   = domain.Resp
	Pleth  = domain.Pleth
	ABP    = domain.ABP
	CVP    = domain.CVP
	Capno  = domain.Capno
	EEG    = domain.EEG
)

// Parameter kinds.
const (
	HR      = domain.HR
	RR      = domain.RR
	SpO2    = domain.SpO2
	NIBPSys = domain.NIBPSys
	NIBPDia = domain.NIBPDia
	NIBPMap = domain.NIBPMap
	Temp1   = domain.Temp1
	Temp2   = domain.Temp2
	EtCO2   = domain.EtCO2
	IBP1Sys = domain.IBP1Sys
	IBP1Dia = domain.IBP1Dia
	IBP1Map = domain.IBP1Map
	IBP2Sys = domain.IBP2Sys
	IBP2Dia = domain.IBP2Dia
	IBP2Map = domain.IBP2Map
)

// Alarm tiers.
const (
	TierLowCritical  = domain.TierLowCritical
	TierLowWarning   = domain.TierLowWarning
	TierNormal       = domain.TierNormal
	TierHighWarning  = domain.TierHighWarning
	TierHighCritical = domain.TierHighCritical
	TierTechnical    = domain.TierTechnical
)

// Connection states.
const (
	Disconnected    = domain.Disconnected
	Connecting      = domain.Connecting
	Connected       = domain.Connected
	ConnectionError = domain.ConnectionError
)

// LoadConfig reads, defaults, and validates a yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// DefaultConfig returns a ready-to-run configuration.
func DefaultConfig() *Config {
	return config.Default()
}
