// Package domain holds the canonical VitalSync data types: waveform and
// parameter kinds, alarm tiers, connection status, and the per-kind metadata
// tables (display names, units, default ranges, default alarm limits) used
// when channels are created.
package domain

import "time"

// WaveformKind identifies a continuous physiological waveform channel.
type WaveformKind int

const (
	ECGI WaveformKind = iota
	ECGII
	ECGIII
	Resp
	Pleth
	ABP
	CVP
	Capno
	EEG
)

// WaveformKinds lists every kind known to the system, in channel order.
var WaveformKinds = []WaveformKind{ECGI, ECGII, ECGIII, Resp, Pleth, ABP, CVP, Capno, EEG}

func (k WaveformKind) String() string {
	switch k {
	case ECGI:
		return "ECG I"
	case ECGII:
		return "ECG II"
	case ECGIII:
		return "ECG III"
	case Resp:
		return "Resp"
	case Pleth:
		return "SpO2"
	case ABP:
		return "ABP"
	case CVP:
		return "CVP"
	case Capno:
		return "ETCO2"
	case EEG:
		return "EEG"
	default:
		return "Unknown"
	}
}

// ParameterKind identifies a discrete numeric vital-sign channel.
type ParameterKind int

const (
	HR ParameterKind = iota
	RR
	SpO2
	NIBPSys
	NIBPDia
	NIBPMap
	Temp1
	Temp2
	EtCO2
	IBP1Sys
	IBP1Dia
	IBP1Map
	IBP2Sys
	IBP2Dia
	IBP2Map
)

// ParameterKinds lists every parameter kind, in channel order.
var ParameterKinds = []ParameterKind{
	HR, RR, SpO2,
	NIBPSys, NIBPDia, NIBPMap,
	Temp1, Temp2, EtCO2,
	IBP1Sys, IBP1Dia, IBP1Map,
	IBP2Sys, IBP2Dia, IBP2Map,
}

func (k ParameterKind) String() string {
	switch k {
	case HR:
		return "HR"
	case RR:
		return "RR"
	case SpO2:
		return "SpO2"
	case NIBPSys:
		return "NIBP-S"
	case NIBPDia:
		return "NIBP-D"
	case NIBPMap:
		return "NIBP-M"
	case Temp1:
		return "Temp"
	case Temp2:
		return "Temp 2"
	case EtCO2:
		return "ETCO2"
	case IBP1Sys:
		return "ABP-S"
	case IBP1Dia:
		return "ABP-D"
	case IBP1Map:
		return "ABP-M"
	case IBP2Sys:
		return "CVP-S"
	case IBP2Dia:
		return "CVP-D"
	case IBP2Map:
		return "CVP-M"
	default:
		return "Unknown"
	}
}

// Unit returns the unit of measurement shown next to the parameter value.
func (k ParameterKind) Unit() string {
	switch k {
	case HR:
		return "bpm"
	case RR:
		return "br/min"
	case SpO2:
		return "%"
	case Temp1, Temp2:
		return "°C"
	case EtCO2:
		return "mmHg"
	case NIBPSys, NIBPDia, NIBPMap, IBP1Sys, IBP1Dia, IBP1Map, IBP2Sys, IBP2Dia, IBP2Map:
		return "mmHg"
	default:
		return ""
	}
}

// AlarmTier is the ordered classification of a parameter value against its
// four thresholds. Technical is reserved for sensor faults reported by
// external providers; the synthetic core never produces it.
type AlarmTier int

const (
	TierLowCritical AlarmTier = iota
	TierLowWarning
	TierNormal
	TierHighWarning
	TierHighCritical
	TierTechnical
)

func (t AlarmTier) String() string {
	switch t {
	case TierLowCritical:
		return "low-critical"
	case TierLowWarning:
		return "low-warning"
	case TierNormal:
		return "normal"
	case TierHighWarning:
		return "high-warning"
	case TierHighCritical:
		return "high-critical"
	case TierTechnical:
		return "technical"
	default:
		return "unknown"
	}
}

// ConnectionStatus tracks a data provider's lifecycle.
type ConnectionStatus int

const (
	Disconnected ConnectionStatus = iota
	Connecting
	Connected
	ConnectionError
)

func (s ConnectionStatus) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case ConnectionError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorCode classifies provider/runtime errors reported on the error event
// stream.
type ErrorCode int

const (
	CodeNone          ErrorCode = 0
	CodeConnection    ErrorCode = 100
	CodeConfiguration ErrorCode = 200
	CodeData          ErrorCode = 300
	CodeHardware      ErrorCode = 400
	CodeCritical      ErrorCode = 500
	CodeUnknown       ErrorCode = 999
)

// AlarmThresholds are the four ordered limits a parameter is classified
// against: LowCritical < LowWarning < HighWarning < HighCritical.
type AlarmThresholds struct {
	LowCritical  float64
	LowWarning   float64
	HighWarning  float64
	HighCritical float64
}

// ValueRange is the expected display range for scaling.
type ValueRange struct {
	Min float64
	Max float64
}

// Color is an RGB display color. The core carries it as channel metadata;
// views map it onto whatever palette they have.
type Color struct {
	R, G, B uint8
}

// Default monitor constants.
const (
	// DefaultSampleRate is the nominal waveform sampling rate in Hz.
	DefaultSampleRate = 250
	// DefaultBufferSeconds of waveform history retained per channel.
	DefaultBufferSeconds = 10
	// DefaultBufferSize is the per-channel ring buffer capacity.
	DefaultBufferSize = 1000
	// DefaultSweepSpeed in pixels per second.
	DefaultSweepSpeed = 25.0
	// DefaultWaveformInterval between waveform generation ticks.
	DefaultWaveformInterval = 40 * time.Millisecond
	// DefaultParameterInterval between parameter generation ticks.
	DefaultParameterInterval = time.Second
)

// DefaultWaveformRange returns the expected amplitude range used for initial
// scaling of a waveform kind.
func DefaultWaveformRange(k WaveformKind) ValueRange {
	switch k {
	case ECGI, ECGII, ECGIII:
		return ValueRange{-1.5, 1.5} // mV
	case Resp:
		return ValueRange{-1.0, 1.0}
	case Pleth:
		return ValueRange{0.0, 1.0}
	case ABP, CVP:
		return ValueRange{0.0, 2.0}
	case Capno:
		return ValueRange{0.0, 1.0}
	case EEG:
		return ValueRange{-50.0, 50.0} // µV
	default:
		return ValueRange{-1.0, 1.0}
	}
}

// DefaultParameterRange returns the expected display range for a parameter.
func DefaultParameterRange(k ParameterKind) ValueRange {
	switch k {
	case HR:
		return ValueRange{30, 240}
	case RR:
		return ValueRange{4, 40}
	case SpO2:
		return ValueRange{70, 100}
	case NIBPSys, IBP1Sys, IBP2Sys:
		return ValueRange{60, 240}
	case NIBPDia, IBP1Dia, IBP2Dia:
		return ValueRange{30, 140}
	case NIBPMap, IBP1Map, IBP2Map:
		return ValueRange{40, 160}
	case Temp1, Temp2:
		return ValueRange{30, 42}
	case EtCO2:
		return ValueRange{0, 100}
	default:
		return ValueRange{0, 100}
	}
}

// DefaultAlarmThresholds returns the default clinical alarm limits for a
// parameter (adult ranges; overridable through configuration).
func DefaultAlarmThresholds(k ParameterKind) AlarmThresholds {
	switch k {
	case HR:
		return AlarmThresholds{40, 50, 120, 150}
	case RR:
		return AlarmThresholds{6, 8, 25, 30}
	case SpO2:
		// No meaningful upper limit; 101 keeps the high tiers unreachable
		// for a value clamped to 100.
		return AlarmThresholds{85, 90, 101, 101}
	case NIBPSys, IBP1Sys:
		return AlarmThresholds{80, 90, 160, 180}
	case NIBPDia, IBP1Dia:
		return AlarmThresholds{40, 50, 90, 110}
	case NIBPMap, IBP1Map:
		return AlarmThresholds{50, 60, 110, 130}
	case IBP2Sys:
		return AlarmThresholds{0, 2, 15, 20}
	case IBP2Dia:
		return AlarmThresholds{0, 0, 8, 12}
	case IBP2Map:
		return AlarmThresholds{0, 1, 10, 15}
	case Temp1, Temp2:
		return AlarmThresholds{35, 36, 38, 39}
	case EtCO2:
		return AlarmThresholds{20, 25, 45, 50}
	default:
		return AlarmThresholds{0, 0, 100, 100}
	}
}

// DefaultWaveformColor returns the conventional monitor trace color.
func DefaultWaveformColor(k WaveformKind) Color {
	switch k {
	case ECGI, ECGII, ECGIII:
		return Color{0, 255, 0}
	case Resp:
		return Color{255, 255, 0}
	case Pleth:
		return Color{0, 255, 255}
	case ABP:
		return Color{255, 0, 0}
	case Capno:
		return Color{255, 255, 255}
	default:
		return Color{255, 255, 255}
	}
}
