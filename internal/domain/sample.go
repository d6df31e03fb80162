package domain

// WaveformBatch is one waveform generation tick's worth of samples for a
// single channel. TimestampMs is monotonic milliseconds; within a channel,
// batches must carry strictly increasing timestamps.
type WaveformBatch struct {
	Kind        WaveformKind `json:"kind"`
	TimestampMs int64        `json:"ts"`
	Samples     []float64    `json:"samples"`
}

// ParameterReading is a single numeric vital-sign value.
type ParameterReading struct {
	Kind        ParameterKind `json:"kind"`
	TimestampMs int64         `json:"ts"`
	Value       float64       `json:"value"`
}

// AlarmEvent records a parameter channel crossing into a new alarm tier.
// These are what the alarm journal persists.
type AlarmEvent struct {
	Kind        ParameterKind `json:"kind"`
	TimestampMs int64         `json:"ts"`
	Value       float64       `json:"value"`
	Tier        AlarmTier     `json:"tier"`
	Previous    AlarmTier     `json:"previous"`
}

// ProviderError is a non-fatal fault reported by a provider.
type ProviderError struct {
	Code    ErrorCode
	Message string
}

// ProviderSettings is the sparse configuration record applied to a provider.
// Nil fields retain the provider's prior value, so callers can patch a
// single knob without restating the rest.
type ProviderSettings struct {
	HeartRate        *int     `yaml:"heart_rate,omitempty"`
	RespirationRate  *int     `yaml:"respiration_rate,omitempty"`
	SpO2             *int     `yaml:"spo2,omitempty"`
	SystolicBP       *int     `yaml:"systolic_bp,omitempty"`
	DiastolicBP      *int     `yaml:"diastolic_bp,omitempty"`
	Temperature      *float64 `yaml:"temperature,omitempty"`
	Temperature2     *float64 `yaml:"temperature2,omitempty"`
	EtCO2            *int     `yaml:"etco2,omitempty"`
	IBP1Systolic     *int     `yaml:"ibp1_systolic,omitempty"`
	IBP1Diastolic    *int     `yaml:"ibp1_diastolic,omitempty"`
	IBP2Systolic     *int     `yaml:"ibp2_systolic,omitempty"`
	IBP2Diastolic    *int     `yaml:"ibp2_diastolic,omitempty"`
	UpdateIntervalMs *int     `yaml:"update_interval_ms,omitempty"`
	Amplitude        *float64 `yaml:"amplitude,omitempty"`
	Frequency        *float64 `yaml:"frequency,omitempty"`
	Noise            *float64 `yaml:"noise,omitempty"`
	Artifacts        *bool    `yaml:"artifacts,omitempty"`
}
