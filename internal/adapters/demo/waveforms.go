// Package demo implements the synthetic data provider: per-kind waveform
// generators, a correlated parameter generator with stochastic extreme-value
// injection, and the acquisition loop that drives both on independent timers.
package demo

import (
	"math"
	"math/rand"

	"github.com/sf044/vitalsync/internal/domain"
)

// PQRST morphology constants: phase offsets, widths, and relative amplitudes
// of each deflection within one cardiac cycle.
const (
	ecgPAmplitude = 0.25
	ecgPWidth     = 0.08
	ecgPOffset    = 0.16
	ecgQAmplitude = -0.1
	ecgQWidth     = 0.03
	ecgQOffset    = 0.31
	ecgRAmplitude = 1.0
	ecgRWidth     = 0.05
	ecgROffset    = 0.34
	ecgSAmplitude = -0.25
	ecgSWidth     = 0.03
	ecgSOffset    = 0.37
	ecgTAmplitude = 0.35
	ecgTWidth     = 0.1
	ecgTOffset    = 0.5
)

// Capnogram phase boundaries within one respiratory cycle.
const (
	capnoInspirationEnd = 0.3
	capnoPlateauStart   = 0.5
	capnoPlateauEnd     = 0.8
	capnoExpirationEnd  = 0.9
)

// Per-kind fixed visual gains.
const (
	ecgGain   = 2.2
	plethGain = 2.5
	abpGain   = 1.5
	capnoGain = 1.5
)

// CycleParams are the physiological inputs driving waveform synthesis. The
// generators assume validated values; clamping happens upstream in the
// provider's Configure.
type CycleParams struct {
	HeartRate       float64
	RespirationRate float64
	SpO2            float64
	SystolicBP      float64
	DiastolicBP     float64
	EtCO2           float64
	Amplitude       float64
	Noise           float64
	// SampleInterval is the spacing between consecutive samples in seconds.
	SampleInterval float64
}

// WaveGen synthesizes waveform sample batches. All shape terms are pure
// functions of elapsed time and CycleParams; only the additive noise and the
// occasional U-wave draw from the generator's seeded RNG.
type WaveGen struct {
	rng *rand.Rand
}

func NewWaveGen(seed int64) *WaveGen {
	return &WaveGen{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces points samples of the given kind starting at elapsed
// seconds. Kinds without a synthetic generator (CVP, EEG) yield nil, as do
// non-positive point counts.
func (g *WaveGen) Generate(kind domain.WaveformKind, elapsed float64, points int, p CycleParams) []float64 {
	if points <= 0 {
		return nil
	}
	switch kind {
	case domain.ECGI, domain.ECGII, domain.ECGIII:
		return g.ecg(elapsed, points, p)
	case domain.Resp:
		return g.respiration(elapsed, points, p)
	case domain.Pleth:
		return g.plethysmograph(elapsed, points, p)
	case domain.ABP:
		return g.arterialPressure(elapsed, points, p)
	case domain.Capno:
		return g.capnograph(elapsed, points, p)
	default:
		return nil
	}
}

// HasGenerator reports whether Generate produces data for the kind.
func HasGenerator(kind domain.WaveformKind) bool {
	switch kind {
	case domain.ECGI, domain.ECGII, domain.ECGIII, domain.Resp, domain.Pleth, domain.ABP, domain.Capno:
		return true
	default:
		return false
	}
}

// gaussBump evaluates a Gaussian deflection of the given amplitude centered
// at offset, zero outside ±width.
func gaussBump(phase, offset, width, amplitude float64) float64 {
	if phase <= offset-width || phase >= offset+width {
		return 0
	}
	d := (phase - offset) / (width / 2.0)
	return amplitude * math.Exp(-d*d)
}

func (g *WaveGen) bounded(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

// ecg builds the PQRST complex from Gaussian bumps at fixed phase offsets,
// with slow baseline wander and an occasional small U-wave.
func (g *WaveGen) ecg(elapsed float64, points int, p CycleParams) []float64 {
	out := make([]float64, 0, points)
	cycle := 60.0 / p.HeartRate

	for i := 0; i < points; i++ {
		t := elapsed + float64(i)*p.SampleInterval
		phase := math.Mod(t, cycle) / cycle

		v := gaussBump(phase, ecgPOffset, ecgPWidth, ecgPAmplitude*1.2)
		v += gaussBump(phase, ecgQOffset, ecgQWidth, ecgQAmplitude*1.3)
		v += gaussBump(phase, ecgROffset, ecgRWidth, ecgRAmplitude*1.4)
		v += gaussBump(phase, ecgSOffset, ecgSWidth, ecgSAmplitude*1.2)
		v += gaussBump(phase, ecgTOffset, ecgTWidth, ecgTAmplitude*1.3)

		// 20% of samples get a subtle U-wave after the T.
		if g.rng.Intn(100) < 20 {
			uOffset := ecgTOffset + ecgTWidth + 0.05
			v += gaussBump(phase, uOffset, 0.06, 0.15)
		}

		// Baseline wander on a 10 s period.
		v += 0.05 * math.Sin(2.0*math.Pi*t/10.0)

		if p.Noise > 0 {
			v += g.bounded(-p.Noise/3, p.Noise/3)
		}

		out = append(out, v*ecgGain*p.Amplitude)
	}
	return out
}

// respiration is an asymmetric sinusoid: inspiration over the first 40% of
// the cycle, slower expiration over the rest.
func (g *WaveGen) respiration(elapsed float64, points int, p CycleParams) []float64 {
	out := make([]float64, 0, points)
	cycle := 60.0 / p.RespirationRate

	for i := 0; i < points; i++ {
		t := elapsed + float64(i)*p.SampleInterval
		phase := math.Mod(t, cycle) / cycle

		var v float64
		if phase < 0.4 {
			v = math.Sin(phase * math.Pi / 0.4)
		} else {
			v = math.Sin((phase-0.4)*math.Pi/0.6 + math.Pi)
		}

		if p.Noise > 0 {
			v += g.bounded(-p.Noise, p.Noise)
		}

		out = append(out, v*p.Amplitude*0.5)
	}
	return out
}

// plethysmograph models pulsatile flow: a skewed systolic peak, diastolic
// runoff, a dicrotic notch with a small rebound wave, and respiratory
// modulation of the baseline. Amplitude scales with the SpO2 value.
func (g *WaveGen) plethysmograph(elapsed float64, points int, p CycleParams) []float64 {
	out := make([]float64, 0, points)
	cycle := 60.0 / p.HeartRate
	respCycle := 60.0 / p.RespirationRate
	baseAmp := (p.SpO2 / 100.0) * p.Amplitude

	for i := 0; i < points; i++ {
		t := elapsed + float64(i)*p.SampleInterval
		phase := math.Mod(t, cycle) / cycle
		respEffect := 0.15 * math.Sin(2.0*math.Pi*t/respCycle)

		var v float64
		if phase <= 0.35 {
			// Systolic upstroke.
			d := (phase - 0.15) / 0.08
			v = baseAmp * 0.95 * math.Exp(-d*d)
		} else {
			// Diastolic runoff.
			fall := 1.0 - math.Pow((phase-0.35)/0.65, 0.7)
			v = baseAmp * 0.4 * fall * fall
		}

		if phase > 0.35 && phase < 0.5 {
			v -= 0.2 * baseAmp * gaussBump(phase, 0.42, 0.06, 1.0)
			// Dicrotic rebound just after the notch.
			if phase > 0.48 && phase < 0.56 {
				d := (phase - 0.51) / 0.04
				v += 0.1 * baseAmp * math.Exp(-d*d)
			}
		}

		v += respEffect * baseAmp
		if respEffect < 0 {
			// Pulsus paradoxus: inspiration damps the pulse slightly.
			v *= 1.0 + 0.05*respEffect
		}

		if p.Noise > 0 {
			v += g.bounded(-p.Noise/3, p.Noise/3) * baseAmp
		}

		out = append(out, v*plethGain)
	}
	return out
}

// arterialPressure builds the arterial waveform piecewise: rapid systolic
// upstroke, peak plateau, decline into the dicrotic notch and rebound, then
// diastolic decay. Beat-to-beat variation perturbs the pressures by ±3%.
func (g *WaveGen) arterialPressure(elapsed float64, points int, p CycleParams) []float64 {
	out := make([]float64, 0, points)
	cycle := 60.0 / p.HeartRate
	respCycle := 60.0 / p.RespirationRate

	systolic := p.SystolicBP
	diastolic := p.DiastolicBP
	span := systolic - diastolic

	for i := 0; i < points; i++ {
		t := elapsed + float64(i)*p.SampleInterval
		phase := math.Mod(t, cycle) / cycle
		respEffect := 0.05 * math.Sin(2.0*math.Pi*math.Mod(t, respCycle)/respCycle)

		v := diastolic
		switch {
		case phase < 0.15:
			n := phase / 0.15
			v += span * math.Pow(n, 1.8) * (3 - 2*n)
		case phase < 0.2:
			n := (phase - 0.15) / 0.05
			v += span * (1.0 - 0.05*n)
		case phase < 0.3:
			n := (phase - 0.2) / 0.1
			v += span * (1.0 - n*0.8)
		case phase < 0.4:
			n := (phase - 0.3) / 0.1
			base := diastolic + span*0.2*(1.0-n)
			if n < 0.5 {
				base -= span * 0.10 * math.Sin(n/0.5*math.Pi)
			} else {
				base += span * 0.08 * math.Sin((n-0.5)/0.5*math.Pi)
			}
			v = base
		default:
			n := (phase - 0.4) / 0.6
			v += span * (1.0 - n) * (1.0 - n) * 0.28
		}

		v += diastolic * respEffect
		v += span * respEffect * 0.3

		if phase < 0.05 {
			beat := g.bounded(-0.03, 0.03)
			systolic = clamp(systolic+beat*systolic, 70.0, 200.0)
			diastolic = clamp(diastolic+beat*diastolic, 40.0, 110.0)
			span = systolic - diastolic
		}

		if p.Noise > 0 {
			v += g.bounded(-p.Noise/4, p.Noise/4)
		}

		out = append(out, v*abpGain*p.Amplitude/100.0)
	}
	return out
}

// capnograph traces the four-phase CO2 curve: inspiratory baseline,
// exponential rise, undulating alveolar plateau, exponential fall.
func (g *WaveGen) capnograph(elapsed float64, points int, p CycleParams) []float64 {
	out := make([]float64, 0, points)
	cycle := 60.0 / p.RespirationRate
	maxCO2 := p.EtCO2 / 50.0

	for i := 0; i < points; i++ {
		t := elapsed + float64(i)*p.SampleInterval
		phase := math.Mod(t, cycle) / cycle

		var v float64
		switch {
		case phase < capnoInspirationEnd:
			v = 0.0
		case phase < capnoPlateauStart:
			n := (phase - capnoInspirationEnd) / (capnoPlateauStart - capnoInspirationEnd)
			v = maxCO2 * (1.0 - math.Exp(-5.0*n))
		case phase < capnoPlateauEnd:
			n := (phase - capnoPlateauStart) / (capnoPlateauEnd - capnoPlateauStart)
			v = maxCO2 * (1.0 + 0.05*n + 0.02*math.Sin(n*3.0*math.Pi))
		case phase < capnoExpirationEnd:
			n := (phase - capnoPlateauEnd) / (capnoExpirationEnd - capnoPlateauEnd)
			v = maxCO2 * 1.05 * math.Exp(-3.0*n)
		default:
			v = maxCO2 * 0.02 * math.Sin(phase*10.0*math.Pi)
		}

		if p.Noise > 0 {
			v += g.bounded(-p.Noise*maxCO2*0.05, p.Noise*maxCO2*0.05)
		}

		out = append(out, v*capnoGain)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
