package demo

import (
	"math"
	"math/rand"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

// Per-parameter cycle stagger so extreme-value injection does not fire on
// every channel in the same tick. Prime offsets keep the episodes spread out.
const (
	staggerRR    = 3
	staggerSpO2  = 7
	staggerSys   = 11
	staggerDia   = 13
	staggerIBP1S = 17
	staggerIBP1D = 19
	staggerCVPS  = 23
	staggerCVPD  = 29
	staggerTemp1 = 31
	staggerTemp2 = 37
	staggerEtCO2 = 41
)

// Smoothing percentages applied after drift and injection. Slow-moving
// parameters get proportionally smaller jitter.
const (
	jitterHR    = 0.02
	jitterRR    = 0.03
	jitterSpO2  = 0.01
	jitterNIBP  = 0.03
	jitterIBP1  = 0.02
	jitterCVP   = 0.08
	jitterTemp1 = 0.005
	jitterTemp2 = 0.008
	jitterEtCO2 = 0.04
)

// Normal clinical bands per parameter. The injectors exceed these bounds by a
// percentage, so an excursion always lands in alarm territory without being
// physiologically absurd.
var (
	normalHR    = domain.ValueRange{Min: 40, Max: 150}
	normalRR    = domain.ValueRange{Min: 8, Max: 30}
	normalSpO2  = domain.ValueRange{Min: 94, Max: 100}
	normalSys   = domain.ValueRange{Min: 90, Max: 140}
	normalDia   = domain.ValueRange{Min: 60, Max: 90}
	normalCVP   = domain.ValueRange{Min: 2, Max: 8}
	normalTemp1 = domain.ValueRange{Min: 36.0, Max: 38.0}
	normalTemp2 = domain.ValueRange{Min: 35.5, Max: 37.5}
	normalEtCO2 = domain.ValueRange{Min: 35, Max: 45}
)

// Baseline holds the configured resting values the generator drifts around.
type Baseline struct {
	HeartRate       float64
	RespirationRate float64
	SpO2            float64
	SystolicBP      float64
	DiastolicBP     float64
	Temperature     float64
	Temperature2    float64
	EtCO2           float64
	IBP1Systolic    float64
	IBP1Diastolic   float64
	IBP2Systolic    float64
	IBP2Diastolic   float64
}

// ParamGen produces one correlated set of vital-sign values per cycle. A slow
// sinusoidal trend drives heart rate; respiration, SpO2, blood pressure,
// peripheral temperature and EtCO2 follow the generated cardiorespiratory
// state. Two tiers of stochastic extreme-value injection and a handful of
// clinical scenario overrides layer abnormal episodes on top.
type ParamGen struct {
	rng   *rand.Rand
	obs   ports.Observability
	cycle int
}

func NewParamGen(seed int64, obs ports.Observability) *ParamGen {
	return &ParamGen{
		rng: rand.New(rand.NewSource(seed)),
		obs: obs,
	}
}

// Cycle reports the number of completed generation cycles.
func (g *ParamGen) Cycle() int { return g.cycle }

// Next generates the full parameter set for one cycle and advances the cycle
// counter. Every known parameter kind is present in the result.
func (g *ParamGen) Next(b Baseline) map[domain.ParameterKind]float64 {
	cycle := g.cycle
	g.cycle++

	out := make(map[domain.ParameterKind]float64, len(domain.ParameterKinds))

	// Shared slow trend: one full swing roughly every 21 minutes of cycles.
	hrTrend := math.Sin(float64(cycle)*0.005) * 3.0

	hr := g.injectCriticalExtreme(b.HeartRate+hrTrend, normalHR, cycle)
	hr = g.addVariation(hr, jitterHR)
	out[domain.HR] = hr

	rr := g.injectExtreme(respirationBase(b, hr), normalRR, cycle+staggerRR)
	rr = g.addVariation(rr, jitterRR)
	out[domain.RR] = rr

	spo2 := g.injectCriticalExtreme(spo2Base(b, hr), normalSpO2, cycle+staggerSpO2)
	// Desaturation episode overrides whatever the drift path produced.
	if cycle%30 == 0 && g.rng.Intn(100) < 25 {
		spo2 = g.bounded(70, 85)
	}
	spo2 = g.addVariation(spo2, jitterSpO2)
	if spo2 > 100 {
		spo2 = 100
	}
	out[domain.SpO2] = spo2

	sysBase, diaBase := pressureBases(b, hr)
	sys := g.addVariation(g.injectCriticalExtreme(sysBase, normalSys, cycle+staggerSys), jitterNIBP)
	dia := g.addVariation(g.injectCriticalExtreme(diaBase, normalDia, cycle+staggerDia), jitterNIBP)
	sys, dia = enforcePulsePressure(sys, dia, 20)
	out[domain.NIBPSys] = sys
	out[domain.NIBPDia] = dia
	out[domain.NIBPMap] = meanPressure(sys, dia)

	// Arterial line reads around its own baseline but tracks the cuff's
	// cycle-to-cycle deviation.
	ibp1Sys := g.injectExtreme(b.IBP1Systolic+(sys-b.SystolicBP), normalSys, cycle+staggerIBP1S)
	ibp1Sys = g.addVariation(ibp1Sys, jitterIBP1)
	ibp1Dia := g.injectExtreme(b.IBP1Diastolic+(dia-b.DiastolicBP), normalDia, cycle+staggerIBP1D)
	ibp1Dia = g.addVariation(ibp1Dia, jitterIBP1)
	ibp1Sys, ibp1Dia = enforcePulsePressure(ibp1Sys, ibp1Dia, 20)
	out[domain.IBP1Sys] = ibp1Sys
	out[domain.IBP1Dia] = ibp1Dia
	out[domain.IBP1Map] = meanPressure(ibp1Sys, ibp1Dia)

	// Central venous pressure swings slowly with respiration.
	swing := cvpSwing(cycle)
	cvpSys := g.injectExtreme(b.IBP2Systolic+swing*2, normalCVP, cycle+staggerCVPS)
	cvpSys = g.addVariation(cvpSys, jitterCVP)
	cvpDia := g.injectExtreme(b.IBP2Diastolic+swing*1.5, normalCVP, cycle+staggerCVPD)
	cvpDia = g.addVariation(cvpDia, jitterCVP)
	cvpSys, cvpDia = enforcePulsePressure(cvpSys, cvpDia, 2)
	out[domain.IBP2Sys] = cvpSys
	out[domain.IBP2Dia] = cvpDia
	out[domain.IBP2Map] = meanPressure(cvpSys, cvpDia)

	// Core temperature: injection first, then the fever and hypothermia
	// episodes override it outright.
	temp := g.injectExtreme(b.Temperature, normalTemp1, cycle+staggerTemp1)
	switch {
	case cycle%25 == 0 && g.rng.Intn(100) < 30:
		temp = g.bounded(39, 41)
	case cycle%40 == 0 && g.rng.Intn(100) < 20:
		temp = g.bounded(33, 35)
	}
	out[domain.Temp1] = g.addVariation(temp, jitterTemp1)

	temp2 := g.injectExtreme(peripheralTempBase(b, hr), normalTemp2, cycle+staggerTemp2)
	out[domain.Temp2] = g.addVariation(temp2, jitterTemp2)

	etco2 := g.injectExtreme(etco2Base(b, rr), normalEtCO2, cycle+staggerEtCO2)
	if cycle%22 == 0 && g.rng.Intn(100) < 35 {
		if g.rng.Intn(100) < 50 {
			etco2 = g.bounded(50, 80) // hypoventilation
		} else {
			etco2 = g.bounded(15, 30) // hyperventilation
		}
	}
	out[domain.EtCO2] = g.addVariation(etco2, jitterEtCO2)

	return out
}

// respirationBase nudges the configured rate with the cardiac state: a heart
// running above its baseline pulls respiration up, below pushes it down.
func respirationBase(b Baseline, hr float64) float64 {
	if hr > b.HeartRate {
		return b.RespirationRate + 0.2
	}
	return b.RespirationRate - 0.2
}

// spo2Base sags when the heart races well above baseline and recovers
// slightly otherwise.
func spo2Base(b Baseline, hr float64) float64 {
	if hr > b.HeartRate+10 {
		return b.SpO2 - 0.2
	}
	return b.SpO2 + 0.1
}

// pressureBases couples blood pressure to the cardiac state: above-baseline
// heart rates raise systolic and lower diastolic, below-baseline rates do the
// opposite.
func pressureBases(b Baseline, hr float64) (sys, dia float64) {
	if hr > b.HeartRate {
		return b.SystolicBP + 0.5, b.DiastolicBP - 0.3
	}
	return b.SystolicBP - 0.3, b.DiastolicBP + 0.2
}

// peripheralTempBase tracks cardiac output: bradycardia cools the periphery,
// tachycardia warms it.
func peripheralTempBase(b Baseline, hr float64) float64 {
	switch {
	case hr < 60:
		return b.Temperature2 - 0.1
	case hr > 100:
		return b.Temperature2 + 0.1
	default:
		return b.Temperature2
	}
}

// etco2Base moves against the generated respiration rate: hyperventilation
// washes CO2 out, hypoventilation retains it.
func etco2Base(b Baseline, rr float64) float64 {
	switch {
	case rr > 20:
		return b.EtCO2 - 0.2*(rr-20)
	case rr < 10:
		return b.EtCO2 + 0.3*(10-rr)
	default:
		return b.EtCO2
	}
}

// cvpSwing is the slow respiratory oscillation of central venous pressure,
// phase-shifted so it does not line up with the heart-rate trend.
func cvpSwing(cycle int) float64 {
	return math.Sin(float64(cycle+50) * 0.025)
}

// injectExtreme occasionally replaces the drifted value with one beyond the
// normal band: every 8th cycle at 40% probability, exceeding the bound by
// 10-30%, skewed 60/40 toward the high side. Applied to the routine
// parameters (respiration, arterial line, CVP, temperatures, EtCO2).
func (g *ParamGen) injectExtreme(base float64, r domain.ValueRange, cycle int) float64 {
	if cycle%8 == 0 && g.rng.Intn(100) < 40 {
		exceed := g.bounded(0.10, 0.30)
		if g.rng.Intn(100) < 60 {
			return r.Max * (1.0 + exceed)
		}
		return r.Min * (1.0 - exceed)
	}
	return base
}

// injectCriticalExtreme is the aggressive tier reserved for heart rate, SpO2
// and the cuff pressures: every 5th cycle at 60% probability, exceeding the
// bound by 15-40%, skewed 70/30 toward the high side.
func (g *ParamGen) injectCriticalExtreme(base float64, r domain.ValueRange, cycle int) float64 {
	if cycle%5 == 0 && g.rng.Intn(100) < 60 {
		exceed := g.bounded(0.15, 0.40)
		if g.rng.Intn(100) < 70 {
			return r.Max * (1.0 + exceed)
		}
		return r.Min * (1.0 - exceed)
	}
	return base
}

// addVariation jitters a value by up to ±pct of itself. The percentage is
// clamped to [0, 1]; out-of-range inputs indicate a configuration bug and are
// logged once per occurrence.
func (g *ParamGen) addVariation(v, pct float64) float64 {
	if pct < 0 || pct > 1 {
		if g.obs != nil {
			g.obs.LogWarn("variation percentage out of range, clamping",
				ports.Field{Key: "pct", Value: pct})
		}
		pct = clamp(pct, 0, 1)
	}
	return v + v*pct*g.bounded(-1, 1)
}

func (g *ParamGen) bounded(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

// enforcePulsePressure keeps systolic above diastolic by at least gap,
// raising systolic when the generated pair collapses.
func enforcePulsePressure(sys, dia, gap float64) (float64, float64) {
	if sys < dia+gap {
		sys = dia + gap
	}
	return sys, dia
}

// meanPressure is the standard MAP estimate: diastolic plus a third of the
// pulse pressure.
func meanPressure(sys, dia float64) float64 {
	return dia + (sys-dia)/3.0
}
