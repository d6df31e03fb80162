package demo

import (
	"math"
	"testing"

	"github.com/sf044/vitalsync/internal/domain"
)

func testParams() CycleParams {
	return CycleParams{
		HeartRate:       70,
		RespirationRate: 15,
		SpO2:            98,
		SystolicBP:      120,
		DiastolicBP:     80,
		EtCO2:           38,
		Amplitude:       1.0,
		Noise:           0,
		SampleInterval:  1.0 / 250.0,
	}
}

func TestECGRWaveIsTheDominantPeak(t *testing.T) {
	g := NewWaveGen(1)
	p := testParams()
	cycle := 60.0 / p.HeartRate

	rPeak := g.Generate(domain.ECGII, 0.34*cycle, 1, p)
	if len(rPeak) != 1 {
		t.Fatalf("expected one sample, got %d", len(rPeak))
	}
	if rPeak[0] < 2.5 {
		t.Fatalf("expected R-wave peak above 2.5, got %v", rPeak[0])
	}

	// Scan one full cycle: nothing should exceed the R-wave.
	scan := g.Generate(domain.ECGII, 0, 250, p)
	for i, v := range scan {
		if v > rPeak[0]+1e-6 {
			t.Fatalf("sample %d (%v) exceeds R-wave peak %v", i, v, rPeak[0])
		}
	}
}

func TestECGPeriodicOutsideUWave(t *testing.T) {
	g := NewWaveGen(7)
	p := testParams()
	p.HeartRate = 60 // 1 s cardiac cycle; baseline wander has a 10 s period

	// Phases away from the randomized U-wave window.
	for _, phase := range []float64{0.10, 0.20, 0.34, 0.45} {
		a := g.Generate(domain.ECGI, phase, 1, p)
		b := g.Generate(domain.ECGI, phase+10.0, 1, p)
		if math.Abs(a[0]-b[0]) > 1e-9 {
			t.Fatalf("phase %v: expected periodic value, got %v then %v", phase, a[0], b[0])
		}
	}
}

func TestRespirationShape(t *testing.T) {
	g := NewWaveGen(3)
	p := testParams()
	p.RespirationRate = 12 // 5 s cycle

	// Peak inhalation at 40% of the cycle... the sine tops out at phase 0.2.
	peak := g.Generate(domain.Resp, 0.2*5.0, 1, p)
	if math.Abs(peak[0]-0.5*p.Amplitude) > 1e-9 {
		t.Fatalf("expected inspiratory peak %v, got %v", 0.5*p.Amplitude, peak[0])
	}

	again := g.Generate(domain.Resp, 0.2*5.0+5.0, 1, p)
	if math.Abs(peak[0]-again[0]) > 1e-9 {
		t.Fatalf("respiration not periodic: %v vs %v", peak[0], again[0])
	}
}

func TestPlethDicroticNotch(t *testing.T) {
	g := NewWaveGen(5)
	p := testParams()
	p.HeartRate = 60

	before := g.Generate(domain.Pleth, 0.38, 1, p)
	notch := g.Generate(domain.Pleth, 0.42, 1, p)
	if notch[0] >= before[0] {
		t.Fatalf("expected dicrotic notch dip: before=%v notch=%v", before[0], notch[0])
	}
}

func TestCapnographPlateau(t *testing.T) {
	g := NewWaveGen(9)
	p := testParams()
	p.RespirationRate = 12 // 5 s cycle
	maxCO2 := p.EtCO2 / 50.0

	baseline := g.Generate(domain.Capno, 0.1*5.0, 1, p)
	if baseline[0] != 0 {
		t.Fatalf("expected zero inspiratory baseline, got %v", baseline[0])
	}

	plateau := g.Generate(domain.Capno, 0.65*5.0, 1, p)
	if plateau[0] < maxCO2*capnoGain*0.95 {
		t.Fatalf("expected alveolar plateau near %v, got %v", maxCO2*capnoGain, plateau[0])
	}
}

func TestArterialPressureStaysPlausible(t *testing.T) {
	g := NewWaveGen(11)
	p := testParams()

	out := g.Generate(domain.ABP, 0, 500, p)
	if len(out) != 500 {
		t.Fatalf("expected 500 samples, got %d", len(out))
	}
	lo, hi := out[0], out[0]
	for _, v := range out {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	// Scaled by gain*amplitude/100, the trace should span roughly
	// diastolic..systolic pressure.
	if hi < 120*abpGain/100.0*0.8 || lo > 80*abpGain/100.0*1.3 {
		t.Fatalf("arterial trace out of plausible band: min=%v max=%v", lo, hi)
	}
	if hi-lo < 0.1 {
		t.Fatalf("expected pulsatile trace, got flat span %v", hi-lo)
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	g := NewWaveGen(1)
	p := testParams()

	if got := g.Generate(domain.ECGII, 0, 0, p); got != nil {
		t.Fatalf("expected nil for zero points, got %v", got)
	}
	if got := g.Generate(domain.ECGII, 0, -5, p); got != nil {
		t.Fatalf("expected nil for negative points, got %v", got)
	}
	if got := g.Generate(domain.EEG, 0, 10, p); got != nil {
		t.Fatalf("expected nil for kind without generator, got %v", got)
	}
	if HasGenerator(domain.EEG) || HasGenerator(domain.CVP) {
		t.Fatalf("EEG and CVP should have no synthetic generator")
	}
	if !HasGenerator(domain.ECGII) || !HasGenerator(domain.Capno) {
		t.Fatalf("expected generators for ECG and capnograph")
	}
}
