package demo

import (
	"math"
	"testing"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

func testBaseline() Baseline {
	return Baseline{
		HeartRate:       72,
		RespirationRate: 15,
		SpO2:            98,
		SystolicBP:      120,
		DiastolicBP:     80,
		Temperature:     36.8,
		Temperature2:    36.5,
		EtCO2:           38,
		IBP1Systolic:    125,
		IBP1Diastolic:   78,
		IBP2Systolic:    8,
		IBP2Diastolic:   4,
	}
}

type warnRecorder struct {
	warns []string
}

func (w *warnRecorder) LogInfo(msg string, fields ...ports.Field)             {}
func (w *warnRecorder) LogWarn(msg string, fields ...ports.Field)             { w.warns = append(w.warns, msg) }
func (w *warnRecorder) LogError(msg string, err error, fields ...ports.Field) {}
func (w *warnRecorder) IncCounter(name string, v float64)                     {}
func (w *warnRecorder) SetGauge(name string, v float64)                       {}
func (w *warnRecorder) ObserveLatency(name string, seconds float64)           {}

func TestNextEmitsEveryParameterKind(t *testing.T) {
	g := NewParamGen(1, nil)

	out := g.Next(testBaseline())
	for _, kind := range domain.ParameterKinds {
		if _, ok := out[kind]; !ok {
			t.Fatalf("missing parameter %v", kind)
		}
	}
	if g.Cycle() != 1 {
		t.Fatalf("expected cycle counter to advance, got %d", g.Cycle())
	}
}

func TestNextEnforcesPhysiologicalConsistency(t *testing.T) {
	g := NewParamGen(42, nil)
	b := testBaseline()

	for i := 0; i < 300; i++ {
		out := g.Next(b)

		if out[domain.SpO2] > 100 {
			t.Fatalf("cycle %d: SpO2 above 100: %v", i, out[domain.SpO2])
		}
		if out[domain.NIBPSys] < out[domain.NIBPDia]+20 {
			t.Fatalf("cycle %d: pulse pressure collapsed: sys=%v dia=%v",
				i, out[domain.NIBPSys], out[domain.NIBPDia])
		}
		if out[domain.IBP1Sys] < out[domain.IBP1Dia]+20 {
			t.Fatalf("cycle %d: arterial pulse pressure collapsed: sys=%v dia=%v",
				i, out[domain.IBP1Sys], out[domain.IBP1Dia])
		}
		if out[domain.IBP2Sys] < out[domain.IBP2Dia]+2 {
			t.Fatalf("cycle %d: CVP pulse pressure collapsed: sys=%v dia=%v",
				i, out[domain.IBP2Sys], out[domain.IBP2Dia])
		}

		wantMAP := out[domain.NIBPDia] + (out[domain.NIBPSys]-out[domain.NIBPDia])/3.0
		if math.Abs(out[domain.NIBPMap]-wantMAP) > 1e-9 {
			t.Fatalf("cycle %d: MAP mismatch: got %v want %v", i, out[domain.NIBPMap], wantMAP)
		}
	}
}

func TestInjectExtremeExceedsBandWhenTriggered(t *testing.T) {
	g := NewParamGen(99, nil)
	r := domain.ValueRange{Min: 8, Max: 30}

	fired := false
	for i := 0; i < 500; i++ {
		v := g.injectExtreme(15, r, 8)
		if v == 15 {
			continue
		}
		fired = true
		highOK := v >= r.Max*1.10-1e-9 && v <= r.Max*1.30+1e-9
		lowOK := v >= r.Min*0.70-1e-9 && v <= r.Min*0.90+1e-9
		if !highOK && !lowOK {
			t.Fatalf("excursion outside 10-30%% band: %v", v)
		}
	}
	if !fired {
		t.Fatalf("injector never fired in 500 draws")
	}
}

func TestInjectCriticalExtremeExceedsBandWhenTriggered(t *testing.T) {
	g := NewParamGen(99, nil)
	r := domain.ValueRange{Min: 40, Max: 150}

	fired := false
	for i := 0; i < 500; i++ {
		v := g.injectCriticalExtreme(100, r, 5)
		if v == 100 {
			continue
		}
		fired = true
		highOK := v >= r.Max*1.15-1e-9 && v <= r.Max*1.40+1e-9
		lowOK := v >= r.Min*0.60-1e-9 && v <= r.Min*0.85+1e-9
		if !highOK && !lowOK {
			t.Fatalf("critical excursion outside 15-40%% band: %v", v)
		}
	}
	if !fired {
		t.Fatalf("critical injector never fired in 500 draws")
	}
}

func TestInjectorsSkipForeignCadences(t *testing.T) {
	g := NewParamGen(7, nil)
	r := domain.ValueRange{Min: 40, Max: 150}

	// Each tier has its own cadence: the routine injector must ignore the
	// 5th-cycle rhythm, the critical one the 8th-cycle rhythm, and both
	// must pass cycles matching neither.
	for i := 0; i < 500; i++ {
		if v := g.injectExtreme(100, r, 5); v != 100 {
			t.Fatalf("routine injector fired on a critical cycle: %v", v)
		}
		if v := g.injectCriticalExtreme(100, r, 8); v != 100 {
			t.Fatalf("critical injector fired on a routine cycle: %v", v)
		}
		if v := g.injectExtreme(100, r, 7); v != 100 {
			t.Fatalf("routine injector fired on an off-cycle: %v", v)
		}
		if v := g.injectCriticalExtreme(100, r, 7); v != 100 {
			t.Fatalf("critical injector fired on an off-cycle: %v", v)
		}
	}
}

func TestTierAssignmentAcrossParameters(t *testing.T) {
	g := NewParamGen(5, nil)
	b := testBaseline()

	var maxHR, maxRR, maxTemp2 float64
	minCVPDia := math.Inf(1)
	for i := 0; i < 4000; i++ {
		out := g.Next(b)
		maxHR = math.Max(maxHR, out[domain.HR])
		maxRR = math.Max(maxRR, out[domain.RR])
		maxTemp2 = math.Max(maxTemp2, out[domain.Temp2])
		minCVPDia = math.Min(minCVPDia, out[domain.IBP2Dia])
	}

	// Heart rate gets the critical tier: excursions reach at least 15%
	// beyond the normal band.
	if maxHR < 160 {
		t.Fatalf("critical excursions never reached heart rate: max %v", maxHR)
	}
	// Respiration gets only the routine tier: 30% beyond its band plus
	// jitter is the ceiling.
	if maxRR > 30*1.30*(1+jitterRR)+1e-6 {
		t.Fatalf("respiration exceeded the routine-tier ceiling: %v", maxRR)
	}
	// Peripheral temperature has no scenario override, so anything past
	// 40°C can only come from routine-tier injection.
	if maxTemp2 < 40 {
		t.Fatalf("routine excursions never reached peripheral temperature: max %v", maxTemp2)
	}
	// CVP low-side excursions undercut the drift floor.
	if minCVPDia > 2.0 {
		t.Fatalf("routine excursions never reached CVP: min %v", minCVPDia)
	}
}

func TestRespirationBaseFollowsHeartRate(t *testing.T) {
	b := testBaseline()
	if got := respirationBase(b, b.HeartRate+8); got != b.RespirationRate+0.2 {
		t.Fatalf("elevated heart rate: got %v", got)
	}
	if got := respirationBase(b, b.HeartRate-8); got != b.RespirationRate-0.2 {
		t.Fatalf("lowered heart rate: got %v", got)
	}
}

func TestSpO2BaseSagsWithTachycardia(t *testing.T) {
	b := testBaseline()
	if got := spo2Base(b, b.HeartRate+15); got != b.SpO2-0.2 {
		t.Fatalf("tachycardia: got %v", got)
	}
	if got := spo2Base(b, b.HeartRate+5); got != b.SpO2+0.1 {
		t.Fatalf("normal rate: got %v", got)
	}
}

func TestPressureBasesCoupleToHeartRate(t *testing.T) {
	b := testBaseline()

	sys, dia := pressureBases(b, b.HeartRate+10)
	if sys != b.SystolicBP+0.5 || dia != b.DiastolicBP-0.3 {
		t.Fatalf("elevated rate: got %v/%v", sys, dia)
	}
	sys, dia = pressureBases(b, b.HeartRate-10)
	if sys != b.SystolicBP-0.3 || dia != b.DiastolicBP+0.2 {
		t.Fatalf("lowered rate: got %v/%v", sys, dia)
	}
}

func TestPeripheralTempTracksCardiacOutput(t *testing.T) {
	b := testBaseline()
	if got := peripheralTempBase(b, 50); got != b.Temperature2-0.1 {
		t.Fatalf("bradycardia: got %v", got)
	}
	if got := peripheralTempBase(b, 110); got != b.Temperature2+0.1 {
		t.Fatalf("tachycardia: got %v", got)
	}
	if got := peripheralTempBase(b, 80); got != b.Temperature2 {
		t.Fatalf("normal rate: got %v", got)
	}
}

func TestEtCO2BaseMovesAgainstRespiration(t *testing.T) {
	b := testBaseline()
	if got := etco2Base(b, 30); math.Abs(got-(b.EtCO2-2.0)) > 1e-9 {
		t.Fatalf("hyperventilation: got %v", got)
	}
	if got := etco2Base(b, 5); math.Abs(got-(b.EtCO2+1.5)) > 1e-9 {
		t.Fatalf("hypoventilation: got %v", got)
	}
	if got := etco2Base(b, 15); got != b.EtCO2 {
		t.Fatalf("normal rate: got %v", got)
	}
}

func TestCVPSwingOscillates(t *testing.T) {
	// sin((13+50)·0.025) sits at the crest, sin((138+50)·0.025) at the
	// trough; the swing never exceeds unit amplitude.
	if v := cvpSwing(13); v < 0.99 {
		t.Fatalf("expected crest near cycle 13, got %v", v)
	}
	if v := cvpSwing(138); v > -0.99 {
		t.Fatalf("expected trough near cycle 138, got %v", v)
	}
	for c := 0; c < 300; c++ {
		if v := cvpSwing(c); v < -1 || v > 1 {
			t.Fatalf("swing escaped unit amplitude at cycle %d: %v", c, v)
		}
	}
}

func TestAddVariationStaysProportional(t *testing.T) {
	g := NewParamGen(3, nil)

	for i := 0; i < 200; i++ {
		v := g.addVariation(100, 0.05)
		if v < 95 || v > 105 {
			t.Fatalf("variation escaped ±5%% band: %v", v)
		}
	}
}

func TestAddVariationClampsPercentAndWarns(t *testing.T) {
	rec := &warnRecorder{}
	g := NewParamGen(3, rec)

	v := g.addVariation(100, 1.5)
	if v < 0 || v > 200 {
		t.Fatalf("clamped variation escaped ±100%% band: %v", v)
	}
	if len(rec.warns) != 1 {
		t.Fatalf("expected one warning, got %d", len(rec.warns))
	}

	g.addVariation(100, -0.2)
	if len(rec.warns) != 2 {
		t.Fatalf("expected warning for negative percentage")
	}
}
