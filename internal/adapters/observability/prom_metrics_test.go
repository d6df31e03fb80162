package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromObsMetrics(t *testing.T) {
	origReg := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = origReg
		prometheus.DefaultGatherer = origGatherer
	})

	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	obs := NewPromObs()

	obs.IncCounter("waveform_batches_total", 5)
	if got := testutil.ToFloat64(obs.counters["waveform_batches_total"]); got != 5 {
		t.Fatalf("expected batch counter 5, got %f", got)
	}

	obs.IncCounter("alarm_transitions_total", 2)
	if got := testutil.ToFloat64(obs.counters["alarm_transitions_total"]); got != 2 {
		t.Fatalf("expected alarm counter 2, got %f", got)
	}

	obs.SetGauge("alarm_journal_size_bytes", 42)
	if got := testutil.ToFloat64(obs.gauges["alarm_journal_size_bytes"]); got != 42 {
		t.Fatalf("expected journal gauge 42, got %f", got)
	}

	obs.ObserveLatency("provider_tick_seconds", 0.002)
	hCollector := obs.histos["provider_tick_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected tick histogram to record 1 sample, got %d", samples)
	}

	// Unknown names are ignored rather than panicking.
	obs.IncCounter("no_such_counter", 1)
	obs.SetGauge("no_such_gauge", 1)
	obs.ObserveLatency("no_such_histogram", 1)
}
