// Package observability provides the Prometheus-backed implementation of the
// monitor's logging and metrics port.
package observability

import (
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sf044/vitalsync/internal/ports"
)

// PromObs exposes the monitor's runtime metrics through the default
// Prometheus registry and logs through the standard logger.
type PromObs struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	waveBatches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_waveform_batches_total",
		Help: "Waveform batches accepted into channel buffers.",
	})
	waveRejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_waveform_batches_rejected_total",
		Help: "Waveform batches rejected for timestamp violations.",
	})
	readings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_parameter_readings_total",
		Help: "Parameter readings applied to channels.",
	})
	alarms := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_alarm_transitions_total",
		Help: "Alarm tier transitions across all parameter channels.",
	})
	connects := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_provider_connects_total",
		Help: "Successful provider connections.",
	})
	tickPanics := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_provider_tick_panics_total",
		Help: "Acquisition ticks skipped after a recovered panic.",
	})
	sinkErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vitalsync_sink_write_errors_total",
		Help: "Failed trend sink write batches.",
	})
	journalSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vitalsync_alarm_journal_size_bytes",
		Help: "Size of the alarm journal on disk.",
	})
	alarmGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vitalsync_active_alarms",
		Help: "Parameter channels currently outside their normal tier.",
	})
	tickLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vitalsync_provider_tick_seconds",
		Help:    "Duration of one acquisition tick.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
	sinkLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vitalsync_sink_write_seconds",
		Help:    "Duration of one trend sink write batch.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	prometheus.MustRegister(waveBatches, waveRejected, readings, alarms, connects,
		tickPanics, sinkErrors, journalSize, alarmGauge, tickLatency, sinkLatency)

	return &PromObs{
		counters: map[string]prometheus.Counter{
			"waveform_batches_total":          waveBatches,
			"waveform_batches_rejected_total": waveRejected,
			"parameter_readings_total":        readings,
			"alarm_transitions_total":         alarms,
			"provider_connects_total":         connects,
			"provider_tick_panics_total":      tickPanics,
			"sink_write_errors_total":         sinkErrors,
		},
		gauges: map[string]prometheus.Gauge{
			"alarm_journal_size_bytes": journalSize,
			"active_alarms":            alarmGauge,
		},
		histos: map[string]prometheus.Observer{
			"provider_tick_seconds": tickLatency,
			"sink_write_seconds":    sinkLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	log.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogWarn(msg string, fields ...ports.Field) {
	log.Printf("WARN: %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("ERROR: %s: %v%s", msg, err, formatFields(fields))
		return
	}
	log.Printf("ERROR: %s%s", msg, formatFields(fields))
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func formatFields(fields []ports.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(f.Key)
		b.WriteString("=")
		b.WriteString(fmt.Sprint(f.Value))
	}
	return b.String()
}
