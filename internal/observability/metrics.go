package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// sounding QC batch.
type Metrics struct {
	// Soundings by terminal outcome: written, no_data, failed.
	Soundings *prometheus.CounterVec

	RecordsRead     prometheus.Counter
	RecordsKept     prometheus.Counter
	DewpointMissing prometheus.Counter

	TransformDuration prometheus.Histogram
	BatchRunning      prometheus.Gauge
	RecordsPublished  prometheus.Counter
}

// NewMetrics creates and registers all batch metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Soundings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sonde_qc",
			Name:      "soundings_total",
			Help:      "Soundings processed by terminal outcome.",
		}, []string{"outcome"}),
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_qc",
			Name:      "records_read_total",
			Help:      "Raw receiver samples read from input files.",
		}),
		RecordsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_qc",
			Name:      "records_kept_total",
			Help:      "Records surviving quality control.",
		}),
		DewpointMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_qc",
			Name:      "dewpoint_missing_total",
			Help:      "Kept records whose dewpoint is undefined (zero humidity).",
		}),
		TransformDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sonde_qc",
			Name:      "transform_duration_seconds",
			Help:      "Duration of one sounding's read-transform-write cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sonde_qc",
			Name:      "batch_running",
			Help:      "1 while the batch is active, 0 after it finishes.",
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_qc",
			Name:      "records_published_total",
			Help:      "QC'd records published to the Kafka sink topic.",
		}),
	}

	prometheus.MustRegister(
		m.Soundings,
		m.RecordsRead,
		m.RecordsKept,
		m.DewpointMissing,
		m.TransformDuration,
		m.BatchRunning,
		m.RecordsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Soundings:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sonde_qc", Name: "soundings_total"}, []string{"outcome"}),
		RecordsRead:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sonde_qc", Name: "records_read_total"}),
		RecordsKept:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sonde_qc", Name: "records_kept_total"}),
		DewpointMissing:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sonde_qc", Name: "dewpoint_missing_total"}),
		TransformDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sonde_qc", Name: "transform_duration_seconds"}),
		BatchRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sonde_qc", Name: "batch_running"}),
		RecordsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sonde_qc", Name: "records_published_total"}),
	}
}
