package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// quake analysis service.
type Metrics struct {
	RecordsParsed prometheus.Counter
	ParseErrors   prometheus.Counter

	SnapshotEvents prometheus.Gauge

	// Ingest pipeline metrics.
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Query API metrics.
	Queries       *prometheus.CounterVec   // labels: kind={query,hotspot}, outcome={ok,invalid,error}
	QueryDuration *prometheus.HistogramVec // labels: kind={query,hotspot}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_analysis",
			Name:      "records_parsed_total",
			Help:      "Total feed records successfully parsed into events.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_analysis",
			Name:      "parse_errors_total",
			Help:      "Total feed records dropped as malformed.",
		}),
		SnapshotEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_analysis",
			Name:      "snapshot_events",
			Help:      "Earthquake events in the currently published snapshot.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_analysis",
			Name:      "pipeline_running",
			Help:      "1 when the ingest pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_analysis",
			Name:      "batch_size",
			Help:      "Number of raw records per extracted batch.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_analysis",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-parse-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_analysis",
			Name:      "queries_total",
			Help:      "Query API requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_analysis",
			Name:      "query_duration_seconds",
			Help:      "Query evaluation duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"kind"}),
	}

	prometheus.MustRegister(
		m.RecordsParsed,
		m.ParseErrors,
		m.SnapshotEvents,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Queries,
		m.QueryDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsParsed:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_analysis", Name: "records_parsed_total"}),
		ParseErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_analysis", Name: "parse_errors_total"}),
		SnapshotEvents:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_analysis", Name: "snapshot_events"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_analysis", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_analysis", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_analysis", Name: "batch_processing_duration_seconds"}),
		Queries:                 prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_analysis", Name: "queries_total"}, []string{"kind", "outcome"}),
		QueryDuration:           prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "quake_analysis", Name: "query_duration_seconds"}, []string{"kind"}),
	}
}
