package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline.
type Metrics struct {
	RowsExtracted        prometheus.Counter
	RecordsParsed        prometheus.Counter
	MagnitudeParseErrors prometheus.Counter
	NewRecords           prometheus.Counter
	EventsPublished      prometheus.Counter
	StrongQuakes         prometheus.Gauge
	PipelineRunning      prometheus.Gauge
	RunDuration          prometheus.Histogram
	Runs                 *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsExtracted,
		m.RecordsParsed,
		m.MagnitudeParseErrors,
		m.NewRecords,
		m.EventsPublished,
		m.StrongQuakes,
		m.PipelineRunning,
		m.RunDuration,
		m.Runs,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "rows_extracted_total",
			Help:      "Total raw table rows received from the source.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "records_parsed_total",
			Help:      "Total rows converted to typed quake records.",
		}),
		MagnitudeParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "magnitude_parse_errors_total",
			Help:      "Rows whose magnitude cell could not be parsed.",
		}),
		NewRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "new_records_total",
			Help:      "Records whose signature was absent from the prior snapshot.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "events_published_total",
			Help:      "New strong-quake events published to the sink topic.",
		}),
		StrongQuakes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "strong_quakes",
			Help:      "Strong quakes selected for the most recent report.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_etl",
			Name:      "pipeline_running",
			Help:      "1 while a pass is executing, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-parse-aggregate-render pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_etl",
			Name:      "runs_total",
			Help:      "Pipeline passes by outcome.",
		}, []string{"outcome"}),
	}
}
