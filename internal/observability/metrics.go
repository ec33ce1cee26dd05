package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_wheel"

// Metrics holds the Prometheus counters, histograms, and gauges for the wheel service.
type Metrics struct {
	Events           *prometheus.CounterVec // labels: event, outcome={ok,error}
	ScopeTransitions *prometheus.CounterVec // labels: mode={year,month}
	PipelineRunning  prometheus.Gauge

	// Dataset metrics.
	RecordsLoaded       prometheus.Gauge
	UnclassifiedRecords prometheus.Gauge

	// Summary packing.
	PackDuration  prometheus.Histogram
	PackedCircles prometheus.Gauge

	// Frame publication.
	FramesPublished prometheus.Counter
	FrameErrors     prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.Events,
		m.ScopeTransitions,
		m.PipelineRunning,
		m.RecordsLoaded,
		m.UnclassifiedRecords,
		m.PackDuration,
		m.PackedCircles,
		m.FramesPublished,
		m.FrameErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      help("Interaction events handled, by event and outcome."),
		}, []string{"event", "outcome"}),
		ScopeTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scope_transitions_total",
			Help:      help("Committed scope transitions by target mode."),
		}, []string{"mode"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      help("1 when the pipeline is active, 0 when shut down."),
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      help("Daily records in the loaded dataset."),
		}),
		UnclassifiedRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unclassified_records",
			Help:      help("Daily records whose condition is not in the condition table."),
		}),
		PackDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pack_duration_seconds",
			Help:      help("Duration of a scope transition including the summary re-pack."),
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		PackedCircles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "packed_circles",
			Help:      help("Condition circles in the current summary."),
		}),
		FramesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_published_total",
			Help:      help("Frames delivered to frame loaders."),
		}),
		FrameErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_errors_total",
			Help:      help("Frame deliveries that failed."),
		}),
	}
}
