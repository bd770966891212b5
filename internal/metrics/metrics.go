package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the evaluation service.
type Metrics struct {
	// Evaluation outcomes by cost model and result
	EvaluationOutcome *prometheus.CounterVec

	// Single-scenario evaluation latency
	EvaluateLatency prometheus.Histogram

	// Sweep latency by swept parameter
	SweepLatency *prometheus.HistogramVec

	// Runs currently held in the in-memory history
	HistoryRuns prometheus.Gauge
}

// New creates a new Metrics instance with all service metrics registered
// on the default registry.
func New() *Metrics {
	return &Metrics{
		EvaluationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dualwell_evaluations_total",
			Help: "Total scenario evaluations by cost model and outcome",
		}, []string{"cost_model", "outcome"}), // outcome: "ok", "invalid"

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dualwell_evaluate_duration_seconds",
			Help:    "Duration of a single scenario evaluation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		SweepLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dualwell_sweep_duration_seconds",
			Help:    "Duration of a full parameter sweep by swept parameter",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"param"}),

		HistoryRuns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dualwell_history_runs",
			Help: "Number of evaluation runs held in the in-memory history",
		}),
	}
}

// IncrementEvaluation records an evaluation outcome.
func (m *Metrics) IncrementEvaluation(costModel, outcome string) {
	if m != nil {
		m.EvaluationOutcome.WithLabelValues(costModel, outcome).Inc()
	}
}

// ObserveEvaluateLatency records the duration of a single evaluation.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// ObserveSweepLatency records the duration of a sweep over one parameter.
func (m *Metrics) ObserveSweepLatency(param string, d time.Duration) {
	if m != nil {
		m.SweepLatency.WithLabelValues(param).Observe(d.Seconds())
	}
}

// SetHistoryRuns records the current history size.
func (m *Metrics) SetHistoryRuns(n int) {
	if m != nil {
		m.HistoryRuns.Set(float64(n))
	}
}
