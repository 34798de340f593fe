package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// EngineMetrics instruments the risk engine on a private Prometheus
// registry. The engine has no service surface, so nothing is exposed over
// HTTP; callers pull the families out with Gather.
type EngineMetrics struct {
	registry *prometheus.Registry

	riskComputations   *prometheus.CounterVec
	instancesEvaluated *prometheus.CounterVec
	recordMatches      *prometheus.CounterVec
	riskDuration       *prometheus.HistogramVec
}

// NewEngineMetrics creates and registers the engine metric set.
func NewEngineMetrics() *EngineMetrics {
	m := &EngineMetrics{
		registry: prometheus.NewRegistry(),
		riskComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mobrisk",
			Name:      "risk_computations_total",
			Help:      "Per-individual risk computations completed.",
		}, []string{"attack"}),
		instancesEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mobrisk",
			Name:      "instances_evaluated_total",
			Help:      "Background knowledge instances evaluated.",
		}, []string{"attack"}),
		recordMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mobrisk",
			Name:      "record_matches_total",
			Help:      "Dataset records matched by an instance.",
		}, []string{"attack"}),
		riskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mobrisk",
			Name:      "risk_computation_duration_seconds",
			Help:      "Duration of per-individual risk computations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"attack"}),
	}

	m.registry.MustRegister(
		m.riskComputations,
		m.instancesEvaluated,
		m.recordMatches,
		m.riskDuration,
	)
	return m
}

// ObserveRisk records one completed per-individual risk computation.
func (m *EngineMetrics) ObserveRisk(attack string, instances int, duration time.Duration) {
	m.riskComputations.WithLabelValues(attack).Inc()
	m.instancesEvaluated.WithLabelValues(attack).Add(float64(instances))
	m.riskDuration.WithLabelValues(attack).Observe(duration.Seconds())
}

// AddMatches records how many dataset records one instance matched.
func (m *EngineMetrics) AddMatches(attack string, matches int) {
	m.recordMatches.WithLabelValues(attack).Add(float64(matches))
}

// Gather returns the current metric families.
func (m *EngineMetrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}
