package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCascadeMetrics() {
	r.CascadeRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Total number of cascade evaluations",
		},
		[]string{"status"},
	)

	r.CascadeDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "duration_seconds",
			Help:      "Cascade evaluation duration in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
	)

	r.CascadeIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "iterations",
			Help:      "Iterations needed to reach the fixed point",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
		},
	)

	r.CascadeMInfty = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "m_infty",
			Help:      "Fraction of nodes alive in both layers at convergence",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)
}
