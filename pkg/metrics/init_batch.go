package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBatchMetrics() {
	r.BatchItemsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "batch_items_total",
			Help:      "Total number of batch items evaluated",
		},
		[]string{"status"},
	)

	r.BatchInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "batch_in_flight",
			Help:      "Batch items currently being evaluated",
		},
	)

	r.BatchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock duration of a batch in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
	)

	r.LastBatchMeanMInfty = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_batch_mean_m_infty",
			Help:      "Mean m_infty over the successful items of the last batch",
		},
	)
}
