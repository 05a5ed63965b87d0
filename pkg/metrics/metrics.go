package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
	}

	r.initCascadeMetrics()
	r.initBatchMetrics()
	r.initSystemMetrics()

	return r
}

// RecordCascade records one cascade evaluation. iterations and mInfty are
// only observed for successful runs.
func (r *Registry) RecordCascade(err error, duration time.Duration, iterations int, mInfty float64) {
	if err != nil {
		r.CascadeRunsTotal.WithLabelValues(StatusError).Inc()
		return
	}
	r.CascadeRunsTotal.WithLabelValues(StatusSuccess).Inc()
	r.CascadeDuration.Observe(duration.Seconds())
	r.CascadeIterations.Observe(float64(iterations))
	r.CascadeMInfty.Observe(mInfty)
}

// RecordBatchItem records the outcome of a single batch item
func (r *Registry) RecordBatchItem(err error) {
	if err != nil {
		r.BatchItemsTotal.WithLabelValues(StatusError).Inc()
		return
	}
	r.BatchItemsTotal.WithLabelValues(StatusSuccess).Inc()
}

// RecordBatch records a completed batch
func (r *Registry) RecordBatch(duration time.Duration, meanMInfty float64) {
	r.BatchDuration.Observe(duration.Seconds())
	r.LastBatchMeanMInfty.Set(meanMInfty)
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges
func (r *Registry) UpdateSystemMetrics() {
	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteTextfile refreshes system gauges and writes every metric to path in
// the Prometheus text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}
