package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name exported by this package.
const Namespace = "cascade"

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registry holds all metrics for the application
type Registry struct {
	// Cascade Metrics
	CascadeRunsTotal  *prometheus.CounterVec
	CascadeDuration   prometheus.Histogram
	CascadeIterations prometheus.Histogram
	CascadeMInfty     prometheus.Histogram

	// Batch Metrics
	BatchItemsTotal     *prometheus.CounterVec
	BatchInFlight       prometheus.Gauge
	BatchDuration       prometheus.Histogram
	LastBatchMeanMInfty prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	startTime time.Time
	registry  *prometheus.Registry
}
