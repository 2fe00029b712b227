// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_resolutions_total",
			Help: "Total number of queries answered, by winning resolver and status",
		},
		[]string{"resolver", "status"},
	)

	ResolverErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_resolver_errors_total",
			Help: "Total number of resolver failures that were degraded to a decline",
		},
		[]string{"resolver", "error_code"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_resolution_duration_seconds",
			Help:    "Duration of a full pipeline resolution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resolver"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)
