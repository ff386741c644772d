package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	SCMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_scm_requests_total",
			Help: "Total number of requests sent to the SCM API",
		},
		[]string{"method", "endpoint", "status"},
	)

	SCMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_scm_request_duration_seconds",
			Help:    "SCM API request latency in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_cache_operation_duration_seconds",
			Help:    "Time to complete cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache_name", "operation"},
	)

	SyncRecordsListed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_sync_records_listed_total",
			Help: "Total number of remote certificates pushed onto the sync queue",
		},
	)

	SyncDetailErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_sync_detail_errors_total",
			Help: "Total number of certificate detail lookups that failed during listing",
		},
	)

	SyncRecordsReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_sync_records_reconciled_total",
			Help: "Total number of reconciled certificates by result",
		},
		[]string{"result"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_sync_duration_seconds",
			Help:    "Time to complete a synchronization pass",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: Namespace + "_sync_last_success_timestamp_seconds",
			Help: "Unix time of the last synchronization pass that completed without error",
		},
	)

	EnrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_enrollments_total",
			Help: "Total number of enrollments by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	PickupAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_pickup_attempts",
			Help:    "Number of download attempts made per pickup",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		},
		[]string{"result"},
	)

	IsLeader = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: Namespace + "_leader_is_leader",
			Help: "1 if this instance is the leader, 0 otherwise",
		},
	)
	LeadershipChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_leader_changes_total",
			Help: "Total number of leadership changes",
		})
)
