package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Paddock
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec
	DBConnections   prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	SessionsImportedTotal prometheus.CounterVec
	SessionsOrphanedTotal prometheus.Counter
	DriversResolvedTotal  prometheus.CounterVec
	EditsAppliedTotal     prometheus.CounterVec
	EditsRevertedTotal    prometheus.Counter
	BackupsCreatedTotal   prometheus.Counter
	QueueDepth            prometheus.GaugeVec
	ReResolveJobDuration  prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paddock_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paddock_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paddock_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
		DBConnections: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paddock_db_connections",
				Help: "Current number of database connections",
			},
			[]string{"state"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		SessionsImportedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_sessions_imported_total",
				Help: "Total session results imported by session type",
			},
			[]string{"session_type"},
		),
		SessionsOrphanedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "paddock_sessions_orphaned_total",
				Help: "Total session payloads parked as orphans",
			},
		),
		DriversResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_drivers_resolved_total",
				Help: "Driver identity resolutions by outcome (resolved/unresolved)",
			},
			[]string{"outcome"},
		),
		EditsAppliedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paddock_edits_applied_total",
				Help: "Total result edits applied by edit type",
			},
			[]string{"edit_type"},
		),
		EditsRevertedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "paddock_edits_reverted_total",
				Help: "Total result edits reverted",
			},
		),
		BackupsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "paddock_backups_created_total",
				Help: "Total race backups created",
			},
		),
		QueueDepth: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paddock_queue_depth",
				Help: "Current Redis stream depth by stream and state",
			},
			[]string{"stream", "state"},
		),
		ReResolveJobDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "paddock_reresolve_job_duration_seconds",
				Help:    "Identity re-resolution job execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
	}
}
