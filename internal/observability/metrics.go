// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnector_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// GithubRequestsTotal counts outbound GitHub API requests by result.
	GithubRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_github_requests_total",
		Help: "Total number of GitHub API requests by result",
	}, []string{"result"})

	// CacheRequestsTotal counts cache lookups by key prefix and outcome.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_cache_requests_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"prefix", "outcome"})

	// PostsCreatedTotal counts posts created through the feed.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnector_posts_created_total",
		Help: "Total number of posts created",
	})

	// UsersRegisteredTotal counts successful user registrations.
	UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnector_users_registered_total",
		Help: "Total number of registered users",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCacheHit increments the cache hit counter for the key prefix.
func RecordCacheHit(prefix string) {
	CacheRequestsTotal.WithLabelValues(prefix, "hit").Inc()
}

// RecordCacheMiss increments the cache miss counter for the key prefix.
func RecordCacheMiss(prefix string) {
	CacheRequestsTotal.WithLabelValues(prefix, "miss").Inc()
}
