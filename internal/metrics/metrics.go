// Package metrics provides Prometheus metrics for the site.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts cache reads by store kind and outcome.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediasite",
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups",
		},
		[]string{"cache", "result"},
	)

	// CacheWriteErrors counts swallowed cache write failures.
	CacheWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediasite",
			Name:      "cache_write_errors_total",
			Help:      "Total number of failed cache writes",
		},
		[]string{"cache"},
	)

	// AuthorLookups counts user service lookups by outcome.
	AuthorLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediasite",
			Name:      "author_lookups_total",
			Help:      "Total number of author lookups against the user service",
		},
		[]string{"result"},
	)

	// RequestDuration measures page render duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediasite",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

// RecordCacheHit records a cache hit.
func RecordCacheHit(cache string) {
	CacheLookups.WithLabelValues(cache, "hit").Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cache string) {
	CacheLookups.WithLabelValues(cache, "miss").Inc()
}

// RecordCacheWriteError records a failed cache write.
func RecordCacheWriteError(cache string) {
	CacheWriteErrors.WithLabelValues(cache).Inc()
}

// RecordAuthorLookup records an author lookup outcome: "found", "missing" or "error".
func RecordAuthorLookup(result string) {
	AuthorLookups.WithLabelValues(result).Inc()
}

// RecordRequest records a request duration.
func RecordRequest(route, status string, seconds float64) {
	RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
