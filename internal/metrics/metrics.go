// Package metrics exposes the Prometheus collectors of the budget service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeExact       = "exact"
	OutcomeApproximate = "approximate"
	OutcomeEmpty       = "empty"
	OutcomeCached      = "cached"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// RecommendationsTotal counts recommendation requests by outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_recommendations_total",
			Help: "Total number of combination recommendations by outcome",
		},
		[]string{"outcome"},
	)

	// SearchDuration tracks time spent in the combination search.
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "budget_search_duration_seconds",
			Help:    "Combination search duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	// SearchSteps tracks how many nodes a search visited.
	SearchSteps = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "budget_search_steps",
			Help:    "Search nodes visited per combination search",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10),
		},
		[]string{"mode"},
	)

	// SearchInterruptedTotal counts searches stopped by a deadline or step budget.
	SearchInterruptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_search_interrupted_total",
			Help: "Combination searches stopped before exhausting the tree",
		},
		[]string{"mode"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState reports 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// AsyncLogDroppedTotal counts log entries dropped because the pool was saturated.
	AsyncLogDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "async_log_dropped_total",
			Help: "Log entries dropped by the async writer",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
	}
}

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(outcome string) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
}

// RecordSearch records one engine run. mode is "exact" or "approximate".
func RecordSearch(mode string, duration time.Duration, steps int, interrupted bool) {
	SearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	SearchSteps.WithLabelValues(mode).Observe(float64(steps))
	if interrupted {
		SearchInterruptedTotal.WithLabelValues(mode).Inc()
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheSize sets the current size of the named cache.
func UpdateCacheSize(cache string, size int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
}

// SetCircuitBreakerState publishes the numeric state of a breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAsyncLogDropped counts one dropped log entry.
func RecordAsyncLogDropped() {
	AsyncLogDroppedTotal.Inc()
}
