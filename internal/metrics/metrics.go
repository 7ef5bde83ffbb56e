// Package metrics exposes Prometheus collectors for the quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuotesTotal counts single-quantity quotes by package type and outcome.
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_total",
			Help: "Total number of single-quantity quotes",
		},
		[]string{"package_type", "status"},
	)

	QuoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_duration_seconds",
			Help:    "Single quote calculation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// ComparisonsTotal counts comparisons; status is success, partial or error.
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparisons_total",
			Help: "Total number of multi-quantity comparisons",
		},
		[]string{"status"},
	)

	ComparisonDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "comparison_duration_seconds",
			Help:    "Multi-quantity comparison duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	ComparisonQuantities = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "comparison_quantities",
			Help:    "Number of distinct quantities per comparison",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	ValidationIssuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_issues_total",
			Help: "Validation issues by kind and severity",
		},
		[]string{"kind", "severity"},
	)

	// CacheOperationsTotal is labelled by tier (local or redis).
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of quote cache operations",
		},
		[]string{"tier", "operation", "result"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current local quote cache size",
		},
	)

	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Local quote cache capacity",
		},
	)

	SharesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparison_shares_total",
			Help: "Share operations by action and result",
		},
		[]string{"action", "result"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparison_exports_total",
			Help: "Comparison exports by format",
		},
		[]string{"format"},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	RequestLogsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_logs_total",
			Help: "Persisted request logs by result (written, dropped, error)",
		},
		[]string{"result"},
	)

	CostModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cost_model_version",
			Help: "Version of the cost model in use (0 for built-in defaults or a file)",
		},
	)
)

// PrometheusMiddleware collects HTTP metrics labelled by route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

func RecordQuote(duration time.Duration, packageType, status string) {
	QuoteDuration.Observe(duration.Seconds())
	QuotesTotal.WithLabelValues(packageType, status).Inc()
}

func RecordComparison(duration time.Duration, quantities int, status string) {
	ComparisonDuration.Observe(duration.Seconds())
	ComparisonQuantities.Observe(float64(quantities))
	ComparisonsTotal.WithLabelValues(status).Inc()
}

func RecordValidationIssue(kind, severity string) {
	ValidationIssuesTotal.WithLabelValues(kind, severity).Inc()
}

func RecordCacheOperation(tier, operation, result string) {
	CacheOperationsTotal.WithLabelValues(tier, operation, result).Inc()
}

func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

func RecordShare(action, result string) {
	SharesTotal.WithLabelValues(action, result).Inc()
}

func RecordExport(format string) {
	ExportsTotal.WithLabelValues(format).Inc()
}

// SetCircuitBreakerState takes the numeric value of circuitbreaker.State.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordRequestLogs(result string, n int) {
	RequestLogsTotal.WithLabelValues(result).Add(float64(n))
}

func SetCostModelVersion(version int) {
	CostModelVersion.Set(float64(version))
}
