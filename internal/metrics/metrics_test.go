package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/quotes/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		label          string
		status         string
		expectedStatus int
	}{
		{"labels by route template", "/quotes/abc", "/quotes/:id", "200", http.StatusOK},
		{"records error status", "/error", "/error", "500", http.StatusInternalServerError},
		{"collapses unmatched paths", "/nope/123", "unmatched", "404", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.label, tt.status)
			before := testutil.ToFloat64(counter)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordQuote(t *testing.T) {
	counter := QuotesTotal.WithLabelValues("stand_up", "success")
	before := testutil.ToFloat64(counter)

	RecordQuote(2*time.Millisecond, "stand_up", "success")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordComparison(t *testing.T) {
	counter := ComparisonsTotal.WithLabelValues("partial")
	before := testutil.ToFloat64(counter)

	RecordComparison(5*time.Millisecond, 4, "partial")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordCacheOperation(t *testing.T) {
	local := CacheOperationsTotal.WithLabelValues("local", "get", "hit")
	redis := CacheOperationsTotal.WithLabelValues("redis", "get", "hit")
	beforeLocal, beforeRedis := testutil.ToFloat64(local), testutil.ToFloat64(redis)

	RecordCacheOperation("local", "get", "hit")
	RecordCacheOperation("local", "get", "hit")
	RecordCacheOperation("redis", "get", "hit")

	assert.Equal(t, beforeLocal+2, testutil.ToFloat64(local))
	assert.Equal(t, beforeRedis+1, testutil.ToFloat64(redis))
}

func TestGauges(t *testing.T) {
	UpdateCacheMetrics(42, 1000)
	assert.Equal(t, 42.0, testutil.ToFloat64(CacheSize))
	assert.Equal(t, 1000.0, testutil.ToFloat64(CacheCapacity))

	SetCircuitBreakerState("mongo_shares", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongo_shares")))

	SetCostModelVersion(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(CostModelVersion))
}

func TestCounters(t *testing.T) {
	share := SharesTotal.WithLabelValues("create", "success")
	export := ExportsTotal.WithLabelValues("xlsx")
	issue := ValidationIssuesTotal.WithLabelValues("SizeViolation", "error")
	b1, b2, b3 := testutil.ToFloat64(share), testutil.ToFloat64(export), testutil.ToFloat64(issue)

	RecordShare("create", "success")
	RecordExport("xlsx")
	RecordValidationIssue("SizeViolation", "error")

	assert.Equal(t, b1+1, testutil.ToFloat64(share))
	assert.Equal(t, b2+1, testutil.ToFloat64(export))
	assert.Equal(t, b3+1, testutil.ToFloat64(issue))
}

func TestRecordRequestLogs(t *testing.T) {
	dropped := RequestLogsTotal.WithLabelValues("dropped")
	before := testutil.ToFloat64(dropped)

	RecordRequestLogs("dropped", 3)

	assert.Equal(t, before+3, testutil.ToFloat64(dropped))
}
