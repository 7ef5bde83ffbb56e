//go:build !integration

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, rate int, window time.Duration, now *time.Time) *RateLimiter {
	t.Helper()
	rl := NewShardedRateLimiter(rate, window, 4)
	rl.now = func() time.Time { return *now }
	t.Cleanup(rl.Stop)
	return rl
}

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "default shards when zero", numShards: 0, wantShards: defaultNumShards},
		{name: "default shards when negative", numShards: -1, wantShards: defaultNumShards},
		{name: "custom shard count", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.Len(t, rl.shards, tt.wantShards)
			assert.Equal(t, 10, rl.rate)
			assert.Equal(t, time.Minute, rl.window)
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 3, time.Minute, &now)

	for want := 2; want >= 0; want-- {
		allowed, remaining, reset := rl.allow("ip:1.2.3.4")
		assert.True(t, allowed)
		assert.Equal(t, want, remaining)
		assert.Equal(t, now.Add(time.Minute), reset)
	}

	allowed, remaining, _ := rl.allow("ip:1.2.3.4")
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	// other clients have their own window
	allowed, _, _ = rl.allow("ip:5.6.7.8")
	assert.True(t, allowed)

	// a new window starts once the old one is over
	now = now.Add(time.Minute)
	allowed, remaining, _ = rl.allow("ip:1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 2, remaining)
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 2, time.Minute, &now)

	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	do := func(remoteAddr, apiKey string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = remoteAddr
		if apiKey != "" {
			req.Header.Set(APIKeyHeader, apiKey)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do("10.0.0.1:1234", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, fmt.Sprint(now.Add(time.Minute).Unix()), first.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234", "").Code)

	now = now.Add(15 * time.Second)
	limited := do("10.0.0.1:1234", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "45", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), "rate_limit_exceeded")

	// API key callers are limited per key, not per address
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234", "admin-key").Code)
}

func TestRateLimiter_RemoveExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 5, time.Minute, &now)

	for i := 0; i < 10; i++ {
		rl.allow(fmt.Sprintf("ip:10.0.0.%d", i))
	}
	total, perShard := rl.Stats()
	assert.Equal(t, 10, total)
	assert.Len(t, perShard, 4)

	now = now.Add(90 * time.Second)
	rl.removeExpired()
	total, _ = rl.Stats()
	assert.Equal(t, 10, total, "windows younger than two periods are kept")

	now = now.Add(time.Minute)
	rl.removeExpired()
	total, _ = rl.Stats()
	assert.Zero(t, total)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
