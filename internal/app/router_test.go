//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	internalhttp "github.com/guttosm/quote-service/internal/http"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/mocks"
	"github.com/guttosm/quote-service/internal/service"
)

func newServices(t *testing.T, cfg config.Config) *ServiceComponents {
	t.Helper()
	services, err := InitializeServices(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(services.Pricing.Stop)
	return services
}

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		check  func(*testing.T, *RouterComponents)
	}{
		{
			name: "maps server and auth settings",
			mutate: func(c *config.Config) {
				c.Server.RateLimit = 50
				c.Auth.Enabled = true
				c.Auth.APIKeys = map[string]bool{"k": true}
				c.Server.CORSOrigins = []string{"https://quotes.example.com"}
			},
			check: func(t *testing.T, rc *RouterComponents) {
				assert.Equal(t, 50, rc.Config.RateLimit)
				assert.True(t, rc.Config.EnableAuth)
				assert.True(t, rc.Config.APIKeys["k"])
				assert.Equal(t, []string{"https://quotes.example.com"}, rc.Config.CORSOrigins)
				assert.NotNil(t, rc.Config.RateLimiter)
			},
		},
		{
			name: "in-memory idempotency without redis",
			check: func(t *testing.T, rc *RouterComponents) {
				_, ok := rc.Config.IdempotencyStore.(*middleware.MemoryIdempotencyStore)
				assert.True(t, ok)
			},
		},
		{
			name: "storage-backed features stay off without a database",
			check: func(t *testing.T, rc *RouterComponents) {
				assert.Nil(t, rc.Config.Shares)
				assert.Nil(t, rc.Config.CostModels)
				assert.Nil(t, rc.Config.RequestLogs)
				assert.Nil(t, rc.Config.AsyncLogger)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			rc := InitializeRouter(newServices(t, cfg), nil, cfg)
			t.Cleanup(rc.Stop)

			require.NotNil(t, rc.Handler)
			require.NotNil(t, rc.HealthHandler)
			tt.check(t, rc)
		})
	}
}

func TestInitializeRouter_RedisIdempotencyAndReadiness(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()

	rc := InitializeRouter(newServices(t, cfg), nil, cfg)
	t.Cleanup(rc.Stop)

	_, ok := rc.Config.IdempotencyStore.(*middleware.RedisIdempotencyStore)
	assert.True(t, ok)

	router := internalhttp.NewRouter(rc.Handler, rc.HealthHandler, rc.Config)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)

	mr.Close()
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInitializeRouter_WithDatabaseComponents(t *testing.T) {
	cfg := testConfig()
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("mongodb_shares"))
	db := &DatabaseComponents{
		RequestLogs:     service.NewRequestLogService(&mocks.MockRequestLogRepository{}),
		CostModels:      service.NewCostModelService(&mocks.MockCostModelRepository{}),
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{cb.Name(): cb},
	}

	rc := InitializeRouter(newServices(t, cfg), db, cfg)
	t.Cleanup(rc.Stop)

	assert.NotNil(t, rc.Config.AsyncLogger)
	assert.NotNil(t, rc.Config.CostModels)
	assert.NotNil(t, rc.Config.RequestLogs)

	router := internalhttp.NewRouter(rc.Handler, rc.HealthHandler, rc.Config)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mongodb_shares")
}
