//go:build !integration

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
)

func openBreaker(t *testing.T) *circuitbreaker.CircuitBreaker {
	t.Helper()
	cfg := circuitbreaker.DefaultConfig("mongodb")
	cfg.FailureThreshold = 1
	cb := circuitbreaker.New(cfg)
	_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
	require.True(t, cb.IsOpen())
	return cb
}

func TestHealthHandler_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupHandler   func(t *testing.T) *HealthHandler
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "no checkers",
			setupHandler:   func(*testing.T) *HealthHandler { return NewHealthHandler() },
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
		},
		{
			name: "healthy dependency and closed breaker",
			setupHandler: func(*testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("mongodb", HealthCheckFunc(func(context.Context) error { return nil }))
				h.RegisterCircuitBreaker("mongodb", circuitbreaker.New(circuitbreaker.DefaultConfig("mongodb")))
				return h
			},
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
		},
		{
			name: "failing dependency",
			setupHandler: func(*testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("mongodb", HealthCheckFunc(func(context.Context) error { return errors.New("no primary") }))
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "degraded",
		},
		{
			name: "open breaker",
			setupHandler: func(t *testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterCircuitBreaker("mongodb", openBreaker(t))
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler(t).Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body["status"])
		})
	}
}

func TestHealthHandler_NilRegistrationsIgnored(t *testing.T) {
	h := NewHealthHandler()
	h.RegisterChecker("mongodb", nil)
	h.RegisterCircuitBreaker("mongodb", nil)

	assert.Empty(t, h.checkers)
	assert.Empty(t, h.circuitBreakers)
}

func TestHealthHandler_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHealthHandler()
	h.RegisterChecker("mongodb", HealthCheckFunc(func(context.Context) error { return errors.New("down") }))
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
