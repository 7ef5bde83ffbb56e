//go:build integration

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

const integrationAdminKey = "integration-key"

type integrationStack struct {
	router *gin.Engine
	db     *repository.MongoDB
	audit  *middleware.AsyncLogger
	logs   service.RequestLogService
}

// setupIntegrationRouter wires the full router against the shared MongoDB container.
func setupIntegrationRouter(t *testing.T) integrationStack {
	t.Helper()

	db := newTestMongoDB(t)

	costRepo := repository.NewCostModelRepositoryWithCircuitBreaker(
		repository.NewCostModelRepository(db), circuitbreaker.New(circuitbreaker.DefaultConfig("cost_models")))
	shareRepo := repository.NewShareRepositoryWithCircuitBreaker(
		repository.NewShareRepository(db), circuitbreaker.New(circuitbreaker.DefaultConfig("shares")))
	logRepo := repository.NewRequestLogRepositoryWithCircuitBreaker(
		repository.NewRequestLogRepository(db), circuitbreaker.New(circuitbreaker.DefaultConfig("request_logs")))

	logs := service.NewRequestLogService(logRepo)
	loggerCfg := middleware.DefaultAsyncLoggerConfig()
	loggerCfg.FlushInterval = 50 * time.Millisecond
	audit := middleware.NewAsyncLogger(logs, loggerCfg)
	t.Cleanup(audit.Stop)

	tokens := service.NewShareTokenService(service.ShareTokenConfig{Secret: "integration-secret", TTL: time.Hour})

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", db)
	health.RegisterCircuitBreaker("cost_models", costRepo.CircuitBreaker())
	health.RegisterCircuitBreaker("shares", shareRepo.CircuitBreaker())
	health.RegisterCircuitBreaker("request_logs", logRepo.CircuitBreaker())

	cfg := DefaultRouterConfig()
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{integrationAdminKey: true}
	cfg.AsyncLogger = audit
	cfg.Shares = service.NewShareService(shareRepo, tokens, service.DefaultShareOptions())
	cfg.CostModels = service.NewCostModelService(costRepo)
	cfg.RequestLogs = logs

	return integrationStack{
		router: NewRouter(NewHandler(newTestPricer(t)), health, cfg),
		db:     db,
		audit:  audit,
		logs:   logs,
	}
}

func TestIntegration_Readiness(t *testing.T) {
	stack := setupIntegrationRouter(t)

	w := doJSON(t, stack.router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Status          string                 `json:"status"`
		Checks          map[string]string      `json:"checks"`
		CircuitBreakers []circuitbreaker.Stats `json:"circuitBreakers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Checks["mongodb"])
	assert.Len(t, body.CircuitBreakers, 3)
}

func TestIntegration_ShareLifecycle(t *testing.T) {
	stack := setupIntegrationRouter(t)

	w := doJSON(t, stack.router, http.MethodPost, "/api/v1/shares",
		`{"comparison": `+compareBody+`, "title": "Q3 pouches", "password": "letmein", "expiresInHours": 24}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.CreateShareResponse
	decodeData(t, w, &created)
	require.True(t, created.Protected)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), created.ExpiresAt, time.Minute)

	w = doJSON(t, stack.router, http.MethodGet, created.Path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, stack.router, http.MethodPost, created.Path+"/unlock", `{"password":"letmein"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var unlocked dto.UnlockShareResponse
	decodeData(t, w, &unlocked)

	headers := map[string]string{"X-Share-Token": unlocked.Token}
	for views := int64(1); views <= 2; views++ {
		w = doJSON(t, stack.router, http.MethodGet, created.Path, "", headers)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got dto.ShareResponse
		decodeData(t, w, &got)
		assert.Equal(t, "Q3 pouches", got.Title)
		assert.Equal(t, views, got.Views)
		require.Len(t, got.Comparison.Results, 3)
		assert.Equal(t, 10000, got.Comparison.Results[0].Quantity)
	}

	w = doJSON(t, stack.router, http.MethodGet, created.Path+"/export.xlsx", "", headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.XLSXContentType, w.Header().Get("Content-Type"))

	w = doJSON(t, stack.router, http.MethodGet, "/api/v1/shares/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIntegration_AdminCostModels(t *testing.T) {
	stack := setupIntegrationRouter(t)
	headers := map[string]string{middleware.APIKeyHeader: integrationAdminKey}

	costs := model.DefaultCostModel()
	costs.TaxRate = 0.08
	body, err := json.Marshal(map[string]interface{}{"model": costs, "note": "reduced rate"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		w := doJSON(t, stack.router, http.MethodPost, "/api/admin/cost-models", string(body), headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(t, stack.router, http.MethodGet, "/api/admin/cost-models", "", headers)
	require.Equal(t, http.StatusOK, w.Code)

	var got CostModelVersionsResponse
	decodeData(t, w, &got)
	require.Len(t, got.Versions, 2)
	assert.Equal(t, 2, got.Versions[0].Version)
	assert.True(t, got.Versions[0].Active)
	assert.False(t, got.Versions[1].Active)
	assert.Equal(t, middleware.KeyActor(integrationAdminKey), got.Versions[0].CreatedBy)
	assert.InDelta(t, 0.08, got.Versions[0].Model.TaxRate, 1e-9)
}

func TestIntegration_RequestLogsArePersisted(t *testing.T) {
	stack := setupIntegrationRouter(t)

	w := doJSON(t, stack.router, http.MethodPost, "/api/v1/quotes", quoteBody, map[string]string{middleware.RequestIDHeader: "it-quote-1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, stack.router, http.MethodPost, "/api/v1/quotes",
		`{"specification": {"packageType": "flat_3_side", "widthMm": 900, "heightMm": 150, "thicknessMicrons": 80, "materialType": "PE"}, "quantity": 5000}`,
		map[string]string{middleware.RequestIDHeader: "it-quote-2"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.Eventually(t, func() bool {
		entries, _, err := stack.logs.Query(context.Background(), model.RequestLogQuery{Operation: "quote", Limit: 10})
		return err == nil && len(entries) >= 2
	}, 5*time.Second, 50*time.Millisecond)

	headers := map[string]string{middleware.APIKeyHeader: integrationAdminKey}
	w = doJSON(t, stack.router, http.MethodGet, "/api/admin/request-logs?request_id=it-quote-2", "", headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got RequestLogsResponse
	decodeData(t, w, &got)
	require.Len(t, got.Entries, 1)
	assert.EqualValues(t, 1, got.Total)
	assert.Equal(t, http.StatusBadRequest, got.Entries[0].StatusCode)
	assert.Equal(t, model.KindSizeViolation, got.Entries[0].ErrorKind)
	assert.Equal(t, model.PackageFlat3Side, got.Entries[0].PackageType)
}
