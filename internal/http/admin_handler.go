package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

const (
	defaultCostModelListLimit = 20
	maxCostModelListLimit     = 100

	defaultRequestLogLimit = 100
	maxRequestLogLimit     = 1000
)

// AdminHandler serves the operator endpoints.
type AdminHandler struct {
	pricer     service.Pricer
	costModels service.CostModelService
	logs       service.RequestLogService
	audit      *middleware.AsyncLogger
}

// NewAdminHandler creates an AdminHandler. A nil costModels or logs service
// answers 503 on the matching endpoints.
func NewAdminHandler(pricer service.Pricer, costModels service.CostModelService, logs service.RequestLogService, audit *middleware.AsyncLogger) *AdminHandler {
	return &AdminHandler{pricer: pricer, costModels: costModels, logs: logs, audit: audit}
}

// CostModelVersionsResponse lists stored cost model versions.
//
// @Description Stored cost model versions, newest first
type CostModelVersionsResponse struct {
	Versions []repository.CostModelVersion `json:"versions"`
} // @name CostModelVersionsResponse

// RequestLogsResponse is one page of request logs.
//
// @Description Page of persisted request logs
type RequestLogsResponse struct {
	Entries []*model.RequestLog `json:"entries"`
	Total   int64               `json:"total" example:"120"`
	Limit   int                 `json:"limit" example:"100"`
	Skip    int                 `json:"skip" example:"0"`
} // @name RequestLogsResponse

// ListCostModels handles GET /api/admin/cost-models.
//
// @Summary      List cost model versions
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Maximum versions to return (default 20, max 100)"
// @Success      200 {object} dto.SuccessResponse{data=CostModelVersionsResponse}
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Database not configured"
// @Security     ApiKeyAuth
// @Router       /api/admin/cost-models [get]
func (h *AdminHandler) ListCostModels(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "admin.cost_models.list")
	if h.costModels == nil {
		builder.Fail(service.ErrRepositoryNotConfigured)
		return
	}

	limit := queryInt(c, "limit", defaultCostModelListLimit)
	if limit <= 0 || limit > maxCostModelListLimit {
		limit = maxCostModelListLimit
	}

	versions, err := h.costModels.List(c.Request.Context(), limit)
	if err != nil {
		builder.Fail(err)
		return
	}
	if versions == nil {
		versions = []repository.CostModelVersion{}
	}
	builder.SuccessOK(CostModelVersionsResponse{Versions: versions})
}

// CreateCostModel handles POST /api/admin/cost-models.
//
// @Summary      Store a new cost model version
// @Description  Validates the tables and stores them as the active version. Running instances keep their loaded model until restarted.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CreateCostModelRequest true "Cost model"
// @Success      201 {object} dto.SuccessResponse{data=repository.CostModelVersion}
// @Failure      400 {object} dto.ErrorResponse "Invalid cost model"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Database not configured"
// @Security     ApiKeyAuth
// @Router       /api/admin/cost-models [post]
func (h *AdminHandler) CreateCostModel(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "admin.cost_models.create")
	if h.costModels == nil {
		builder.Fail(service.ErrRepositoryNotConfigured)
		return
	}

	req, err := BuildRequest[dto.CreateCostModelRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	version, err := h.costModels.Create(c.Request.Context(), req.Model, req.Note, middleware.GetActor(c))
	if err != nil {
		middleware.AuditLogError(h.audit, c, "cost_model.create", "Cost model rejected", err, nil)
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.audit, c, "cost_model.create", "Cost model version stored", map[string]interface{}{
		"version": version.Version,
		"note":    version.Note,
	})
	builder.SuccessCreated(version)
}

// ClearCache handles DELETE /api/admin/cache.
//
// @Summary      Clear cached quotes
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Security     ApiKeyAuth
// @Router       /api/admin/cache [delete]
func (h *AdminHandler) ClearCache(c *gin.Context) {
	middleware.SetLogOperation(c, "admin.cache.clear")
	h.pricer.InvalidateCache()
	middleware.AuditLog(h.audit, c, "cache.clear", "Quote cache cleared", nil)

	message := i18n.GetTranslator().Translate(i18n.SuccessKeyCacheCleared, i18n.GetLocale(c))
	NewResponseBuilder(c).SuccessOK(gin.H{"message": message})
}

// CacheStats handles GET /api/admin/cache/stats.
//
// @Summary      Show quote cache statistics
// @Description  Hit, miss and eviction counts of the in-process cache.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Security     ApiKeyAuth
// @Router       /api/admin/cache/stats [get]
func (h *AdminHandler) CacheStats(c *gin.Context) {
	middleware.SetLogOperation(c, "admin.cache.stats")
	m, ok := h.pricer.CacheMetrics()
	if !ok {
		NewResponseBuilder(c).SuccessOK(gin.H{"enabled": false})
		return
	}
	NewResponseBuilder(c).SuccessOK(gin.H{
		"enabled":   true,
		"hits":      m.Hits,
		"misses":    m.Misses,
		"evictions": m.Evictions,
		"size":      m.Size,
		"capacity":  m.Capacity,
		"hitRate":   m.HitRate(),
	})
}

// ListRequestLogs handles GET /api/admin/request-logs.
//
// @Summary      Search persisted request logs
// @Tags         Admin
// @Produce      json
// @Param        request_id query string false "Request id"
// @Param        operation query string false "Operation, such as quote or audit.cache.clear"
// @Param        level query string false "Level" Enums(debug, info, warn, error)
// @Param        error_kind query string false "Error kind, such as SizeViolation"
// @Param        start_time query string false "RFC3339 lower bound"
// @Param        end_time query string false "RFC3339 upper bound"
// @Param        limit query int false "Page size (default 100, max 1000)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=RequestLogsResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Database not configured"
// @Security     ApiKeyAuth
// @Router       /api/admin/request-logs [get]
func (h *AdminHandler) ListRequestLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "admin.request_logs")
	if h.logs == nil {
		builder.Fail(service.ErrRepositoryNotConfigured)
		return
	}

	q, err := parseRequestLogQuery(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	entries, total, err := h.logs.Query(c.Request.Context(), q)
	if err != nil {
		builder.Fail(err)
		return
	}
	if entries == nil {
		entries = []*model.RequestLog{}
	}
	builder.SuccessOK(RequestLogsResponse{Entries: entries, Total: total, Limit: q.Limit, Skip: q.Skip})
}

func parseRequestLogQuery(c *gin.Context) (model.RequestLogQuery, error) {
	q := model.RequestLogQuery{
		RequestID: c.Query("request_id"),
		Operation: c.Query("operation"),
		Level:     c.Query("level"),
		ErrorKind: model.ErrorKind(c.Query("error_kind")),
		Limit:     queryInt(c, "limit", defaultRequestLogLimit),
		Skip:      max(queryInt(c, "skip", 0), 0),
	}
	switch {
	case q.Limit <= 0:
		q.Limit = defaultRequestLogLimit
	case q.Limit > maxRequestLogLimit:
		q.Limit = maxRequestLogLimit
	}

	var err error
	if q.StartTime, err = queryTime(c, "start_time"); err != nil {
		return q, err
	}
	if q.EndTime, err = queryTime(c, "end_time"); err != nil {
		return q, err
	}
	return q, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
