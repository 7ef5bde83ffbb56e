package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// QuoteRoutes registers the pricing endpoints under /api/v1.
type QuoteRoutes struct {
	handler *Handler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(handler *Handler) *QuoteRoutes {
	return &QuoteRoutes{handler: handler}
}

func (r *QuoteRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/quotes", r.handler.CreateQuote)
	rg.POST("/quotes/validate", r.handler.ValidateQuote)
	rg.POST("/comparisons", r.handler.CompareQuantities)
	rg.POST("/comparisons/export", r.handler.ExportComparison)
	rg.GET("/cost-model", r.handler.GetCostModel)
}

// ShareRoutes registers the shared comparison endpoints under /api/v1.
type ShareRoutes struct {
	handler *ShareHandler
}

// NewShareRoutes returns nil without a share service.
func NewShareRoutes(pricing *Handler, cfg *RouterConfig) *ShareRoutes {
	if cfg.Shares == nil {
		return nil
	}
	return &ShareRoutes{handler: NewShareHandler(pricing, cfg.Shares, cfg.AsyncLogger)}
}

func (r *ShareRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	shares := rg.Group("/shares")
	shares.POST("", r.handler.CreateShare)

	read := shares.Group("/:id", middleware.ShareToken())
	read.GET("", r.handler.GetShare)
	read.GET("/export.xlsx", r.handler.ExportShare)
	shares.POST("/:id/unlock", r.handler.UnlockShare)
}

// AdminRoutes registers the operator endpoints under /api/admin.
type AdminRoutes struct {
	handler *AdminHandler
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(pricing *Handler, cfg *RouterConfig) *AdminRoutes {
	return &AdminRoutes{handler: NewAdminHandler(pricing.pricer, cfg.CostModels, cfg.RequestLogs, cfg.AsyncLogger)}
}

// RegisterRoutes requires an API key when auth is enabled. An empty key set
// then rejects every request.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableAuth {
		rg.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	if idem := idempotency(cfg); idem != nil {
		rg.Use(idem)
	}

	rg.GET("/cost-models", r.handler.ListCostModels)
	rg.POST("/cost-models", r.handler.CreateCostModel)
	rg.DELETE("/cache", r.handler.ClearCache)
	rg.GET("/cache/stats", r.handler.CacheStats)
	rg.GET("/request-logs", r.handler.ListRequestLogs)
}
