// Package http exposes the quote service over HTTP: pricing, comparisons,
// shared comparisons, admin endpoints and health probes.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	// RateLimiter is used instead of building one from RateLimit when set.
	RateLimiter *middleware.RateLimiter
	APIKeys     map[string]bool
	EnableAuth  bool
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string

	AsyncLogger      *middleware.AsyncLogger
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration

	Shares      service.ShareService
	CostModels  service.CostModelService
	RequestLogs service.RequestLogService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultTimeoutConfig().Timeout,
	}
}

// NewRouter creates and configures the Gin router for the quote service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	v1 := api.Group("/v1")
	if idem := idempotency(&cfg); idem != nil {
		v1.Use(idem)
	}
	groups := []RouteGroup{NewQuoteRoutes(handler)}
	if shares := NewShareRoutes(handler, &cfg); shares != nil {
		groups = append(groups, shares)
	}
	for _, g := range groups {
		g.RegisterRoutes(v1, &cfg)
	}

	NewAdminRoutes(handler, &cfg).RegisterRoutes(api.Group("/admin"), &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression("/api/v1/comparisons/export"),
		middleware.RequestLogger(cfg.AsyncLogger),
		middleware.ErrorHandler(),
	)

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if limiter != nil {
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
}

// idempotency returns nil without a store. Admin routes add it after the
// API key check so a replay never skips authentication.
func idempotency(cfg *RouterConfig) gin.HandlerFunc {
	if cfg.IdempotencyStore == nil {
		return nil
	}
	return middleware.Idempotency(middleware.IdempotencyConfig{
		Store: cfg.IdempotencyStore,
		TTL:   cfg.IdempotencyTTL,
	})
}
