package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/http"
	"github.com/guttosm/quote-service/internal/middleware"
)

// RouterComponents holds router-related components and the background
// workers the router depends on.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig

	rateLimiter *middleware.RateLimiter
	asyncLogger *middleware.AsyncLogger
	memoryStore *middleware.MemoryIdempotencyStore
}

// InitializeRouter builds handlers and the router configuration. db may be nil.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(services.Pricing,
		http.WithTaxRate(cfg.Pricing.TaxRate),
		http.WithCostModelSource(services.CostModel),
	)

	health := http.NewHealthHandler()
	if services.Redis != nil {
		health.RegisterChecker("redis", http.HealthCheckFunc(services.Redis.Ping))
	}

	rc := &RouterComponents{
		Handler:       handler,
		HealthHandler: health,
		rateLimiter:   middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow),
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimiter:    rc.rateLimiter,
		EnableAuth:     cfg.Auth.Enabled,
		APIKeys:        cfg.Auth.APIKeys,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		IdempotencyTTL: middleware.IdempotencyKeyTTL,
		Shares:         services.Shares,
	}

	if services.Redis != nil {
		routerCfg.IdempotencyStore = middleware.NewRedisIdempotencyStore(services.Redis.Client(), "")
	} else {
		rc.memoryStore = middleware.NewMemoryIdempotencyStore()
		routerCfg.IdempotencyStore = rc.memoryStore
	}

	if db != nil {
		if db.DB != nil {
			health.RegisterChecker("mongodb", db.DB)
		}
		for name, cb := range db.CircuitBreakers {
			health.RegisterCircuitBreaker(name, cb)
		}
		rc.asyncLogger = middleware.NewAsyncLogger(db.RequestLogs, middleware.DefaultAsyncLoggerConfig())
		routerCfg.AsyncLogger = rc.asyncLogger
		routerCfg.CostModels = db.CostModels
		routerCfg.RequestLogs = db.RequestLogs
	}

	if cfg.Auth.Enabled && len(cfg.Auth.APIKeys) == 0 {
		log.Warn().Msg("AUTH_ENABLED is set without API_KEYS - every admin request will be rejected")
	}

	rc.Config = routerCfg
	return rc
}

// Stop flushes queued request logs and stops background cleanup.
func (rc *RouterComponents) Stop() {
	rc.asyncLogger.Stop()
	if rc.rateLimiter != nil {
		rc.rateLimiter.Stop()
	}
	if rc.memoryStore != nil {
		rc.memoryStore.Stop()
	}
}
