package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/guttosm/quote-service/internal/service/cache"
)

// ServiceComponents holds the business services.
type ServiceComponents struct {
	Pricing   *service.PricingService
	CostModel service.ResolvedCostModel
	// Redis is the shared quote cache, nil unless enabled and reachable.
	Redis *cache.RedisCache
	// Shares is nil without a database.
	Shares service.ShareService
}

// InitializeServices resolves the cost model and builds the pricing service.
// db may be nil. Only an unreadable cost model file is fatal.
func InitializeServices(ctx context.Context, cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	var costModels service.CostModelService
	if db != nil {
		costModels = db.CostModels
	}

	resolved, err := service.ResolveCostModel(ctx, cfg.Pricing.CostModelFile, costModels)
	if err != nil {
		return nil, fmt.Errorf("load cost model: %w", err)
	}
	metrics.SetCostModelVersion(resolved.Version)
	log.Info().
		Str("source", string(resolved.Source)).
		Int("version", resolved.Version).
		Str("currency", resolved.Model.Currency).
		Msg("Cost model loaded")

	components := &ServiceComponents{CostModel: resolved}

	var opts []service.EngineOption
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	}
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			TTL:       cfg.Redis.TTL,
			OpTimeout: cfg.Redis.OpTimeout,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable - continuing with the local cache only")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
			components.Redis = rc
			opts = append(opts, service.WithSharedCache(rc))
		}
	}
	components.Pricing = service.NewPricingService(resolved.Model, opts...)

	if db != nil {
		tokens := service.NewShareTokenService(service.NewShareTokenConfigFromAuthConfig(cfg.Auth))
		components.Shares = service.NewShareService(db.Shares, tokens, service.ShareOptions{
			DefaultExpiry: cfg.Pricing.ShareDefaultExpiry,
			MaxExpiry:     cfg.Pricing.ShareMaxExpiry,
		})
	}

	return components, nil
}
