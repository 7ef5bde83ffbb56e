package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

// DatabaseComponents holds the MongoDB-backed stores. Every repository sits
// behind its own circuit breaker.
type DatabaseComponents struct {
	DB          *repository.MongoDB
	CostModels  service.CostModelService
	Shares      repository.ShareRepositoryInterface
	RequestLogs service.RequestLogService
	// CircuitBreakers is keyed by the name readiness reports.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB. It returns nil when the database is
// disabled or unreachable; pricing then runs on the built-in cost model and
// sharing, admin history and request logs are unavailable.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if ttlDays := int(cfg.LogsTTL.Hours() / 24); ttlDays > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.SetRequestLogsTTL(ctx, ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set request log TTL index")
		}
		cancel()
	}

	costCB := newCircuitBreaker(cfg, "mongodb_cost_models")
	shareCB := newCircuitBreaker(cfg, "mongodb_shares")
	logsCB := newCircuitBreaker(cfg, "mongodb_request_logs")

	return &DatabaseComponents{
		DB: db,
		CostModels: service.NewCostModelService(
			repository.NewCostModelRepositoryWithCircuitBreaker(repository.NewCostModelRepository(db), costCB)),
		Shares: repository.NewShareRepositoryWithCircuitBreaker(repository.NewShareRepository(db), shareCB),
		RequestLogs: service.NewRequestLogService(
			repository.NewRequestLogRepositoryWithCircuitBreaker(repository.NewRequestLogRepository(db), logsCB)),
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{
			costCB.Name():  costCB,
			shareCB.Name(): shareCB,
			logsCB.Name():  logsCB,
		},
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) {
	if d == nil || d.DB == nil {
		return
	}
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("MongoDB disconnect failed")
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	cbCfg := circuitbreaker.DefaultConfig(name)
	if cfg.CircuitBreakerFailureThreshold > 0 {
		cbCfg.FailureThreshold = cfg.CircuitBreakerFailureThreshold
	}
	if cfg.CircuitBreakerSuccessThreshold > 0 {
		cbCfg.SuccessThreshold = cfg.CircuitBreakerSuccessThreshold
	}
	if cfg.CircuitBreakerTimeout > 0 {
		cbCfg.Timeout = cfg.CircuitBreakerTimeout
	}
	cbCfg.IsSuccessful = repository.IsExpectedError
	cbCfg.OnStateChange = func(name string, _, to circuitbreaker.State) {
		metrics.SetCircuitBreakerState(name, int(to))
	}
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(cbCfg)
}
