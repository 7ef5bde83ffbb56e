package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig returns a configuration without MongoDB or Redis.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			RateLimit:       100,
			RateWindow:      time.Minute,
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Log:   config.LogConfig{Level: "error"},
		Cache: config.CacheConfig{Size: 100, TTL: time.Minute, Shards: 4},
		Redis: config.RedisConfig{TTL: time.Minute, OpTimeout: 200 * time.Millisecond},
		Auth: config.AuthConfig{
			ShareTokenSecret: "test-secret",
			ShareTokenTTL:    time.Hour,
		},
		Database: config.DatabaseConfig{
			DatabaseName:                   "quote_service_test",
			LogsTTL:                        24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Pricing: config.PricingConfig{
			ShareDefaultExpiry: 7 * 24 * time.Hour,
			ShareMaxExpiry:     30 * 24 * time.Hour,
			TaxRate:            -1,
		},
	}
}
