package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// KeyPrefix namespaces quote entries in a shared Redis.
	KeyPrefix = "quote:"

	levelRedis = "redis"
)

// RedisConfig configures the shared quote cache.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	OpTimeout time.Duration
}

// RedisCache is a Cache shared between service instances. Failures degrade to
// cache misses; they are logged and never surface to callers.
type RedisCache struct {
	client    redis.UniversalClient
	ttl       time.Duration
	opTimeout time.Duration
	hits      atomic.Int64
	misses    atomic.Int64
}

// NewRedisCache connects to Redis and verifies the connection with a PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisCacheWithClient(client, cfg.TTL, cfg.OpTimeout), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, ttl, opTimeout time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if opTimeout <= 0 {
		opTimeout = 200 * time.Millisecond
	}
	return &RedisCache{client: client, ttl: ttl, opTimeout: opTimeout}
}

func (c *RedisCache) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.opTimeout)
}

// Get loads a quote from Redis.
func (c *RedisCache) Get(key string) (model.QuoteResult, bool) {
	ctx, cancel := c.ctx()
	defer cancel()

	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		c.misses.Add(1)
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheOperation(levelRedis, "get", "miss")
		} else {
			log.Warn().Err(err).Msg("redis cache get failed")
			metrics.RecordCacheOperation(levelRedis, "get", "error")
		}
		return model.QuoteResult{}, false
	}

	var result model.QuoteResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache entry is corrupt")
		c.misses.Add(1)
		metrics.RecordCacheOperation(levelRedis, "get", "error")
		return model.QuoteResult{}, false
	}

	c.hits.Add(1)
	metrics.RecordCacheOperation(levelRedis, "get", "hit")
	return result, true
}

// Set stores a quote with the configured TTL.
func (c *RedisCache) Set(key string, value model.QuoteResult) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Msg("redis cache marshal failed")
		return
	}

	ctx, cancel := c.ctx()
	defer cancel()

	if err := c.client.Set(ctx, KeyPrefix+key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache set failed")
		metrics.RecordCacheOperation(levelRedis, "set", "error")
		return
	}
	metrics.RecordCacheOperation(levelRedis, "set", "success")
}

// Invalidate deletes a key.
func (c *RedisCache) Invalidate(key string) {
	ctx, cancel := c.ctx()
	defer cancel()

	if err := c.client.Del(ctx, KeyPrefix+key).Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache delete failed")
	}
}

// Clear deletes every quote entry. It scans instead of using KEYS.
func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*c.opTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 500).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 500 {
			c.client.Del(ctx, batch...)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		c.client.Del(ctx, batch...)
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache clear failed")
		return
	}
	c.hits.Store(0)
	c.misses.Store(0)
	metrics.RecordCacheOperation(levelRedis, "clear", "success")
}

// Stop closes the client.
func (c *RedisCache) Stop() {
	if err := c.client.Close(); err != nil {
		log.Warn().Err(err).Msg("redis cache close failed")
	}
}

// Metrics reports hits and misses seen by this instance. Size is the number of
// quote keys in Redis.
func (c *RedisCache) Metrics() Metrics {
	ctx, cancel := c.ctx()
	defer cancel()

	m := Metrics{Hits: c.hits.Load(), Misses: c.misses.Load()}
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"*", 500).Result()
		if err != nil {
			break
		}
		m.Size += len(keys)
		if next == 0 {
			break
		}
		cursor = next
	}
	return m
}

// Client returns the underlying connection so other Redis-backed stores can
// share it. Stop closes it for everyone.
func (c *RedisCache) Client() redis.UniversalClient {
	return c.client
}

// Ping checks the connection, used by readiness probes.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
