//go:build !integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisCacheWithClient(client, time.Minute, time.Second)
}

func sampleQuote() model.QuoteResult {
	return model.QuoteResult{
		Quantity:   5000,
		UnitPrice:  16.25,
		Currency:   "JPY",
		Breakdown:  model.PriceBreakdown{Processing: 71250, Subtotal: 71250, Total: 81225},
		ValidUntil: time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRedisCache_GetSet(t *testing.T) {
	mr, c := setupTestRedis(t)
	defer c.Stop()

	_, found := c.Get("abc")
	assert.False(t, found)

	c.Set("abc", sampleQuote())
	assert.True(t, mr.Exists(KeyPrefix+"abc"))
	assert.Equal(t, time.Minute, mr.TTL(KeyPrefix+"abc"))

	got, found := c.Get("abc")
	require.True(t, found)
	assert.Equal(t, sampleQuote(), got)

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 1, m.Size)
}

func TestRedisCache_Expiry(t *testing.T) {
	mr, c := setupTestRedis(t)
	defer c.Stop()

	c.Set("abc", sampleQuote())
	mr.FastForward(2 * time.Minute)

	_, found := c.Get("abc")
	assert.False(t, found)
}

func TestRedisCache_CorruptEntryIsAMiss(t *testing.T) {
	mr, c := setupTestRedis(t)
	defer c.Stop()

	require.NoError(t, mr.Set(KeyPrefix+"bad", "{not json"))

	_, found := c.Get("bad")
	assert.False(t, found)
	assert.Equal(t, int64(1), c.Metrics().Misses)
}

func TestRedisCache_InvalidateAndClear(t *testing.T) {
	mr, c := setupTestRedis(t)
	defer c.Stop()

	require.NoError(t, mr.Set("other:key", "kept"))
	for _, k := range []string{"a", "b", "c"} {
		c.Set(k, sampleQuote())
	}

	c.Invalidate("a")
	_, found := c.Get("a")
	assert.False(t, found)
	assert.Equal(t, 2, c.Metrics().Size)

	c.Clear()
	assert.Equal(t, 0, c.Metrics().Size)
	assert.True(t, mr.Exists("other:key"), "keys outside the prefix survive Clear")
}

func TestRedisCache_UnavailableDegradesToMiss(t *testing.T) {
	mr, c := setupTestRedis(t)
	defer c.Stop()

	mr.Close()

	assert.NotPanics(t, func() {
		c.Set("abc", sampleQuote())
	})
	_, found := c.Get("abc")
	assert.False(t, found)
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewRedisCacheWithClient_Defaults(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0, 0)
	defer c.Stop()

	assert.Equal(t, 10*time.Minute, c.ttl)
	assert.Equal(t, 200*time.Millisecond, c.opTimeout)
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	defer c.Stop()
	assert.NoError(t, c.Ping(context.Background()))

	_, err = NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
