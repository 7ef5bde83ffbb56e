package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/i18n"
)

const (
	// defaultNumShards is the default number of shards for the rate limiter.
	defaultNumShards = 16
)

// clientWindow tracks the fixed window of one client.
type clientWindow struct {
	remaining int
	start     time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

// RateLimiter is a fixed-window limiter keyed by client. Clients are spread
// over shards to keep lock contention low under load.
type RateLimiter struct {
	shards   []*rateLimiterShard
	rate     int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with a custom shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{clients: make(map[string]*clientWindow)}
	}

	rl := &RateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) shard(client string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(client))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow takes one request from the client's window. It returns the requests
// left and when the window resets.
func (rl *RateLimiter) allow(client string) (bool, int, time.Time) {
	s := rl.shard(client)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := rl.now()
	w, ok := s.clients[client]
	if !ok || now.Sub(w.start) >= rl.window {
		w = &clientWindow{remaining: rl.rate, start: now}
		s.clients[client] = w
	}
	reset := w.start.Add(rl.window)

	if w.remaining <= 0 {
		return false, 0, reset
	}
	w.remaining--
	return true, w.remaining, reset
}

// RateLimit returns the limiting middleware. Admin callers are limited per
// API key, everyone else per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset := rl.allow(clientIdentifier(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			wait := int(math.Ceil(reset.Sub(rl.now()).Seconds()))
			if wait < 1 {
				wait = 1
			}
			c.Header("Retry-After", strconv.Itoa(wait))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func clientIdentifier(c *gin.Context) string {
	if actor := GetActor(c); actor != "" {
		return actor
	}
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return KeyActor(key)
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// removeExpired forgets clients whose window ended more than a window ago.
func (rl *RateLimiter) removeExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for id, w := range s.clients {
			if now.Sub(w.start) > 2*rl.window {
				delete(s.clients, id)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked clients, in total and per shard.
func (rl *RateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, s := range rl.shards {
		s.mu.Lock()
		perShard[i] = len(s.clients)
		total += perShard[i]
		s.mu.Unlock()
	}
	return total, perShard
}
