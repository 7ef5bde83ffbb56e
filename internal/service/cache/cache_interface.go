// Package cache defines quote cache contracts and the Redis-backed implementation.
package cache

import "github.com/guttosm/quote-service/internal/domain/model"

// Cache stores quote results keyed by a digest of the full order request.
type Cache interface {
	Get(key string) (model.QuoteResult, bool)
	Set(key string, value model.QuoteResult)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// HitRate returns hits over lookups in percent.
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total) * 100
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
