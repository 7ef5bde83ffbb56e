package service

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/service/cache"
)

const cacheLevelLocal = "local"

// ShardedCache spreads quote entries over independently locked LRU shards.
type ShardedCache struct {
	shards []*lruShard
	mask   uint32
}

// NewShardedCache creates a sharded cache with the given total capacity and TTL.
// numShards is rounded up to a power of two.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	sc := &ShardedCache{shards: make([]*lruShard, n), mask: uint32(n - 1)}
	for i := range sc.shards {
		sc.shards[i] = newLRUShard(perShard, ttl)
	}
	return sc
}

func (sc *ShardedCache) shard(key string) *lruShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.mask]
}

// Get returns a cached quote if present and not expired.
func (sc *ShardedCache) Get(key string) (model.QuoteResult, bool) {
	return sc.shard(key).get(key)
}

// Set stores a quote.
func (sc *ShardedCache) Set(key string, value model.QuoteResult) {
	sc.shard(key).set(key, value)
}

// Invalidate removes a key.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shard(key).invalidate(key)
}

// Clear removes all entries from all shards.
func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.clear()
	}
	metrics.RecordCacheOperation(cacheLevelLocal, "clear", "success")
}

// Stop shuts down the background cleanup of every shard.
func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.stop()
	}
}

// Metrics aggregates the metrics of all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	metrics.UpdateCacheMetrics(total.Size, total.Capacity)
	return total
}

type lruEntry struct {
	key       string
	value     model.QuoteResult
	expiresAt time.Time
}

// lruShard is an LRU list with per-entry expiry.
type lruShard struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*list.Element
	order     *list.List
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func newLRUShard(capacity int, ttl time.Duration) *lruShard {
	s := &lruShard{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		stopCh:   make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *lruShard) get(key string) (model.QuoteResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		s.misses.Add(1)
		metrics.RecordCacheOperation(cacheLevelLocal, "get", "miss")
		return model.QuoteResult{}, false
	}
	entry := el.Value.(*lruEntry)
	if time.Now().After(entry.expiresAt) {
		s.removeElement(el)
		s.misses.Add(1)
		metrics.RecordCacheOperation(cacheLevelLocal, "get", "expired")
		return model.QuoteResult{}, false
	}

	s.order.MoveToFront(el)
	s.hits.Add(1)
	metrics.RecordCacheOperation(cacheLevelLocal, "get", "hit")
	return entry.value, true
}

func (s *lruShard) set(key string, value model.QuoteResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(s.ttl)
	if el, ok := s.items[key]; ok {
		entry := el.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		s.order.MoveToFront(el)
		return
	}

	s.items[key] = s.order.PushFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	if s.order.Len() > s.capacity {
		if oldest := s.order.Back(); oldest != nil {
			s.removeElement(oldest)
			s.evictions.Add(1)
			metrics.RecordCacheOperation(cacheLevelLocal, "evict", "capacity")
		}
	}
	metrics.RecordCacheOperation(cacheLevelLocal, "set", "success")
}

func (s *lruShard) invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.removeElement(el)
		metrics.RecordCacheOperation(cacheLevelLocal, "invalidate", "success")
	}
}

func (s *lruShard) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*list.Element, s.capacity)
	s.order.Init()
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
}

func (s *lruShard) stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *lruShard) metrics() cache.Metrics {
	s.mu.Lock()
	size := len(s.items)
	s.mu.Unlock()

	return cache.Metrics{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evictions.Load(),
		Size:      size,
		Capacity:  s.capacity,
	}
}

// cleanupLoop drops expired entries once a minute when the shard is over 80% full.
func (s *lruShard) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if len(s.items) > s.capacity*80/100 {
				s.removeExpired(time.Now())
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *lruShard) removeExpired(at time.Time) {
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if at.After(el.Value.(*lruEntry).expiresAt) {
			s.removeElement(el)
		}
		el = prev
	}
}

func (s *lruShard) removeElement(el *list.Element) {
	s.order.Remove(el)
	delete(s.items, el.Value.(*lruEntry).key)
}
