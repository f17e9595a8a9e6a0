// Package cache provides the TTL-bounded LRU caches used by the services and
// middleware.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/guttosm/budget-service/internal/metrics"
)

// Cache defines the interface for cache operations.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Invalidate(key K)
	Clear()
	Len() int
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics[K comparable, V any] interface {
	Cache[K, V]
	Metrics() Metrics
}

// LRU is a size-bounded cache whose entries also expire after a TTL. It is
// safe for concurrent use and reports to the cache_* Prometheus collectors
// under its name.
type LRU[K comparable, V any] struct {
	name     string
	capacity int
	lru      *expirable.LRU[K, V]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewLRU creates a cache holding at most capacity entries for ttl each.
// A non-positive ttl disables expiry.
func NewLRU[K comparable, V any](name string, capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl < 0 {
		ttl = 0
	}
	c := &LRU[K, V]{name: name, capacity: capacity}
	c.lru = expirable.NewLRU[K, V](capacity, func(K, V) {
		c.evictions.Add(1)
	}, ttl)
	return c
}

// Get returns the live entry for key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "hit")
	} else {
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
	}
	return v, ok
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
	metrics.RecordCacheOperation(c.name, "set", "ok")
	metrics.UpdateCacheSize(c.name, c.lru.Len())
}

// Invalidate removes key.
func (c *LRU[K, V]) Invalidate(key K) {
	if c.lru.Remove(key) {
		metrics.RecordCacheOperation(c.name, "invalidate", "ok")
	}
	metrics.UpdateCacheSize(c.name, c.lru.Len())
}

// Clear removes every entry.
func (c *LRU[K, V]) Clear() {
	c.lru.Purge()
	metrics.UpdateCacheSize(c.name, 0)
}

// Len returns the number of entries, including expired ones not yet reaped.
func (c *LRU[K, V]) Len() int {
	return c.lru.Len()
}

// Metrics returns current cache performance metrics. Evictions include
// removals by Invalidate, Clear and expiry.
func (c *LRU[K, V]) Metrics() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
		Capacity:  c.capacity,
	}
}

var _ CacheWithMetrics[string, int] = (*LRU[string, int])(nil)
