// Package cache implements the three-tier cache: an in-process L1 keyed by
// content hash, a process-shared L2 with per-kind TTLs, and L3 (the Chunk
// Store itself, which this package never touches directly - callers supply
// their own L3 read/write via the loader functions passed to Get).
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultL1Size is the default number of entries L1Cache retains for a
// bounded in-process map.
const DefaultL1Size = 1000

// L1Cache is an in-process bounded-size map keyed by content hash, used for
// reuse decisions ("has this exact content already been processed?") rather
// than general-purpose caching - callers key it by their own content hash.
type L1Cache[V any] struct {
	cache *lru.Cache[string, V]
}

// NewL1Cache creates an L1Cache. size <= 0 uses DefaultL1Size.
func NewL1Cache[V any](size int) *L1Cache[V] {
	if size <= 0 {
		size = DefaultL1Size
	}
	c, _ := lru.New[string, V](size)
	return &L1Cache[V]{cache: c}
}

// Get returns the cached value for key, if present.
func (c *L1Cache[V]) Get(key string) (V, bool) {
	return c.cache.Get(key)
}

// Set stores value under key, evicting the least recently used entry if the
// cache is at capacity.
func (c *L1Cache[V]) Set(key string, value V) {
	c.cache.Add(key, value)
}

// Invalidate removes key, if present. A no-op if key was never cached.
func (c *L1Cache[V]) Invalidate(key string) {
	c.cache.Remove(key)
}

// InvalidateFunc removes every entry for which keep returns false.
func (c *L1Cache[V]) InvalidateFunc(keep func(key string) bool) {
	for _, key := range c.cache.Keys() {
		if !keep(key) {
			c.cache.Remove(key)
		}
	}
}

// Len returns the number of entries currently cached.
func (c *L1Cache[V]) Len() int {
	return c.cache.Len()
}
