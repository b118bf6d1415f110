package mealdb

import (
	"sync"
	"time"
)

// Cache key names for the fixed query shapes.
// Search results are query-parameterized and never cached.
const (
	cacheKeyFeatured   = "featured"
	cacheKeyCategories = "categories"
	cacheKeyAreas      = "areas"
	cacheKeyAll        = "all"
)

// cacheEntry is a stored payload plus its fetch time.
type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a time-boxed in-memory store for upstream responses.
// The key space is bounded to the handful of fixed query shapes above,
// so there is no eviction beyond the expiry check. Expiry is computed
// against a caller-supplied clock for testability. The mutex makes
// concurrent read-through safe; overlapping misses may both fetch and
// overwrite, last writer wins.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

// NewCache creates a Cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached value for key if one exists and is younger than
// the TTL at instant now. An entry older than the TTL is logically absent.
func (c *Cache) Get(key string, now time.Time) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if now.Sub(entry.fetchedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed.
		if current, ok := c.entries[key]; ok && now.Sub(current.fetchedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Put stores value under key, stamped at instant now.
// Only successful fetches write entries; failed fetches never do.
func (c *Cache) Put(key string, value any, now time.Time) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, fetchedAt: now}
	c.mu.Unlock()
}
