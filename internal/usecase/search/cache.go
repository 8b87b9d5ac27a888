package search

import (
	"fmt"
	"sync"
	"time"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// ResultCache memoizes search responses in memory. Eviction is by
// insertion order, not access order: when the map is full, the entry
// inserted earliest goes first regardless of how recently it was read.
// Single-process only; this is not a distributed cache.
type ResultCache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	order    []string // keys in insertion order
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

type cacheEntry struct {
	timestamp time.Time
	value     domain.SearchResponse
}

// NewResultCache creates a cache with the given capacity and validity
// window. Non-positive arguments fall back to 1000 entries / 24h.
func NewResultCache(capacity int, ttl time.Duration) *ResultCache {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ResultCache{
		entries:  make(map[string]cacheEntry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the cache's clock (test-only).
func (c *ResultCache) WithClock(now func() time.Time) *ResultCache {
	c.now = now
	return c
}

// Get returns the cached response for key if it is younger than the
// validity window. Stale entries are removed on lookup.
func (c *ResultCache) Get(key string) (domain.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.SearchResponse{}, false
	}
	if c.now().Sub(e.timestamp) > c.ttl {
		c.remove(key)
		return domain.SearchResponse{}, false
	}
	return e.value, true
}

// Put inserts or overwrites the entry for key with a fresh timestamp.
// Inserting a new key into a full cache evicts exactly one entry: the
// earliest-inserted key still present.
func (c *ResultCache) Put(key string, value domain.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.capacity && len(c.order) > 0 {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{timestamp: c.now(), value: value}
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.order = nil
}

// Len reports the current entry count.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from the map and the insertion-order list.
// Callers must hold c.mu.
func (c *ResultCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// CacheKey derives a deterministic key from the normalized query text
// and the active filters. Equivalent query+filter pairs always map to
// the same key. Parts are length-prefixed so a query containing a
// literal filter marker cannot collide with a genuinely filtered one.
func CacheKey(query string, filters domain.SearchFilters) string {
	q := domain.Normalize(query)
	co := domain.Normalize(filters.Company)
	ca := domain.Normalize(filters.Category)
	return fmt.Sprintf("%d:%s|company=%d:%s|category=%d:%s",
		len(q), q, len(co), co, len(ca), ca)
}
