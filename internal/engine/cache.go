package engine

import (
	"sync"
	"time"

	"github.com/cardwise/cardwise/internal/model"
)

// cacheEntry holds a cached classification with its write time.
type cacheEntry struct {
	storedAt time.Time
	result   model.ClassificationResult
}

// resultCache is a thread-safe classification cache keyed by normalized
// description. A zero TTL means entries never expire; maxEntries bounds
// growth by evicting the oldest entries when the bound is hit. Concurrent
// writers for the same key race with last-write-wins semantics, which is
// acceptable because classification is idempotent per description.
type resultCache struct {
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	mu         sync.RWMutex
}

// newResultCache creates a cache. ttl=0 disables expiry; maxEntries<=0
// disables the size bound.
func newResultCache(ttl time.Duration, maxEntries int) *resultCache {
	return &resultCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// get retrieves a cached result if present and not expired.
func (c *resultCache) get(key string) (model.ClassificationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return model.ClassificationResult{}, false
	}
	if c.ttl > 0 && time.Since(entry.storedAt) > c.ttl {
		return model.ClassificationResult{}, false
	}
	return entry.result, true
}

// set stores a result, overwriting any prior entry for the key.
func (c *resultCache) set(key string, result model.ClassificationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictOldestLocked()
		}
	}

	c.entries[key] = cacheEntry{
		result:   result,
		storedAt: time.Now(),
	}
}

// evictOldestLocked removes the oldest entry. Caller holds the write lock.
func (c *resultCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// size returns the number of entries in the cache.
func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// clear removes all entries.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
