package dict

import (
	"sync"
	"time"
)

const defaultCacheSize = 500

// cacheEntry is a cached lookup result with its storage time.
type cacheEntry struct {
	entry    Entry
	cachedAt time.Time
}

// lookupCache is an in-memory TTL cache of lookup results keyed by the
// case-folded word.
type lookupCache struct {
	entries map[string]cacheEntry
	maxSize int
	ttl     time.Duration
	mu      sync.RWMutex
}

func newLookupCache(maxSize int, ttl time.Duration) *lookupCache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	return &lookupCache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get retrieves a cached entry if present and not expired.
func (c *lookupCache) Get(word string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[word]
	if !ok {
		return Entry{}, false
	}
	if c.ttl > 0 && time.Since(cached.cachedAt) > c.ttl {
		return Entry{}, false
	}
	return cached.entry, true
}

// Set stores an entry, evicting the oldest one at capacity.
func (c *lookupCache) Set(word string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[word] = cacheEntry{entry: entry, cachedAt: time.Now()}
}

// evictOldest removes the oldest entry. Must be called with c.mu held.
func (c *lookupCache) evictOldest() {
	var oldestWord string
	var oldestTime time.Time
	for word, cached := range c.entries {
		if oldestWord == "" || cached.cachedAt.Before(oldestTime) {
			oldestWord = word
			oldestTime = cached.cachedAt
		}
	}
	if oldestWord != "" {
		delete(c.entries, oldestWord)
	}
}
