package cache

import (
	"math"
	"sync"
)

// Cache is a generic thread-safe cache with least-recently-used eviction.
// When an insertion pushes the cache past its limit, the entries that were
// touched longest ago are evicted.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	limit   int
	tick    int64 // monotonic access counter
}

// entry holds a cached value with its access time.
type entry[V any] struct {
	value V
	atime int64 // tick value at last access
}

// New creates a cache holding at most limit entries.
// A limit of 0 means unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*entry[V]),
		limit:   limit,
	}
}

// Get retrieves a value from the cache and marks it recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.tick++
	e.atime = c.tick

	return e.value, true
}

// Set stores a value in the cache, evicting the least recently used
// entries if the limit is exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &entry[V]{
		value: value,
		atime: c.tick,
	}

	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictOldest()
	}
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the entry limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.limit
}

// evictOldest removes least-recently-used entries until the cache is back
// at its limit. The linear scan per eviction is fine at the handful of
// entries this cache is sized for. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	for len(c.entries) > c.limit {
		var (
			oldestKey K
			oldest    int64 = math.MaxInt64
		)
		for key, e := range c.entries {
			if e.atime < oldest {
				oldest = e.atime
				oldestKey = key
			}
		}
		delete(c.entries, oldestKey)
	}
}
