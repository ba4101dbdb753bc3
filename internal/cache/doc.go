// Package cache provides a small generic LRU cache.
//
// It backs the engine's memo of recently used transform tables: hosts that
// flip between a handful of effect configurations (the beat-synced preset
// cycling case) get each table back from here instead of regenerating it.
//
//	c := cache.New[string, int](8)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
