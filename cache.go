package warp

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/warp/internal/cache"
)

// tableKey identifies one generated transform table. Key equality is the
// sole regeneration trigger: a Render call whose key matches the current
// snapshot reuses it without locking.
type tableKey struct {
	width       int
	height      int
	effect      Effect
	scriptHash  uint64
	rectangular bool
	subpixel    bool
	wrap        bool
}

// makeTableKey derives the cache key for cfg at the given dimensions.
// Script text participates only for EffectCustom, so editing a script
// while a builtin effect is selected does not invalidate anything.
func makeTableKey(cfg Config, width, height int) (tableKey, string) {
	k := tableKey{
		width:       width,
		height:      height,
		effect:      cfg.Effect,
		rectangular: cfg.Rectangular,
		subpixel:    cfg.Subpixel,
		wrap:        cfg.Wrap,
	}
	if cfg.Effect != EffectCustom {
		return k, ""
	}
	h := fnv.New64a()
	h.Write([]byte(cfg.Script))
	k.scriptHash = h.Sum64()
	return k, cfg.Script
}

// cachedTable pairs a generated table with the key it was built for.
// script retains the exact text so that an fnv collision between two
// different scripts can never serve the wrong table. err is the compile
// error when table is the identity fallback for a broken script.
type cachedTable struct {
	key    tableKey
	script string
	table  *Table
	err    error
}

// matches reports whether the entry serves the given key and script text.
func (c *cachedTable) matches(key tableKey, scriptText string) bool {
	return c.key == key && c.script == scriptText
}

// recentTableLimit bounds the memo of recently used tables. Hosts that
// cycle a handful of configurations (beat-synced preset flipping is the
// common case) get their tables back without regenerating.
const recentTableLimit = 8

// tableCache memoizes generated tables. The current table is published
// through an atomic pointer so the per-frame hit path never takes a lock;
// the mutex serializes only table replacement, which is rare (config,
// script or dimension changes).
type tableCache struct {
	current atomic.Pointer[cachedTable]
	mu      sync.Mutex
	recent  *cache.Cache[tableKey, *cachedTable]
}

func newTableCache() *tableCache {
	return &tableCache{recent: cache.New[tableKey, *cachedTable](recentTableLimit)}
}

// snapshot returns the current entry when it matches, else nil.
func (c *tableCache) snapshot(key tableKey, scriptText string) *cachedTable {
	if cur := c.current.Load(); cur != nil && cur.matches(key, scriptText) {
		return cur
	}
	return nil
}

// replace makes key's table current, building it with build on a miss.
// The boolean reports whether build ran (fresh generation as opposed to a
// snapshot or memo hit).
func (c *tableCache) replace(key tableKey, scriptText string, build func() (*Table, error)) (*cachedTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent caller may have replaced the table while this one was
	// waiting on the lock.
	if cur := c.snapshot(key, scriptText); cur != nil {
		return cur, false
	}
	if prev, ok := c.recent.Get(key); ok && prev.matches(key, scriptText) {
		c.current.Store(prev)
		return prev, false
	}

	table, err := build()
	entry := &cachedTable{key: key, script: scriptText, table: table, err: err}
	c.recent.Set(key, entry)
	c.current.Store(entry)
	return entry, true
}
