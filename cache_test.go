package warp

import (
	"errors"
	"testing"
)

func TestMakeTableKey(t *testing.T) {
	base := Config{Effect: EffectZoomIn, Subpixel: true}

	k1, s1 := makeTableKey(base, 64, 48)
	k2, s2 := makeTableKey(base, 64, 48)
	if k1 != k2 || s1 != s2 {
		t.Fatalf("same config produced different keys: %+v vs %+v", k1, k2)
	}
	if s1 != "" {
		t.Errorf("builtin effect retained script text %q", s1)
	}

	// Script text is irrelevant while a builtin is selected.
	edited := base
	edited.Script = "d = d * 0.9;"
	if k3, _ := makeTableKey(edited, 64, 48); k3 != k1 {
		t.Errorf("script edit changed the key of a builtin effect")
	}

	// Every other field participates.
	for name, mutate := range map[string]func(*Config, *int, *int){
		"width":       func(c *Config, w, h *int) { *w = 65 },
		"height":      func(c *Config, w, h *int) { *h = 49 },
		"effect":      func(c *Config, w, h *int) { c.Effect = EffectZoomOut },
		"subpixel":    func(c *Config, w, h *int) { c.Subpixel = false },
		"wrap":        func(c *Config, w, h *int) { c.Wrap = true },
		"rectangular": func(c *Config, w, h *int) { c.Rectangular = true },
	} {
		cfg, w, h := base, 64, 48
		mutate(&cfg, &w, &h)
		if k, _ := makeTableKey(cfg, w, h); k == k1 {
			t.Errorf("%s change did not change the key", name)
		}
	}
}

func TestMakeTableKey_CustomScript(t *testing.T) {
	cfg := Config{Effect: EffectCustom, Script: "d = d * 0.5;"}

	k1, s1 := makeTableKey(cfg, 32, 32)
	if s1 != cfg.Script {
		t.Fatalf("script text not retained: got %q", s1)
	}

	cfg.Script = "d = d * 0.6;"
	k2, _ := makeTableKey(cfg, 32, 32)
	if k1.scriptHash == k2.scriptHash {
		t.Errorf("different scripts hashed identically")
	}
	if k1 == k2 {
		t.Errorf("script edit did not change the key")
	}
}

func TestTableCache_SnapshotHit(t *testing.T) {
	c := newTableCache()
	key, script := makeTableKey(Config{Effect: EffectNone}, 8, 8)

	if got := c.snapshot(key, script); got != nil {
		t.Fatalf("empty cache returned a snapshot")
	}

	builds := 0
	build := func() (*Table, error) {
		builds++
		return newIdentityTable(8, 8), nil
	}

	entry, generated := c.replace(key, script, build)
	if !generated || builds != 1 {
		t.Fatalf("first replace did not build: generated=%v builds=%d", generated, builds)
	}

	// The hit path returns the same entry without touching build.
	if got := c.snapshot(key, script); got != entry {
		t.Errorf("snapshot missed after replace")
	}
	if _, generated := c.replace(key, script, build); generated || builds != 1 {
		t.Errorf("replace rebuilt a current table: builds=%d", builds)
	}
}

func TestTableCache_RecentPromotion(t *testing.T) {
	c := newTableCache()
	keyA, _ := makeTableKey(Config{Effect: EffectZoomIn}, 8, 8)
	keyB, _ := makeTableKey(Config{Effect: EffectZoomOut}, 8, 8)

	builds := 0
	build := func() (*Table, error) {
		builds++
		return newIdentityTable(8, 8), nil
	}

	a1, _ := c.replace(keyA, "", build)
	c.replace(keyB, "", build)
	if builds != 2 {
		t.Fatalf("setup built %d tables, want 2", builds)
	}

	// Flipping back to A must promote the memoized table, not rebuild.
	a2, generated := c.replace(keyA, "", build)
	if generated || builds != 2 {
		t.Errorf("flip back regenerated: builds=%d", builds)
	}
	if a2 != a1 {
		t.Errorf("promotion returned a different entry")
	}
	if got := c.snapshot(keyA, ""); got != a1 {
		t.Errorf("promoted entry is not current")
	}
}

func TestTableCache_Eviction(t *testing.T) {
	c := newTableCache()
	build := func() (*Table, error) { return newIdentityTable(4, 4), nil }

	// Cycle through more configurations than the memo holds.
	keys := make([]tableKey, recentTableLimit+1)
	for i := range keys {
		keys[i], _ = makeTableKey(Config{Effect: Effect(i % NumBuiltins), Wrap: i >= NumBuiltins}, 4, 4)
		c.replace(keys[i], "", build)
	}

	// The oldest key was evicted and needs a rebuild; the newest is memoized.
	if _, generated := c.replace(keys[0], "", build); !generated {
		t.Errorf("oldest key survived past the memo limit")
	}
	if _, generated := c.replace(keys[len(keys)-1], "", build); generated {
		t.Errorf("recent key was evicted")
	}
}

func TestTableCache_ScriptCollisionGuard(t *testing.T) {
	// Two entries sharing a key (as a forged hash collision would) must
	// still be told apart by their retained script text.
	c := newTableCache()
	key, _ := makeTableKey(Config{Effect: EffectCustom, Script: "x = x;"}, 4, 4)

	c.replace(key, "x = x;", func() (*Table, error) { return newIdentityTable(4, 4), nil })

	if got := c.snapshot(key, "y = y;"); got != nil {
		t.Errorf("snapshot served a table compiled from different script text")
	}
	if _, generated := c.replace(key, "y = y;", func() (*Table, error) {
		return newIdentityTable(4, 4), nil
	}); !generated {
		t.Errorf("replace reused a table compiled from different script text")
	}
}

func TestTableCache_KeepsCompileError(t *testing.T) {
	c := newTableCache()
	key, script := makeTableKey(Config{Effect: EffectCustom, Script: "x = $BOGUS;"}, 4, 4)

	compileErr := errors.New("compile failed")
	builds := 0
	entry, _ := c.replace(key, script, func() (*Table, error) {
		builds++
		return newIdentityTable(4, 4), compileErr
	})
	if entry.err != compileErr || entry.table == nil {
		t.Fatalf("entry = {table %v, err %v}, want fallback table with the compile error", entry.table, entry.err)
	}

	// The broken script stays cached; rendering it again must not retry
	// the compile every frame.
	if got := c.snapshot(key, script); got == nil || got.err != compileErr {
		t.Errorf("broken script not served from cache")
	}
	if builds != 1 {
		t.Errorf("compile ran %d times, want 1", builds)
	}
}

func TestTableCache_ConcurrentReplace(t *testing.T) {
	c := newTableCache()
	key, _ := makeTableKey(Config{Effect: EffectNone}, 16, 16)

	done := make(chan *cachedTable)
	for i := 0; i < 8; i++ {
		go func() {
			entry, _ := c.replace(key, "", func() (*Table, error) {
				return newIdentityTable(16, 16), nil
			})
			done <- entry
		}()
	}

	first := <-done
	for i := 1; i < 8; i++ {
		if entry := <-done; entry != first {
			t.Fatalf("concurrent replace produced distinct entries")
		}
	}
}

func BenchmarkTableCache_Snapshot(b *testing.B) {
	c := newTableCache()
	cfg := Config{Effect: EffectCustom, Script: "d = d * 0.99; r = r + 0.05;", Subpixel: true}
	key, script := makeTableKey(cfg, 320, 240)
	c.replace(key, script, func() (*Table, error) { return newIdentityTable(320, 240), nil })

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		key, script := makeTableKey(cfg, 320, 240)
		if c.snapshot(key, script) == nil {
			b.Fatal("snapshot miss")
		}
	}
}
