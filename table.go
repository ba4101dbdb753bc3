package warp

// Table is a dense per-pixel transform: entry i tells the renderer which
// source pixel destination pixel i reads, packed as described in entry.go.
//
// Tables are immutable after generation and safe to share across frames
// and goroutines. Every stored entry decodes to a flat index inside
// [0, Width*Height): the generator applies the wrap/clamp edge policy
// before packing, never after.
type Table struct {
	width    int
	height   int
	subpixel bool
	entries  []tableEntry
}

// newTable allocates an uninitialized table for the given dimensions.
func newTable(width, height int, subpixel bool) *Table {
	return &Table{
		width:    width,
		height:   height,
		subpixel: subpixel,
		entries:  make([]tableEntry, width*height),
	}
}

// newIdentityTable builds the table mapping every pixel to itself.
// Used for EffectNone and as the fallback for scripts that fail to compile.
func newIdentityTable(width, height int) *Table {
	t := newTable(width, height, false)
	for i := range t.entries {
		t.entries[i] = packIndex(i)
	}
	return t
}

// Width returns the width the table was generated for.
func (t *Table) Width() int { return t.width }

// Height returns the height the table was generated for.
func (t *Table) Height() int { return t.height }

// Subpixel reports whether entries carry 5-bit fractional offsets.
func (t *Table) Subpixel() bool { return t.subpixel }

// Len returns the number of entries (Width * Height).
func (t *Table) Len() int { return len(t.entries) }

// SourceIndex decodes the flat source index of entry i.
// It is exposed for tests and diagnostic tooling; rendering uses the
// packed entries directly.
func (t *Table) SourceIndex(i int) int {
	if t.subpixel {
		return t.entries[i].index()
	}
	return t.entries[i].wholeIndex()
}

// Fractions decodes the sub-pixel fractions of entry i.
// Both are zero when the table was generated without sub-pixel precision.
func (t *Table) Fractions(i int) (fracX, fracY int) {
	if !t.subpixel {
		return 0, 0
	}
	return t.entries[i].fracX(), t.entries[i].fracY()
}
