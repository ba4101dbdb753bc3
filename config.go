package warp

// SourceMapMode selects how the output buffer is seeded before remapping.
//
// The value is a pair of bits. The low bit is the base source-mapping
// state; the high bit makes the state beat-reactive, flipping the effective
// state on every rising edge of Frame.IsBeat. The effective state for a
// frame is the base bit XOR the engine's beat toggle.
type SourceMapMode uint8

const (
	// SourceMapOff disables source mapping: the remap blends against
	// whatever the output buffer already holds (typically the previous
	// frame's output).
	SourceMapOff SourceMapMode = 0

	// SourceMapOn seeds the output before remapping — cleared to black
	// when blending is off, or with a copy of the input when blending is
	// on, so the effect builds on the current frame instead of feedback.
	SourceMapOn SourceMapMode = 1 << 0

	// SourceMapOnBeat starts with source mapping off and toggles the
	// effective state on every beat.
	SourceMapOnBeat SourceMapMode = 1 << 1

	// SourceMapBoth starts with source mapping on and toggles the
	// effective state on every beat.
	SourceMapBoth SourceMapMode = SourceMapOn | SourceMapOnBeat
)

// base reports the mode's base source-mapping bit.
func (m SourceMapMode) base() bool { return m&SourceMapOn != 0 }

// beatReactive reports whether beats flip the effective state.
func (m SourceMapMode) beatReactive() bool { return m&SourceMapOnBeat != 0 }

// String returns a human-readable mode name.
func (m SourceMapMode) String() string {
	switch m {
	case SourceMapOff:
		return "off"
	case SourceMapOn:
		return "on"
	case SourceMapOnBeat:
		return "on beat"
	case SourceMapBoth:
		return "on + beat"
	default:
		return "unknown"
	}
}

// Config selects the transform and its rendering flags for a frame.
//
// Config is a plain value passed to every Render call; the engine compares
// it (plus the frame dimensions) against the cached transform table and
// regenerates the table only when something relevant changed. There is no
// global configuration state.
type Config struct {
	// Effect selects the transform formula. EffectCustom evaluates Script
	// instead of a builtin.
	Effect Effect

	// Script is the per-pixel expression program used when Effect is
	// EffectCustom. Compared by value: any text change invalidates the
	// cached table and recompiles.
	Script string

	// Blend averages the remapped pixel 50/50 with the pixel already in
	// the output buffer instead of overwriting it.
	Blend bool

	// Subpixel stores 5-bit fractional offsets in the transform table and
	// bilinearly interpolates between source pixels when applying it.
	Subpixel bool

	// Wrap folds out-of-range source coordinates toroidally back into the
	// buffer instead of clamping them to the nearest edge.
	Wrap bool

	// Rectangular switches custom scripts to the rectangular coordinate
	// pair (x, y) instead of the radial pair (r, d). All six variables are
	// always bound; this chooses which pair is read back.
	Rectangular bool

	// SourceMap selects output seeding, optionally beat-toggled.
	SourceMap SourceMapMode
}

// Frame carries the per-frame inputs borrowed from the host for one
// Render call. The engine never retains the buffers.
type Frame struct {
	// IsBeat is the host's audio beat flag for this frame. The engine
	// treats it as an opaque edge-triggered signal.
	IsBeat bool

	// Input is the source pixel buffer. Never written.
	Input *Buffer

	// Output receives the remapped frame. With SourceMapOff and Blend
	// enabled its previous contents feed the 50/50 mix, so hosts should
	// reuse the same buffer across frames for feedback effects.
	Output *Buffer
}
