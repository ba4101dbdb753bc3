package warp

// beatToggle is the two-state source-mapping machine. It flips its state
// on each rising edge of the beat flag (false on the previous frame, true
// on this one), and only while the configured mode is beat-reactive.
//
// The engine owns one beatToggle for its lifetime and calls observe
// exactly once per frame, before apply; there are never concurrent
// writers. The initial state is off with no beat pending.
type beatToggle struct {
	prevBeat bool
	toggled  bool
}

// observe feeds one frame's beat flag into the machine and returns the
// toggle state to use for that frame. reactive is the mode's beat bit;
// when it is clear, edges are still tracked (so switching the mode on
// later does not see a stale edge) but the state does not flip.
func (b *beatToggle) observe(isBeat, reactive bool) bool {
	rising := isBeat && !b.prevBeat
	b.prevBeat = isBeat
	if rising && reactive {
		b.toggled = !b.toggled
	}
	return b.toggled
}

// reset returns the machine to its initial state. Called when the host
// changes the source-mapping mode, which restarts the cycle.
func (b *beatToggle) reset() {
	b.prevBeat = false
	b.toggled = false
}
