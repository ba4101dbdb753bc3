package warp

import "testing"

func TestBeatToggle_RisingEdges(t *testing.T) {
	// One step per frame: beat flag in, expected toggle state out.
	steps := []struct {
		isBeat   bool
		reactive bool
		want     bool
	}{
		{false, true, false}, // quiet start
		{true, true, true},   // rising edge flips
		{true, true, true},   // held beat is one edge, not two
		{false, true, true},  // release does nothing
		{true, true, false},  // next edge flips back
		{false, true, false},
		{true, true, true},
	}

	var b beatToggle
	for i, s := range steps {
		if got := b.observe(s.isBeat, s.reactive); got != s.want {
			t.Fatalf("frame %d: observe(%v) = %v, want %v", i, s.isBeat, got, s.want)
		}
	}
}

func TestBeatToggle_NonReactive(t *testing.T) {
	var b beatToggle

	// Beats arrive while the mode is not beat-reactive: no flips.
	for i, isBeat := range []bool{false, true, false, true, true} {
		if got := b.observe(isBeat, false); got {
			t.Fatalf("frame %d: non-reactive observe flipped the toggle", i)
		}
	}

	// The final frame left the beat flag high. Turning reactivity on while
	// it stays high must not count the stale edge.
	if got := b.observe(true, true); got {
		t.Errorf("held beat counted as a rising edge after mode change")
	}
	// A fresh edge after a release does count.
	b.observe(false, true)
	if got := b.observe(true, true); !got {
		t.Errorf("fresh rising edge did not flip the toggle")
	}
}

func TestBeatToggle_Reset(t *testing.T) {
	var b beatToggle
	b.observe(true, true)
	if !b.toggled {
		t.Fatalf("setup: toggle did not flip")
	}

	b.reset()
	if b.toggled || b.prevBeat {
		t.Errorf("reset left state behind: %+v", b)
	}
	// After reset a held beat reads as a fresh edge again.
	if got := b.observe(true, true); !got {
		t.Errorf("post-reset edge did not flip the toggle")
	}
}
