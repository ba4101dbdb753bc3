package warp

import "testing"

// fillDistinct gives every pixel a unique packed value so a remap's source
// is recoverable from the output. Multiplying by an odd constant is a
// bijection over uint32, so no two pixels collide.
func fillDistinct(b *Buffer) {
	for i := range b.pix {
		b.pix[i] = uint32(i+1) * 2654435761
	}
}

func TestApply_IdentityPassthrough(t *testing.T) {
	in := NewBuffer(4, 4)
	out := NewBuffer(4, 4)
	fillDistinct(in)

	apply(newIdentityTable(4, 4), Config{}, in, out, false)

	for i := range out.pix {
		if out.pix[i] != in.pix[i] {
			t.Fatalf("pixel %d: got %#x, want %#x", i, out.pix[i], in.pix[i])
		}
	}
}

func TestApply_RemapsThroughTable(t *testing.T) {
	// A hand-built table that reverses the four pixels of a 2x2 frame.
	tbl := newTable(2, 2, false)
	for i := range tbl.entries {
		tbl.entries[i] = packIndex(3 - i)
	}

	in := NewBuffer(2, 2)
	out := NewBuffer(2, 2)
	fillDistinct(in)

	apply(tbl, Config{}, in, out, false)

	for i := range out.pix {
		if out.pix[i] != in.pix[3-i] {
			t.Errorf("pixel %d: got %#x, want %#x", i, out.pix[i], in.pix[3-i])
		}
	}
}

func TestApply_Blend(t *testing.T) {
	// Each lane averages independently with halves rounding up.
	tests := []struct {
		name         string
		in, existing uint32
		want         uint32
	}{
		{
			name:     "mixed lanes",
			in:       PackRGBA(0, 10, 255, 1),
			existing: PackRGBA(255, 20, 255, 2),
			want:     PackRGBA(128, 15, 255, 2),
		},
		{
			name:     "round half up",
			in:       PackRGBA(1, 0, 0, 0),
			existing: PackRGBA(2, 0, 0, 0),
			want:     PackRGBA(2, 0, 0, 0),
		},
		{
			name:     "equal pixels unchanged",
			in:       PackRGBA(37, 199, 0, 255),
			existing: PackRGBA(37, 199, 0, 255),
			want:     PackRGBA(37, 199, 0, 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewBuffer(1, 1)
			out := NewBuffer(1, 1)
			in.pix[0] = tt.in
			out.pix[0] = tt.existing

			apply(newIdentityTable(1, 1), Config{Blend: true}, in, out, false)

			if out.pix[0] != tt.want {
				t.Errorf("blend(%#x, %#x) = %#x, want %#x", tt.in, tt.existing, out.pix[0], tt.want)
			}
		})
	}
}

func TestApply_BlendUsesRemappedPixel(t *testing.T) {
	// The mix pairs the pixel fetched *through the table* with the one
	// already at the destination, not the untransformed source pixel.
	tbl := newTable(2, 1, false)
	tbl.entries[0] = packIndex(1)
	tbl.entries[1] = packIndex(0)

	in := NewBuffer(2, 1)
	out := NewBuffer(2, 1)
	in.pix[0] = PackRGBA(100, 0, 0, 255)
	in.pix[1] = PackRGBA(200, 0, 0, 255)
	out.pix[0] = PackRGBA(10, 0, 0, 255)
	out.pix[1] = PackRGBA(20, 0, 0, 255)

	apply(tbl, Config{Blend: true}, in, out, false)

	if want := PackRGBA(105, 0, 0, 255); out.pix[0] != want { // (200+10+1)/2
		t.Errorf("pixel 0: got %#x, want %#x", out.pix[0], want)
	}
	if want := PackRGBA(60, 0, 0, 255); out.pix[1] != want { // (100+20+1)/2
		t.Errorf("pixel 1: got %#x, want %#x", out.pix[1], want)
	}
}

func TestApply_SourceMapSeedsBlendBase(t *testing.T) {
	in := NewBuffer(3, 3)
	fillDistinct(in)
	tbl := newIdentityTable(3, 3)
	stale := PackRGBA(255, 255, 255, 255)

	// Source-mapped: the output is reseeded from the input before the
	// blend, so identity + blend reproduces the input exactly and the
	// stale output never leaks into the mix.
	out := NewBuffer(3, 3)
	out.Clear(stale)
	apply(tbl, Config{Blend: true}, in, out, true)
	for i := range out.pix {
		if out.pix[i] != in.pix[i] {
			t.Fatalf("seeded pixel %d: got %#x, want %#x", i, out.pix[i], in.pix[i])
		}
	}

	// Without source mapping the same call blends against the stale
	// contents instead.
	out.Clear(stale)
	apply(tbl, Config{Blend: true}, in, out, false)
	if out.pix[0] != blendAvg(in.pix[0], stale) {
		t.Errorf("unseeded pixel 0: got %#x, want %#x", out.pix[0], blendAvg(in.pix[0], stale))
	}
}

func TestApply_SourceMapInvisibleWithoutBlend(t *testing.T) {
	// With blending off every destination pixel is overwritten by the
	// remap, so the pre-seed cannot show through: both states must
	// produce identical frames.
	tbl := newTable(2, 2, false)
	for i := range tbl.entries {
		tbl.entries[i] = packIndex(3 - i)
	}
	in := NewBuffer(2, 2)
	fillDistinct(in)

	plain := NewBuffer(2, 2)
	seeded := NewBuffer(2, 2)
	seeded.Clear(0xdeadbeef)

	apply(tbl, Config{}, in, plain, false)
	apply(tbl, Config{}, in, seeded, true)

	for i := range plain.pix {
		if plain.pix[i] != seeded.pix[i] {
			t.Fatalf("pixel %d: seeded %#x differs from plain %#x", i, seeded.pix[i], plain.pix[i])
		}
	}
}

func TestApply_SubpixelTable(t *testing.T) {
	// The table's own sub-pixel flag routes the apply loop; the config
	// flag only matters at generation time.
	in := NewBuffer(2, 1)
	in.pix[0] = PackRGBA(100, 0, 0, 255)
	in.pix[1] = PackRGBA(200, 0, 0, 255)

	tbl := newTable(2, 1, true)
	tbl.entries[0] = packSubpixel(0, 16, 0)
	tbl.entries[1] = packSubpixel(0, 31, 0)

	out := NewBuffer(2, 1)
	apply(tbl, Config{}, in, out, false)

	// (100*465 + 200*496 + 480) / 961 = 152.
	if want := PackRGBA(152, 0, 0, 255); out.pix[0] != want {
		t.Errorf("interpolated pixel: got %#x, want %#x", out.pix[0], want)
	}
	// A full fraction lands exactly on the right neighbor.
	if out.pix[1] != in.pix[1] {
		t.Errorf("full-fraction pixel: got %#x, want %#x", out.pix[1], in.pix[1])
	}
}

func TestApply_SubpixelBlend(t *testing.T) {
	in := NewBuffer(2, 1)
	in.pix[0] = PackRGBA(100, 0, 0, 255)
	in.pix[1] = PackRGBA(200, 0, 0, 255)

	tbl := newTable(2, 1, true)
	tbl.entries[0] = packSubpixel(0, 16, 0)
	tbl.entries[1] = packIndex(1) // zero fractions take the fast path

	out := NewBuffer(2, 1)
	out.pix[0] = PackRGBA(0, 0, 0, 255)
	out.pix[1] = PackRGBA(50, 0, 0, 255)

	apply(tbl, Config{Blend: true}, in, out, false)

	// Interpolate first (152), then average with the existing pixel.
	if want := PackRGBA(76, 0, 0, 255); out.pix[0] != want { // (152+0+1)/2
		t.Errorf("pixel 0: got %#x, want %#x", out.pix[0], want)
	}
	if want := PackRGBA(125, 0, 0, 255); out.pix[1] != want { // (200+50+1)/2
		t.Errorf("pixel 1: got %#x, want %#x", out.pix[1], want)
	}
}

func TestApply_Panics(t *testing.T) {
	in := NewBuffer(4, 4)
	out := NewBuffer(4, 4)
	tbl := newIdentityTable(4, 4)

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil input", func() { apply(tbl, Config{}, nil, out, false) }},
		{"nil output", func() { apply(tbl, Config{}, in, nil, false) }},
		{"buffer size mismatch", func() { apply(tbl, Config{}, in, NewBuffer(4, 5), false) }},
		{"table size mismatch", func() { apply(newIdentityTable(3, 3), Config{}, in, out, false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic")
				}
			}()
			tt.fn()
		})
	}
}
