package warp

// apply remaps one frame through the table. sourceMap is the frame's
// effective source-mapping state (mode base bit XOR beat toggle), already
// resolved by the caller.
//
// Steps, per the pipeline contract:
//  1. When sourceMap is set, seed the output: cleared to black without
//     blending, or with a copy of the input when blending, so the blend
//     base is the current frame rather than the previous output.
//  2. Resolve every destination pixel through the table, bilinearly when
//     the table carries sub-pixel fractions.
//  3. With Blend set, write the rounded 50/50 average of the remapped
//     pixel and the pixel already present in the output.
//
// apply mutates only out. Mismatched buffer or table dimensions are
// caller bugs and panic.
func apply(t *Table, cfg Config, in, out *Buffer, sourceMap bool) {
	if in == nil || out == nil {
		panic("warp: apply requires non-nil input and output buffers")
	}
	if in.width != out.width || in.height != out.height {
		panic("warp: input and output buffer dimensions differ")
	}
	if t.width != in.width || t.height != in.height {
		panic("warp: table was generated for different dimensions")
	}

	if sourceMap {
		if cfg.Blend {
			out.CopyFrom(in)
		} else {
			out.Clear(0)
		}
	}

	src := in.pix
	dst := out.pix
	entries := t.entries

	switch {
	case t.subpixel && cfg.Blend:
		for i, e := range entries {
			dst[i] = blendAvg(sampleBilinear(in, e), dst[i])
		}
	case t.subpixel:
		for i, e := range entries {
			dst[i] = sampleBilinear(in, e)
		}
	case cfg.Blend:
		for i, e := range entries {
			dst[i] = blendAvg(src[e.wholeIndex()], dst[i])
		}
	default:
		for i, e := range entries {
			dst[i] = src[e.wholeIndex()]
		}
	}
}

// blendAvg averages the four 8-bit lanes of two packed pixels at once,
// rounding halves up: per lane, (a+b+1)>>1. The identity
//
//	avg(a, b) = (a | b) - ((a ^ b) >> 1)
//
// computes that without unpacking; masking the shifted XOR keeps bits
// from crossing lane boundaries.
func blendAvg(a, b uint32) uint32 {
	return (a | b) - ((a ^ b) >> 1 & 0x7f7f7f7f)
}
