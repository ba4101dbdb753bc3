package warp

// Sub-pixel resampling decodes a packed table entry and blends up to four
// neighboring source pixels. Weights come from the entry's 5-bit fractions
// as frac/31, computed in integer fixed point: the four corner weights sum
// to 31*31 = 961, and each 8-bit lane is blended independently with
// round-to-nearest division. Neighbor lookups clamp to the last row and
// column so edge entries never read out of bounds.

// sampleBilinear resolves one sub-pixel table entry against src.
func sampleBilinear(src *Buffer, e tableEntry) uint32 {
	fx := e.fracX()
	fy := e.fracY()
	idx := e.index()
	if fx == 0 && fy == 0 {
		return src.pix[idx]
	}

	w := src.width
	x := idx % w
	y := idx / w

	x1 := x + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	y1 := y + 1
	if y1 > src.height-1 {
		y1 = src.height - 1
	}

	p00 := src.pix[y*w+x]
	p10 := src.pix[y*w+x1]
	p01 := src.pix[y1*w+x]
	p11 := src.pix[y1*w+x1]

	w00 := uint32((fracMax - fx) * (fracMax - fy))
	w10 := uint32(fx * (fracMax - fy))
	w01 := uint32((fracMax - fx) * fy)
	w11 := uint32(fx * fy)

	var out uint32
	for shift := 0; shift < 32; shift += 8 {
		sum := (p00>>shift&0xff)*w00 +
			(p10>>shift&0xff)*w10 +
			(p01>>shift&0xff)*w01 +
			(p11>>shift&0xff)*w11
		// Round to nearest over the 961 denominator.
		out |= ((sum + 480) / 961) << shift
	}
	return out
}
