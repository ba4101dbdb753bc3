package warp

// Transform tables store one packed 32-bit entry per destination pixel.
// Without sub-pixel precision the entry is the flat source index itself.
// With sub-pixel precision the low 22 bits hold the index and the top ten
// bits hold two 5-bit fractional offsets:
//
//	bit  0..21  flat source index (y*width + x)
//	bit 22..26  fracY, vertical fraction in [0, 31] (1/32 pixel steps)
//	bit 27..31  fracX, horizontal fraction in [0, 31]
//
// All packing and unpacking goes through tableEntry so the bit layout
// lives in exactly one place.
const (
	fracBits   = 5
	fracLevels = 1 << fracBits // 32 sub-pixel steps per axis
	fracMax    = fracLevels - 1

	indexBits = 32 - 2*fracBits // 22
	indexMask = 1<<indexBits - 1

	fracYShift = indexBits
	fracXShift = indexBits + fracBits

	// maxSubpixelPixels is the largest buffer (width*height) whose flat
	// indices fit in the packed sub-pixel layout. Larger buffers fall back
	// to whole-pixel precision.
	maxSubpixelPixels = 1 << indexBits
)

// tableEntry is one packed transform-table slot.
type tableEntry uint32

// packIndex stores a whole-pixel entry: the flat index with zero fractions.
func packIndex(index int) tableEntry {
	return tableEntry(uint32(index))
}

// packSubpixel stores a sub-pixel entry. index must fit in 22 bits and the
// fractions must already be in [0, fracMax]; Generate guarantees both.
func packSubpixel(index, fracX, fracY int) tableEntry {
	return tableEntry(uint32(index) |
		uint32(fracY)<<fracYShift |
		uint32(fracX)<<fracXShift)
}

// index decodes the flat source index of a sub-pixel entry.
func (e tableEntry) index() int { return int(e) & indexMask }

// wholeIndex decodes the flat source index of a whole-pixel entry,
// which uses all 32 bits.
func (e tableEntry) wholeIndex() int { return int(uint32(e)) }

// fracX decodes the horizontal 5-bit fraction of a sub-pixel entry.
func (e tableEntry) fracX() int { return int(e>>fracXShift) & fracMax }

// fracY decodes the vertical 5-bit fraction of a sub-pixel entry.
func (e tableEntry) fracY() int { return int(e>>fracYShift) & fracMax }
