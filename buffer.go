package warp

import (
	"image"
	"image/color"
)

// Buffer is a rectangular pixel buffer of packed 32-bit colors, row-major.
//
// Each pixel is one uint32 holding four independent 8-bit lanes. The engine
// never interprets the lanes as specific channels: remapping, sub-pixel
// interpolation and blending treat all four lanes identically, so any
// consistent layout the host uses (RGBA, BGRA, ...) survives a Render call
// unchanged. The PackRGBA/ToImage helpers assume the RGBA byte order used
// by image.RGBA when converting at the edges.
type Buffer struct {
	width  int
	height int
	pix    []uint32
}

// NewBuffer creates a buffer with the given dimensions.
// It panics if either dimension is not positive.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic("warp: NewBuffer dimensions must be positive")
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

// Width returns the width of the buffer in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height of the buffer in pixels.
func (b *Buffer) Height() int { return b.height }

// Pix returns the raw pixel slice, row-major, length Width*Height.
// The slice is the buffer's backing store, not a copy.
func (b *Buffer) Pix() []uint32 { return b.pix }

// At returns the packed pixel at (x, y), or 0 when out of bounds.
func (b *Buffer) At(x, y int) uint32 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.pix[y*b.width+x]
}

// Set writes the packed pixel at (x, y). Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, v uint32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = v
}

// Clear fills the entire buffer with the packed color v.
func (b *Buffer) Clear(v uint32) {
	for i := range b.pix {
		b.pix[i] = v
	}
}

// CopyFrom copies src's pixels into b.
// It panics if the dimensions differ.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.width != b.width || src.height != b.height {
		panic("warp: CopyFrom dimensions mismatch")
	}
	copy(b.pix, src.pix)
}

// PackRGBA packs four 8-bit channels into the lane order used by the
// conversion helpers (R in the low byte, matching image.RGBA memory order
// on little-endian hosts).
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// UnpackRGBA splits a packed pixel into the four channels packed by PackRGBA.
func UnpackRGBA(v uint32) (r, g, b, a uint8) {
	return uint8(v), uint8(v >> 8), uint8(v >> 16), uint8(v >> 24)
}

// ToImage converts the buffer to an image.RGBA using PackRGBA lane order.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for i, v := range b.pix {
		o := i * 4
		img.Pix[o+0] = uint8(v)
		img.Pix[o+1] = uint8(v >> 8)
		img.Pix[o+2] = uint8(v >> 16)
		img.Pix[o+3] = uint8(v >> 24)
	}
	return img
}

// FromImage creates a buffer from an image using PackRGBA lane order.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())

	// Fast path: image.RGBA shares the lane order, copy rows directly.
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < buf.height; y++ {
			row := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < buf.width; x++ {
				o := x * 4
				buf.pix[y*buf.width+x] = PackRGBA(row[o], row[o+1], row[o+2], row[o+3])
			}
		}
		return buf
	}

	for y := 0; y < buf.height; y++ {
		for x := 0; x < buf.width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			buf.pix[y*buf.width+x] = PackRGBA(c.R, c.G, c.B, c.A)
		}
	}
	return buf
}

// Bounds returns the pixel bounds of the buffer.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// RGBAAt returns the pixel at (x, y) decoded with PackRGBA lane order.
func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	r, g, bl, a := UnpackRGBA(b.At(x, y))
	return color.RGBA{R: r, G: g, B: bl, A: a}
}
