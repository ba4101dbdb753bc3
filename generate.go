package warp

import (
	"math"

	"github.com/gogpu/warp/internal/parallel"
	"github.com/gogpu/warp/script"
)

// Generate builds the transform table for cfg at the given dimensions.
//
// Generate is a pure function of its inputs: the same (cfg, width, height)
// always yields a bit-identical table, which is what makes table caching
// sound. The returned table is always usable. When a custom script fails
// to compile, Generate returns the identity table together with the
// *script.CompileError describing why; every other outcome returns a nil
// error. Per-pixel numeric faults (NaN or Inf escaping a script) map the
// affected pixel to itself and are not errors.
//
// Generate panics if width or height is not positive or cfg.Effect is not
// a valid effect — both are caller bugs, not data conditions.
func Generate(cfg Config, width, height int) (*Table, error) {
	g, tbl, err := prepare(cfg, width, height)
	if g == nil {
		return tbl, err
	}
	g.fillRows(0, height)
	return g.table, nil
}

// generateOn is Generate partitioned into row bands on a worker pool.
// Bands write disjoint entry ranges, so the result is identical to the
// sequential path regardless of worker count or scheduling.
func generateOn(pool *parallel.Pool, cfg Config, width, height int) (*Table, error) {
	g, tbl, err := prepare(cfg, width, height)
	if g == nil {
		return tbl, err
	}

	bands := parallel.Bands(height, pool.Workers()*bandsPerWorker)
	if len(bands) <= 1 {
		g.fillRows(0, height)
		return g.table, nil
	}

	work := make([]func(), len(bands))
	for i, b := range bands {
		b := b
		work[i] = func() { g.fillRows(b.Start, b.End) }
	}
	pool.ExecuteAll(work)
	return g.table, nil
}

// bandsPerWorker oversubscribes row bands so faster workers can steal
// work from slower ones instead of idling at the join.
const bandsPerWorker = 4

// generator carries the per-pass state shared by all row bands. Bands
// write disjoint slices of table.entries; everything else is read-only
// during the pass.
type generator struct {
	cfg      Config
	width    int
	height   int
	subpixel bool // effective: requested && index fits 22 bits

	polar polarFunc       // non-nil on the polar builtin path
	prog  *script.Program // non-nil on the custom script path

	// Pixel-space geometry. The integer center matches the float center
	// except on odd dimensions, where pixel offsets use the integer one.
	icx, icy int
	maxDist  float64

	table *Table
}

// prepare validates the inputs and resolves the generation strategy.
// A nil generator means no per-pixel pass is needed: tbl is the finished
// identity table (EffectNone, or the fallback for a script that failed to
// compile, in which case err is the *script.CompileError).
func prepare(cfg Config, width, height int) (*generator, *Table, error) {
	if width <= 0 || height <= 0 {
		panic("warp: Generate dimensions must be positive")
	}
	if !cfg.Effect.Valid() {
		panic("warp: invalid effect selector")
	}

	if cfg.Effect == EffectNone {
		return nil, newIdentityTable(width, height), nil
	}

	subpixel := cfg.Subpixel
	if subpixel && width*height > maxSubpixelPixels {
		Logger().Warn("buffer too large for sub-pixel precision, using whole pixels",
			"width", width, "height", height, "limit", maxSubpixelPixels)
		subpixel = false
	}

	g := &generator{
		cfg:      cfg,
		width:    width,
		height:   height,
		subpixel: subpixel,
		icx:      width / 2,
		icy:      height / 2,
		maxDist:  math.Hypot(float64(width), float64(height)) / 2,
		table:    newTable(width, height, subpixel),
	}

	switch cfg.Effect {
	case EffectCustom:
		prog, err := script.Compile(cfg.Script)
		if err != nil {
			return nil, newIdentityTable(width, height), err
		}
		g.prog = prog
	default:
		g.polar = cfg.Effect.polarFormula()
	}
	return g, nil, nil
}

// fillRows generates table entries for destination rows [y0, y1).
func (g *generator) fillRows(y0, y1 int) {
	switch {
	case g.prog != nil:
		g.fillScript(y0, y1)
	case g.polar != nil:
		g.fillPolar(y0, y1)
	default:
		g.fillCartesian(y0, y1)
	}
}

// fillPolar runs a closed-form polar formula over the band.
func (g *generator) fillPolar(y0, y1 int) {
	for y := y0; y < y1; y++ {
		yd := float64(y - g.icy)
		for x := 0; x < g.width; x++ {
			xd := float64(x - g.icx)
			dist := math.Hypot(xd, yd)
			r := math.Atan2(yd, xd) + math.Pi/2

			r, dist = g.polar(r, dist, dist/g.maxDist)

			px := float64(g.icx) + math.Cos(r-math.Pi/2)*dist
			py := float64(g.icy) + math.Sin(r-math.Pi/2)*dist
			g.store(x, y, px, py)
		}
	}
}

// fillScript evaluates the compiled program once per pixel. All six
// variables are bound regardless of the coordinate mode; the mode only
// chooses which pair is read back.
func (g *generator) fillScript(y0, y1 int) {
	halfW := float64(g.icx)
	if halfW == 0 {
		halfW = 1
	}
	halfH := float64(g.icy)
	if halfH == 0 {
		halfH = 1
	}

	var v script.Vars
	for y := y0; y < y1; y++ {
		yd := float64(y - g.icy)
		for x := 0; x < g.width; x++ {
			xd := float64(x - g.icx)
			dist := math.Hypot(xd, yd)

			v.X = xd / halfW
			v.Y = yd / halfH
			v.R = math.Atan2(yd, xd) + math.Pi/2
			v.D = dist / g.maxDist
			v.SW = float64(g.width)
			v.SH = float64(g.height)

			g.prog.Eval(&v)

			var px, py float64
			if g.cfg.Rectangular {
				px = (v.X + 1) * float64(g.width) / 2
				py = (v.Y + 1) * float64(g.height) / 2
			} else {
				d := v.D * g.maxDist
				px = float64(g.icx) + math.Cos(v.R-math.Pi/2)*d
				py = float64(g.icy) + math.Sin(v.R-math.Pi/2)*d
			}
			g.store(x, y, px, py)
		}
	}
}

// fillCartesian handles the integer pixel-space effects, which bypass the
// polar path entirely.
func (g *generator) fillCartesian(y0, y1 int) {
	switch g.cfg.Effect {
	case EffectFuzzify:
		for y := y0; y < y1; y++ {
			for x := 0; x < g.width; x++ {
				h := pixelHash(x, y)
				sx := x + int(h%3) - 1
				sy := y + int((h>>8)%3) - 1
				g.storeInt(x, y, sx, sy)
			}
		}

	case EffectShiftRotateLeft:
		shift := g.width / 64
		if shift < 1 {
			shift = 1
		}
		for y := y0; y < y1; y++ {
			for x := 0; x < g.width; x++ {
				sx := x + shift
				if g.cfg.Wrap {
					if sx >= g.width {
						sx -= g.width
					}
				} else if sx > g.width-1 {
					sx = g.width - 1
				}
				g.storeInt(x, y, sx, y)
			}
		}

	case EffectBlockyPartialOut:
		for y := y0; y < y1; y++ {
			for x := 0; x < g.width; x++ {
				if x&2 != 0 || y&2 != 0 {
					g.storeInt(x, y, x, y)
					continue
				}
				sx := g.icx + (x-g.icx)*7/8
				sy := g.icy + (y-g.icy)*7/8
				g.storeInt(x, y, sx, sy)
			}
		}
	}
}

// store packs the float source coordinate for destination pixel (x, y),
// applying the NaN guard, the wrap/clamp edge policy and sub-pixel
// quantization. The edge policy always runs before packing: the table
// never holds an out-of-range index.
func (g *generator) store(x, y int, px, py float64) {
	if math.IsNaN(px) || math.IsInf(px, 0) || math.IsNaN(py) || math.IsInf(py, 0) {
		// Numeric fault: the pixel maps to itself.
		px, py = float64(x), float64(y)
	}

	px = fitCoord(px, g.width, g.cfg.Wrap)
	py = fitCoord(py, g.height, g.cfg.Wrap)

	i := y*g.width + x
	if g.subpixel {
		xi := int(px) // px >= 0, so truncation is floor
		yi := int(py)
		fx := int((px - float64(xi)) * fracLevels)
		if fx > fracMax {
			fx = fracMax
		}
		fy := int((py - float64(yi)) * fracLevels)
		if fy > fracMax {
			fy = fracMax
		}
		g.table.entries[i] = packSubpixel(yi*g.width+xi, fx, fy)
		return
	}

	xi := int(px + 0.5)
	yi := int(py + 0.5)
	if xi > g.width-1 {
		xi = g.width - 1
	}
	if yi > g.height-1 {
		yi = g.height - 1
	}
	g.table.entries[i] = packIndex(yi*g.width + xi)
}

// storeInt packs an integer source coordinate, applying the edge policy.
func (g *generator) storeInt(x, y, sx, sy int) {
	sx = fitInt(sx, g.width, g.cfg.Wrap)
	sy = fitInt(sy, g.height, g.cfg.Wrap)
	g.table.entries[y*g.width+x] = packIndex(sy*g.width + sx)
}

// fitCoord applies the edge policy to one float axis: coordinates already
// inside [0, dim-1] pass through untouched; outside, wrap reduces them
// modulo (dim-1) (toroidal) and clamp pins them to the nearest edge.
// Wrap degenerates to clamp when the axis has fewer than two pixels.
func fitCoord(v float64, dim int, wrap bool) float64 {
	maxC := float64(dim - 1)
	if v >= 0 && v <= maxC {
		return v
	}
	if wrap && dim >= 2 {
		m := math.Mod(v, maxC)
		if m < 0 {
			m += maxC
		}
		return m
	}
	if v < 0 {
		return 0
	}
	return maxC
}

// fitInt is fitCoord for the integer-space effects.
func fitInt(v, dim int, wrap bool) int {
	if v >= 0 && v < dim {
		return v
	}
	if wrap && dim >= 2 {
		m := v % (dim - 1)
		if m < 0 {
			m += dim - 1
		}
		return m
	}
	if v < 0 {
		return 0
	}
	return dim - 1
}

// pixelHash mixes a pixel position into a well-distributed 32-bit value.
// Fuzzify draws its jitter from this instead of a sequential RNG so that
// generation stays deterministic under any band partitioning.
func pixelHash(x, y int) uint32 {
	h := uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}
