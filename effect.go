package warp

import "math"

// Effect identifies a transform formula. The zero value is EffectNone.
//
// Builtin effects are closed-form functions evaluated directly in Go.
// Most operate in polar space centered on the frame: they receive the
// pixel's angle r, its distance from center in pixels, and its distance
// normalized by the half-diagonal, and return an adjusted angle and
// distance. Three effects (fuzzify, shift rotate left, blocky partial out)
// work on integer pixel coordinates instead and never enter polar space.
//
// EffectCustom evaluates Config.Script per pixel; see package script.
type Effect int

const (
	// EffectNone maps every pixel to itself.
	EffectNone Effect = iota

	// EffectFuzzify jitters each pixel by up to ±1 pixel per axis using a
	// deterministic per-pixel hash.
	EffectFuzzify

	// EffectShiftRotateLeft shifts each row left by max(1, width/64)
	// pixels, wrapping around the row when Config.Wrap is set.
	EffectShiftRotateLeft

	// EffectBigSwirlOut: r += 0.1 - 0.2·norm; d *= 0.96
	EffectBigSwirlOut

	// EffectMediumSwirl: d *= 0.99·(1 - sin(r-π/2)/32); r += 0.03·sin(norm·4π)
	EffectMediumSwirl

	// EffectSunburster: d *= 0.94 + cos((r-π/2)·32)·0.06
	EffectSunburster

	// EffectSwirlToCenter: d *= 1.01 + cos((r-π/2)·4)·0.04; r += 0.03·sin(norm·4π)
	EffectSwirlToCenter

	// EffectBlockyPartialOut keeps pixels with (x&2)|(y&2) in place and
	// scales the rest's offset from the frame center by 7/8.
	EffectBlockyPartialOut

	// EffectSwirlBothWays: r += 0.1·sin(norm·5π)
	EffectSwirlBothWays

	// EffectBubblingOutward: d -= 8·sin(norm·π)⁵ pixels
	EffectBubblingOutward

	// EffectBubblingOutwardSwirl adds r += 0.1·cos(norm·π/2)³ on top of
	// EffectBubblingOutward.
	EffectBubblingOutwardSwirl

	// EffectFivePointedDistro: d *= 0.95 + cos((r-π/2)·5 - π/2.5)·0.03
	EffectFivePointedDistro

	// EffectTunneling: r += 0.04; d *= 0.96 + cos(norm·π)·0.05
	EffectTunneling

	// EffectBubbling: d *= 0.95 + sin(norm·5π - π/2.5)·0.03
	EffectBubbling

	// EffectSpiralOut: r += 0.1; d *= 0.96
	EffectSpiralOut

	// EffectKaleida6 folds the angle into π/3 sectors, mirroring every
	// other sector; distance is unchanged.
	EffectKaleida6

	// EffectSlowRotate: r += 0.02
	EffectSlowRotate

	// EffectZoomIn: d *= 0.9
	EffectZoomIn

	// EffectZoomOut: d *= 1.1
	EffectZoomOut

	// EffectRippleRings: d += 4·sin(norm·6π) pixels
	EffectRippleRings

	// EffectCenterWhirlpool: r += 0.3·(1-norm)²
	EffectCenterWhirlpool

	// EffectRadialPulse: d *= 1 + 0.04·cos(norm·12π)
	EffectRadialPulse

	// EffectMirrorKaleida folds the angle into [0, π], mirroring the
	// lower half plane onto the upper; distance is unchanged.
	EffectMirrorKaleida

	// EffectInwardSpiral: r -= 0.05 + 0.05·norm; d *= 1.02
	EffectInwardSpiral

	// EffectCustom evaluates Config.Script once per pixel.
	EffectCustom
)

// NumBuiltins is the number of builtin effect IDs. Valid builtin effects
// are Effect(0) through Effect(NumBuiltins-1); EffectCustom follows them.
const NumBuiltins = int(EffectCustom)

var effectNames = [...]string{
	EffectNone:                 "none",
	EffectFuzzify:              "slight fuzzify",
	EffectShiftRotateLeft:      "shift rotate left",
	EffectBigSwirlOut:          "big swirl out",
	EffectMediumSwirl:          "medium swirl",
	EffectSunburster:           "sunburster",
	EffectSwirlToCenter:        "swirl to center",
	EffectBlockyPartialOut:     "blocky partial out",
	EffectSwirlBothWays:        "swirling both ways",
	EffectBubblingOutward:      "bubbling outward",
	EffectBubblingOutwardSwirl: "bubbling outward with swirl",
	EffectFivePointedDistro:    "5 pointed distro",
	EffectTunneling:            "tunneling",
	EffectBubbling:             "bubbling",
	EffectSpiralOut:            "spiral out",
	EffectKaleida6:             "6-way kaleida",
	EffectSlowRotate:           "slow rotate",
	EffectZoomIn:               "zoom in",
	EffectZoomOut:              "zoom out",
	EffectRippleRings:          "ripple rings",
	EffectCenterWhirlpool:      "center whirlpool",
	EffectRadialPulse:          "radial pulse",
	EffectMirrorKaleida:        "mirror kaleida",
	EffectInwardSpiral:         "inward spiral",
	EffectCustom:               "custom",
}

// String returns the effect's display name.
func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return "unknown"
	}
	return effectNames[e]
}

// Valid reports whether e is a builtin effect or EffectCustom.
func (e Effect) Valid() bool { return e >= 0 && e <= EffectCustom }

// polarFunc adjusts one pixel in polar space. r is the angle described in
// generate.go, dist the distance from the frame center in pixels, and norm
// that distance normalized by the half-diagonal (0 at center, 1 at the
// corner). It returns the source angle and distance.
type polarFunc func(r, dist, norm float64) (float64, float64)

// polarFormula returns the polar transform for e, or nil when e is the
// identity, a Cartesian effect, or EffectCustom. This is the single
// dispatch point over the builtin formula set.
func (e Effect) polarFormula() polarFunc {
	switch e {
	case EffectBigSwirlOut:
		return bigSwirlOut
	case EffectMediumSwirl:
		return mediumSwirl
	case EffectSunburster:
		return sunburster
	case EffectSwirlToCenter:
		return swirlToCenter
	case EffectSwirlBothWays:
		return swirlBothWays
	case EffectBubblingOutward:
		return bubblingOutward
	case EffectBubblingOutwardSwirl:
		return bubblingOutwardSwirl
	case EffectFivePointedDistro:
		return fivePointedDistro
	case EffectTunneling:
		return tunneling
	case EffectBubbling:
		return bubbling
	case EffectSpiralOut:
		return spiralOut
	case EffectKaleida6:
		return kaleida6
	case EffectSlowRotate:
		return slowRotate
	case EffectZoomIn:
		return zoomIn
	case EffectZoomOut:
		return zoomOut
	case EffectRippleRings:
		return rippleRings
	case EffectCenterWhirlpool:
		return centerWhirlpool
	case EffectRadialPulse:
		return radialPulse
	case EffectMirrorKaleida:
		return mirrorKaleida
	case EffectInwardSpiral:
		return inwardSpiral
	default:
		return nil
	}
}

func bigSwirlOut(r, dist, norm float64) (float64, float64) {
	return r + 0.1 - 0.2*norm, dist * 0.96
}

func mediumSwirl(r, dist, norm float64) (float64, float64) {
	return r + 0.03*math.Sin(norm*4*math.Pi),
		dist * 0.99 * (1 - math.Sin(r-math.Pi/2)/32)
}

func sunburster(r, dist, _ float64) (float64, float64) {
	return r, dist * (0.94 + math.Cos((r-math.Pi/2)*32)*0.06)
}

func swirlToCenter(r, dist, norm float64) (float64, float64) {
	return r + 0.03*math.Sin(norm*4*math.Pi),
		dist * (1.01 + math.Cos((r-math.Pi/2)*4)*0.04)
}

func swirlBothWays(r, dist, norm float64) (float64, float64) {
	return r + 0.1*math.Sin(norm*5*math.Pi), dist
}

func bubblingOutward(r, dist, norm float64) (float64, float64) {
	t := math.Sin(norm * math.Pi)
	return r, dist - 8*t*t*t*t*t
}

func bubblingOutwardSwirl(r, dist, norm float64) (float64, float64) {
	t := math.Sin(norm * math.Pi)
	c := math.Cos(norm * math.Pi / 2)
	return r + 0.1*c*c*c, dist - 8*t*t*t*t*t
}

func fivePointedDistro(r, dist, _ float64) (float64, float64) {
	return r, dist * (0.95 + math.Cos((r-math.Pi/2)*5-math.Pi/2.5)*0.03)
}

func tunneling(r, dist, norm float64) (float64, float64) {
	return r + 0.04, dist * (0.96 + math.Cos(norm*math.Pi)*0.05)
}

func bubbling(r, dist, norm float64) (float64, float64) {
	return r, dist * (0.95 + math.Sin(norm*5*math.Pi-math.Pi/2.5)*0.03)
}

func spiralOut(r, dist, _ float64) (float64, float64) {
	return r + 0.1, dist * 0.96
}

func kaleida6(r, dist, _ float64) (float64, float64) {
	return foldSector(r, math.Pi/3), dist
}

func slowRotate(r, dist, _ float64) (float64, float64) {
	return r + 0.02, dist
}

func zoomIn(r, dist, _ float64) (float64, float64) {
	return r, dist * 0.9
}

func zoomOut(r, dist, _ float64) (float64, float64) {
	return r, dist * 1.1
}

func rippleRings(r, dist, norm float64) (float64, float64) {
	return r, dist + 4*math.Sin(norm*6*math.Pi)
}

func centerWhirlpool(r, dist, norm float64) (float64, float64) {
	t := 1 - norm
	return r + 0.3*t*t, dist
}

func radialPulse(r, dist, norm float64) (float64, float64) {
	return r, dist * (1 + 0.04*math.Cos(norm*12*math.Pi))
}

func mirrorKaleida(r, dist, _ float64) (float64, float64) {
	a := math.Mod(r, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a > math.Pi {
		a = 2*math.Pi - a
	}
	return a, dist
}

func inwardSpiral(r, dist, norm float64) (float64, float64) {
	return r - 0.05 - 0.05*norm, dist * 1.02
}

// foldSector folds angle r into repeating sectors of the given width,
// mirroring every other sector so adjacent sectors join seamlessly.
func foldSector(r, sector float64) float64 {
	a := math.Mod(r, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	s := math.Floor(a / sector)
	f := a - s*sector
	if int(s)&1 == 1 {
		f = sector - f
	}
	return f
}

var effectScripts = map[Effect]string{
	EffectBigSwirlOut:   "r = r + 0.1 - 0.2*d; d = d * 0.96;",
	EffectMediumSwirl:   "d = d * 0.99 * (1 - sin(r - $PI/2)/32); r = r + 0.03 * sin(d * $PI * 4);",
	EffectSunburster:    "d = d * (0.94 + cos((r - $PI/2) * 32) * 0.06);",
	EffectSwirlToCenter: "d = d * (1.01 + cos((r - $PI/2) * 4) * 0.04); r = r + 0.03 * sin(d * $PI * 4);",
	EffectSwirlBothWays: "r = r + 0.1 * sin(d * $PI * 5);",
	EffectBubblingOutward: "d = d - 8 * sin(d*$PI) * sin(d*$PI) * sin(d*$PI) * sin(d*$PI) * sin(d*$PI)" +
		" * 2 / sqrt(sw*sw + sh*sh);",
	EffectBubblingOutwardSwirl: "r = r + 0.1 * cos(d*$PI/2) * cos(d*$PI/2) * cos(d*$PI/2);" +
		" d = d - 8 * sin(d*$PI) * sin(d*$PI) * sin(d*$PI) * sin(d*$PI) * sin(d*$PI) * 2 / sqrt(sw*sw + sh*sh);",
	EffectFivePointedDistro: "d = d * (0.95 + cos((r - $PI/2) * 5 - $PI/2.5) * 0.03);",
	EffectTunneling:         "r = r + 0.04; d = d * (0.96 + cos(d * $PI) * 0.05);",
	EffectBubbling:          "d = d * (0.95 + sin(d * $PI * 5 - $PI/2.5) * 0.03);",
	EffectSpiralOut:         "r = r + 0.1; d = d * 0.96;",
	EffectSlowRotate:        "r = r + 0.02;",
	EffectZoomIn:            "d = d * 0.9;",
	EffectZoomOut:           "d = d * 1.1;",
	EffectRippleRings:       "d = d + 8 * sin(d * $PI * 6) / sqrt(sw*sw + sh*sh);",
	EffectCenterWhirlpool:   "r = r + 0.3 * (1 - d) * (1 - d);",
	EffectRadialPulse:       "d = d * (1 + 0.04 * cos(d * $PI * 12));",
	EffectInwardSpiral:      "r = r - 0.05 - 0.05*d; d = d * 1.02;",
}

// Script returns the expression-script equivalent of a builtin effect, or
// "" when the effect has no script form (the identity, the Cartesian
// integer effects, and the kaleidoscope folds, which need operations the
// script language does not have).
//
// Builtins always run their closed-form Go path; the returned text is a
// starting point for hosts that let users edit a builtin into an
// EffectCustom script. Because scripts see the normalized distance d
// rather than pixel distance, pixel-unit formulas appear divided by the
// half-diagonal sqrt(sw*sw+sh*sh)/2.
func (e Effect) Script() string { return effectScripts[e] }
