package warp

import (
	"math"
	"testing"

	"github.com/gogpu/warp/script"
)

func TestEffect_String(t *testing.T) {
	tests := []struct {
		effect Effect
		want   string
	}{
		{EffectNone, "none"},
		{EffectMediumSwirl, "medium swirl"},
		{EffectKaleida6, "6-way kaleida"},
		{EffectCustom, "custom"},
		{Effect(-1), "unknown"},
		{Effect(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.effect.String(); got != tt.want {
			t.Errorf("Effect(%d).String() = %q, want %q", int(tt.effect), got, tt.want)
		}
	}
}

func TestEffect_Valid(t *testing.T) {
	if Effect(-1).Valid() {
		t.Errorf("Effect(-1).Valid() = true")
	}
	if !EffectNone.Valid() || !EffectCustom.Valid() {
		t.Errorf("boundary effects report invalid")
	}
	if Effect(NumBuiltins + 1).Valid() {
		t.Errorf("Effect(%d).Valid() = true", NumBuiltins+1)
	}
}

// Every builtin must either resolve to a polar formula, be one of the
// three Cartesian effects, or be the identity, with no overlap.
func TestEffect_FormulaCoverage(t *testing.T) {
	cartesian := map[Effect]bool{
		EffectFuzzify:          true,
		EffectShiftRotateLeft:  true,
		EffectBlockyPartialOut: true,
	}
	for i := 0; i < NumBuiltins; i++ {
		e := Effect(i)
		hasPolar := e.polarFormula() != nil
		switch {
		case e == EffectNone:
			if hasPolar {
				t.Errorf("%v: identity has a polar formula", e)
			}
		case cartesian[e]:
			if hasPolar {
				t.Errorf("%v: Cartesian effect also has a polar formula", e)
			}
		default:
			if !hasPolar {
				t.Errorf("%v: builtin without a polar formula", e)
			}
		}
	}
	if EffectCustom.polarFormula() != nil {
		t.Errorf("EffectCustom has a polar formula")
	}
}

func TestEffect_PolarFormulas(t *testing.T) {
	const r, dist, norm = 1.25, 100.0, 0.5
	tests := []struct {
		effect   Effect
		wantR    float64
		wantDist float64
	}{
		{EffectZoomIn, r, 90},
		{EffectZoomOut, r, 110},
		{EffectSlowRotate, r + 0.02, dist},
		{EffectSpiralOut, r + 0.1, dist * 0.96},
		{EffectBigSwirlOut, r + 0.1 - 0.2*norm, dist * 0.96},
		{EffectInwardSpiral, r - 0.05 - 0.05*norm, dist * 1.02},
		{EffectCenterWhirlpool, r + 0.3*0.25, dist},
		// sin(0.5 * 5π) = sin(2.5π) = 1
		{EffectSwirlBothWays, r + 0.1, dist},
		// sin(0.5π) = 1, so the bubble displacement is its full 8 pixels
		{EffectBubblingOutward, r, dist - 8},
	}

	for _, tt := range tests {
		t.Run(tt.effect.String(), func(t *testing.T) {
			fn := tt.effect.polarFormula()
			if fn == nil {
				t.Fatalf("polarFormula() = nil")
			}
			gotR, gotDist := fn(r, dist, norm)
			if math.Abs(gotR-tt.wantR) > 1e-12 || math.Abs(gotDist-tt.wantDist) > 1e-12 {
				t.Errorf("formula(%v, %v, %v) = (%v, %v), want (%v, %v)",
					r, dist, norm, gotR, gotDist, tt.wantR, tt.wantDist)
			}
		})
	}
}

func TestFoldSector(t *testing.T) {
	sector := math.Pi / 3
	tests := []struct {
		name string
		r    float64
		want float64
	}{
		{"inside first sector", 0.5, 0.5},
		{"second sector mirrors", sector + 0.2, sector - 0.2},
		{"third sector repeats", 2*sector + 0.2, 0.2},
		// -0.1 normalizes to 2π-0.1, landing in the sixth (odd,
		// mirrored) sector: sector - (2π - 0.1 - 5·sector) = 0.1.
		{"negative angle", -0.1, 0.1},
		{"sector boundary", sector, sector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := foldSector(tt.r, sector)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("foldSector(%v) = %v, want %v", tt.r, got, tt.want)
			}
			if got < 0 || got > sector+1e-12 {
				t.Errorf("foldSector(%v) = %v, outside [0, %v]", tt.r, got, sector)
			}
		})
	}
}

func TestEffect_MirrorKaleida(t *testing.T) {
	fn := EffectMirrorKaleida.polarFormula()
	tests := []struct {
		r    float64
		want float64
	}{
		{0.5, 0.5},
		{math.Pi + 0.5, math.Pi - 0.5},
		{-0.5, 0.5},        // normalizes to 2π-0.5, above π, mirrors back
		{2*math.Pi + 1, 1}, // full turns drop out
	}
	for _, tt := range tests {
		got, dist := fn(tt.r, 50, 0.3)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("mirrorKaleida(%v) angle = %v, want %v", tt.r, got, tt.want)
		}
		if dist != 50 {
			t.Errorf("mirrorKaleida(%v) dist = %v, want 50", tt.r, dist)
		}
	}
}

// Script equivalents are starting points for user editing; they must at
// least compile. Numeric agreement with the Go formulas is not asserted;
// the script forms work in normalized distance and exist for hosts, not
// for the render path.
func TestEffect_ScriptsCompile(t *testing.T) {
	withScript := 0
	for i := 0; i < NumBuiltins; i++ {
		e := Effect(i)
		src := e.Script()
		if src == "" {
			continue
		}
		withScript++
		if _, err := script.Compile(src); err != nil {
			t.Errorf("%v script does not compile: %v", e, err)
		}
	}
	if withScript < 15 {
		t.Errorf("only %d builtins carry a script form", withScript)
	}
	if EffectCustom.Script() != "" {
		t.Errorf("EffectCustom has a script form")
	}
	if EffectNone.Script() != "" {
		t.Errorf("EffectNone has a script form")
	}
}
