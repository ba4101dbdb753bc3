// Package pattern generates synthetic source frames for the demo commands.
//
// Both generators are pure functions of their arguments, so demo runs are
// reproducible frame for frame.
package pattern

import (
	"math"

	"github.com/gogpu/warp"
)

// gridStep is the test card cell size in pixels.
const gridStep = 16

// TestCard renders a calibration-style frame: a pixel grid and a center
// crosshair over an angular color wash. Straight lines make remap geometry
// easy to read — swirls bend the grid, zooms change its pitch, and wrap
// versus clamp shows up immediately at the border.
func TestCard(width, height int) *warp.Buffer {
	buf := warp.NewBuffer(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			angle := math.Atan2(dy, dx)
			fade := 1 - 0.6*math.Hypot(dx, dy)/maxDist

			r := fade * (0.55 + 0.45*math.Sin(angle))
			g := fade * (0.55 + 0.45*math.Sin(angle+2*math.Pi/3))
			b := fade * (0.55 + 0.45*math.Sin(angle+4*math.Pi/3))

			v := warp.PackRGBA(byte(r*255), byte(g*255), byte(b*255), 255)
			switch {
			case x == int(cx) || y == int(cy):
				v = warp.PackRGBA(255, 255, 255, 255) // crosshair
			case x%gridStep == 0 || y%gridStep == 0:
				v = warp.PackRGBA(96, 96, 96, 255) // grid
			}
			buf.Set(x, y, v)
		}
	}
	return buf
}

// Plasma renders the classic sine-sum plasma at time t, in seconds.
// Smooth gradients make sub-pixel filtering and blend trails visible in a
// way hard edges cannot.
func Plasma(width, height int, t float64) *warp.Buffer {
	buf := warp.NewBuffer(width, height)
	cx, cy := float64(width)/2, float64(height)/2

	for y := 0; y < height; y++ {
		fy := float64(y)
		for x := 0; x < width; x++ {
			fx := float64(x)
			v := math.Sin(fx/16+t) +
				math.Sin(fy/8-0.7*t) +
				math.Sin((fx+fy)/32+1.3*t) +
				math.Sin(math.Hypot(fx-cx, fy-cy)/8-t)

			r := 128 + 127*math.Sin(v*math.Pi/2)
			g := 128 + 127*math.Sin(v*math.Pi/2+2*math.Pi/3)
			b := 128 + 127*math.Sin(v*math.Pi/2+4*math.Pi/3)
			buf.Set(x, y, warp.PackRGBA(byte(r), byte(g), byte(b), 255))
		}
	}
	return buf
}
