// Package warp provides a real-time coordinate-remapping engine for Go.
//
// # Overview
//
// warp drives geometric "transition" effects (swirls, bubbles, grid warps,
// kaleidoscopes and user-scripted formulas) in audio-reactive image
// pipelines. For every output pixel it decides which source pixel(s) to
// read, optionally with sub-pixel blending, using either one of the builtin
// closed-form effects or a tiny per-pixel expression script.
//
// # Quick Start
//
//	import "github.com/gogpu/warp"
//
//	eng := warp.NewEngine()
//	defer eng.Close()
//
//	in := warp.NewBuffer(640, 480)
//	out := warp.NewBuffer(640, 480)
//
//	cfg := warp.Config{Effect: warp.EffectBigSwirlOut, Subpixel: true}
//	for running {
//	    fillFrame(in) // host supplies pixels and the beat flag
//	    eng.Render(cfg, warp.Frame{IsBeat: beat, Input: in, Output: out})
//	    present(out)
//	}
//
// # Custom Scripts
//
// Setting Config.Effect to EffectCustom evaluates Config.Script once per
// pixel. Scripts read and write the variables x, y, r, d, sw and sh:
//
//	cfg := warp.Config{
//	    Effect: warp.EffectCustom,
//	    Script: "r = r + 0.1; d = d * 0.95;",
//	}
//
// See package script for the expression language.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Config, Frame, Buffer, Effect, Table
//   - script: the per-pixel expression compiler and VM
//   - Internal: parallel (row-band worker pool), cache (table memoization)
//
// Transform tables are regenerated only when the configuration, script text
// or frame dimensions change; steady-state rendering reuses the cached
// table without locking.
//
// # Coordinate System
//
// Pixel buffers are row-major with origin (0,0) at the top-left, X
// increasing right, Y increasing down. Radial effects work in polar
// coordinates centered on the frame; rectangular effects in Cartesian
// coordinates normalized to roughly [-1, 1] per axis.
//
// # Concurrency
//
// Table generation is partitioned across a worker pool by row bands.
// Rendering itself is synchronous: the host calls Render exactly once per
// frame and the output buffer is complete when Render returns.
package warp

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
