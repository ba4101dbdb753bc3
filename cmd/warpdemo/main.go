// Command warpdemo renders a warp effect offline into numbered PNG frames.
//
// The source is a synthetic test pattern, or an image supplied with -input
// (rescaled to the render size when needed). Beats are simulated on a fixed
// frame interval so the OnBeat source mapping modes can be exercised
// without an audio stream. With -sheet it renders every builtin effect and
// tiles their final frames into a single overview image.
//
//	warpdemo -effect "medium swirl" -frames 90 -blend -subpixel
//	warpdemo -script 'd = d*0.95; r = r + 0.05;' -input photo.png
//	warpdemo -sheet -frames 60
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/warp"
	"github.com/gogpu/warp/internal/pattern"
)

func main() {
	var (
		width     = flag.Int("width", 640, "frame width")
		height    = flag.Int("height", 480, "frame height")
		frames    = flag.Int("frames", 120, "number of frames to render")
		effect    = flag.String("effect", "medium swirl", "effect name or numeric ID")
		script    = flag.String("script", "", "custom script (overrides -effect)")
		rect      = flag.Bool("rect", false, "script reads back x,y instead of r,d")
		blend     = flag.Bool("blend", false, "50/50 blend with previous output")
		subpixel  = flag.Bool("subpixel", true, "sub-pixel precision")
		wrap      = flag.Bool("wrap", false, "wrap out-of-range coordinates")
		sourceMap = flag.Int("sourcemap", 0, "source map mode (0=off 1=on 2=onbeat 3=both)")
		beatEvery = flag.Int("beat-every", 16, "simulate a beat every N frames (0=never)")
		input     = flag.String("input", "", "source PNG (default: synthetic pattern)")
		source    = flag.String("source", "card", "synthetic source: card or plasma")
		outdir    = flag.String("outdir", "out", "output directory")
		sheet     = flag.Bool("sheet", false, "render every builtin effect into one contact sheet")
		list      = flag.Bool("list", false, "list builtin effects and exit")
	)
	flag.Parse()

	if *list {
		for i := 0; i < warp.NumBuiltins; i++ {
			fmt.Printf("%2d  %s\n", i, warp.Effect(i))
		}
		return
	}

	cfg := warp.Config{
		Blend:       *blend,
		Subpixel:    *subpixel,
		Wrap:        *wrap,
		Rectangular: *rect,
		SourceMap:   warp.SourceMapMode(*sourceMap),
	}
	if *script != "" {
		cfg.Effect = warp.EffectCustom
		cfg.Script = *script
	} else {
		e, err := parseEffect(*effect)
		if err != nil {
			log.Fatalf("Bad -effect: %v", err)
		}
		cfg.Effect = e
	}

	src, err := loadSource(*input, *source, *width, *height)
	if err != nil {
		log.Fatalf("Failed to load source: %v", err)
	}

	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *outdir, err)
	}

	if *sheet {
		if err := renderSheet(cfg, src, *width, *height, *frames, *beatEvery, *outdir); err != nil {
			log.Fatalf("Failed to render contact sheet: %v", err)
		}
		return
	}

	eng := warp.NewEngine()
	defer eng.Close()

	// The output buffer persists across frames: with blending and source
	// mapping off, each frame feeds back into the next, which is the look
	// these effects were built for.
	out := warp.NewBuffer(*width, *height)
	out.CopyFrom(src)

	for i := 0; i < *frames; i++ {
		in := src
		if *input == "" && *source == "plasma" {
			in = pattern.Plasma(*width, *height, float64(i)/30)
		}

		frame := warp.Frame{
			IsBeat: *beatEvery > 0 && i%*beatEvery == 0,
			Input:  in,
			Output: out,
		}
		if err := eng.Render(cfg, frame); err != nil {
			log.Fatalf("Render failed: %v", err)
		}

		name := filepath.Join(*outdir, fmt.Sprintf("frame_%04d.png", i))
		if err := savePNG(name, out.ToImage()); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
	}

	log.Printf("Rendered %d frames of %q to %s (%dx%d)\n",
		*frames, cfg.Effect, *outdir, *width, *height)
}

// renderSheet runs every builtin effect for the configured frame count and
// tiles each one's final frame into a single overview image, written as
// sheet.png in the output directory.
func renderSheet(cfg warp.Config, src *warp.Buffer, width, height, frames, beatEvery int, outdir string) error {
	const cols = 6
	rows := (warp.NumBuiltins + cols - 1) / cols

	eng := warp.NewEngine()
	defer eng.Close()

	grid := image.NewRGBA(image.Rect(0, 0, cols*width, rows*height))
	out := warp.NewBuffer(width, height)
	cfg.Script = ""

	for i := 0; i < warp.NumBuiltins; i++ {
		cfg.Effect = warp.Effect(i)
		out.CopyFrom(src)
		for f := 0; f < frames; f++ {
			frame := warp.Frame{
				IsBeat: beatEvery > 0 && f%beatEvery == 0,
				Input:  src,
				Output: out,
			}
			if err := eng.Render(cfg, frame); err != nil {
				return err
			}
		}
		cell := image.Pt((i%cols)*width, (i/cols)*height)
		draw.Copy(grid, cell, out.ToImage(), out.Bounds(), draw.Src, nil)
	}

	name := filepath.Join(outdir, "sheet.png")
	if err := savePNG(name, grid); err != nil {
		return err
	}
	log.Printf("Rendered %d effects to %s (%dx%d tiles)\n", warp.NumBuiltins, name, width, height)
	return nil
}

// parseEffect resolves a numeric ID or a display name to an Effect.
func parseEffect(s string) (warp.Effect, error) {
	if n, err := strconv.Atoi(s); err == nil {
		e := warp.Effect(n)
		if !e.Valid() {
			return 0, fmt.Errorf("effect ID %d out of range [0, %d]", n, warp.NumBuiltins)
		}
		return e, nil
	}
	for i := 0; i <= warp.NumBuiltins; i++ {
		if e := warp.Effect(i); strings.EqualFold(s, e.String()) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown effect %q (try -list)", s)
}

// loadSource returns the input image as a buffer at the render size, or a
// synthetic pattern when no input is given.
func loadSource(path, synth string, width, height int) (*warp.Buffer, error) {
	if path == "" {
		switch synth {
		case "card":
			return pattern.TestCard(width, height), nil
		case "plasma":
			return pattern.Plasma(width, height, 0), nil
		default:
			return nil, fmt.Errorf("unknown source %q", synth)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img = scaled
	}
	return warp.FromImage(img), nil
}

// savePNG writes the image to path as a PNG.
func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
