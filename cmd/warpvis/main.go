// Command warpvis runs a warp effect live in the terminal.
//
// Frames render as half-block cells, two pixels per character cell, in
// 24-bit color where the terminal supports it. A metronome supplies the
// beats that drive the OnBeat source mapping modes, with an audible kick
// on each one.
//
// Keys:
//
//	n / p        next / previous effect
//	b, s, w      toggle blend, sub-pixel, wrap
//	m            cycle source map mode
//	space        manual beat
//	a            toggle audio
//	q, esc       quit
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"github.com/gogpu/warp"
	"github.com/gogpu/warp/internal/pattern"
)

const statusRows = 1

type app struct {
	screen tcell.Screen
	eng    *warp.Engine
	cfg    warp.Config

	// Pixel dimensions: one terminal column wide, two rows per cell.
	width, height int
	src, out      *warp.Buffer

	plasma   bool
	audio    bool
	beatGap  time.Duration
	lastBeat time.Time
	start    time.Time
}

func main() {
	var (
		fps    = flag.Int("fps", 30, "target frames per second")
		bpm    = flag.Int("bpm", 120, "metronome tempo")
		source = flag.String("source", "plasma", "source pattern: plasma or card")
		mute   = flag.Bool("mute", false, "start with audio off")
	)
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init terminal: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		screen: screen,
		eng:    warp.NewEngine(),
		cfg: warp.Config{
			Effect:   warp.EffectMediumSwirl,
			Blend:    true,
			Subpixel: true,
		},
		plasma:  *source != "card",
		beatGap: time.Minute / time.Duration(max(*bpm, 1)),
		start:   time.Now(),
	}
	if !*mute {
		a.audio = initAudio()
	}
	a.resize()

	defer a.cleanup()
	a.run(*fps)
}

func (a *app) cleanup() {
	a.screen.Fini()
	a.eng.Close()
	if a.audio {
		speaker.Close()
	}
}

// resize reallocates the pixel buffers to match the terminal, reserving
// the status row. The output is reseeded from the source so blend trails
// restart cleanly instead of smearing stale pixels across the new size.
func (a *app) resize() {
	cols, rows := a.screen.Size()
	w := max(cols, 2)
	h := max((rows-statusRows)*2, 2)
	if w == a.width && h == a.height {
		return
	}
	a.width, a.height = w, h
	a.src = pattern.TestCard(w, h)
	a.out = warp.NewBuffer(w, h)
	a.out.CopyFrom(a.src)
}

func (a *app) run(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- a.screen.PollEvent()
		}
	}()

	a.lastBeat = time.Now()
	manualBeat := false

	for {
		select {
		case ev := <-events:
			switch next := a.handleEvent(ev); next {
			case actQuit:
				return
			case actBeat:
				manualBeat = true
			}

		case <-ticker.C:
			isBeat := manualBeat
			manualBeat = false
			if now := time.Now(); now.Sub(a.lastBeat) >= a.beatGap {
				a.lastBeat = now
				isBeat = true
			}
			if isBeat && a.audio {
				playKick()
			}
			a.render(isBeat)
			a.draw(isBeat)
		}
	}
}

type action int

const (
	actNone action = iota
	actQuit
	actBeat
)

func (a *app) handleEvent(ev tcell.Event) action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return actQuit
		}
		if ev.Key() != tcell.KeyRune {
			return actNone
		}
		switch ev.Rune() {
		case 'q':
			return actQuit
		case 'n':
			a.cfg.Effect = warp.Effect((int(a.cfg.Effect) + 1) % warp.NumBuiltins)
		case 'p':
			a.cfg.Effect = warp.Effect((int(a.cfg.Effect) + warp.NumBuiltins - 1) % warp.NumBuiltins)
		case 'b':
			a.cfg.Blend = !a.cfg.Blend
		case 's':
			a.cfg.Subpixel = !a.cfg.Subpixel
		case 'w':
			a.cfg.Wrap = !a.cfg.Wrap
		case 'm':
			a.cfg.SourceMap = (a.cfg.SourceMap + 1) % 4
		case ' ':
			return actBeat
		case 'a':
			if a.audio {
				a.audio = false
			} else {
				a.audio = initAudio()
			}
		}
	}
	return actNone
}

func (a *app) render(isBeat bool) {
	in := a.src
	if a.plasma {
		in = pattern.Plasma(a.width, a.height, time.Since(a.start).Seconds())
	}
	// Builtin effects never fail; an error here would mean a broken
	// custom script, which this UI cannot produce.
	_ = a.eng.Render(a.cfg, warp.Frame{IsBeat: isBeat, Input: in, Output: a.out})
}

// draw paints the output buffer as half blocks: the cell's foreground is
// the upper pixel, its background the lower one.
func (a *app) draw(isBeat bool) {
	for cy := 0; cy < a.height/2; cy++ {
		for x := 0; x < a.width; x++ {
			top := a.out.RGBAAt(x, cy*2)
			bot := a.out.RGBAAt(x, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			a.screen.SetContent(x, cy, '▀', nil, style)
		}
	}
	a.drawStatus(isBeat)
	a.screen.Show()
}

func (a *app) drawStatus(isBeat bool) {
	beat := " "
	if isBeat {
		beat = "●"
	}
	text := fmt.Sprintf(" %s %d/%d %q | blend:%s sub:%s wrap:%s | map:%s | %s",
		beat, int(a.cfg.Effect), warp.NumBuiltins-1, a.cfg.Effect.String(),
		onOff(a.cfg.Blend), onOff(a.cfg.Subpixel), onOff(a.cfg.Wrap),
		a.cfg.SourceMap, onOff(a.audio)+" audio")

	cols, rows := a.screen.Size()
	style := tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorDarkSlateGray)
	runes := []rune(text)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		a.screen.SetContent(x, rows-1, r, nil, style)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
