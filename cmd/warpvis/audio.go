package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// initAudio opens the speaker. Returns false when no audio device is
// available; the visualizer runs fine without one.
func initAudio() bool {
	return speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)) == nil
}

// kickGenerator synthesizes a decaying sine sweep: a minimal kick drum,
// enough to hear where the beats land.
type kickGenerator struct {
	sr  beep.SampleRate
	pos int
}

func (g *kickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch drops fast from 150Hz, amplitude slightly slower.
		freq := 150 * math.Exp(-18*t)
		if freq < 45 {
			freq = 45
		}
		s := 0.6 * math.Exp(-14*t) * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *kickGenerator) Err() error { return nil }

// playKick fires one kick hit. Cheap enough to call on every beat.
func playKick() {
	speaker.Play(beep.Take(sampleRate.N(120*time.Millisecond), &kickGenerator{sr: sampleRate}))
}
