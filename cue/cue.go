// Package cue plays short audio alerts for transport faults
package cue

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	stuckToneHz  = 660
	stuckToneDur = 80 * time.Millisecond
	breakDur     = 250 * time.Millisecond
)

// Player emits a tone when the count of stuck bridges rises and a crack
// when the host breaks a link
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastStuck   int

	// play receives every streamer; nil while the speaker is closed
	play func(beep.Streamer)
}

// NewPlayer creates a silent player; Initialize opens the speaker
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize sets up the audio system
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.play = func(s beep.Streamer) { p.mixer.Add(s) }
	p.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.mixer.Clear()
	speaker.Close()
	p.play = nil
	p.initialized = false
}

// Observe records the frame's stuck-bridge count and beeps when it rose
func (p *Player) Observe(stuck int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	rose := stuck > p.lastStuck
	p.lastStuck = stuck
	if !rose || p.play == nil {
		return false
	}
	tone, err := generators.SineTone(sampleRate, stuckToneHz)
	if err != nil {
		return false
	}
	p.play(beep.Take(sampleRate.N(stuckToneDur), &envelope{src: tone, gain: 0.2, decay: 30}))
	return true
}

// Break plays the link-break crack
func (p *Player) Break() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.play == nil {
		return false
	}
	p.play(beep.Take(sampleRate.N(breakDur), NewCrackGenerator(sampleRate, time.Now().UnixNano())))
	return true
}

// envelope applies gain with exponential decay to a mono source
type envelope struct {
	src   beep.Streamer
	gain  float64
	decay float64 // per second
	pos   int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(e.pos) / float64(sampleRate)
		g := e.gain * math.Exp(-t*e.decay)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// CrackGenerator generates a short noise burst over a low rumble
type CrackGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrackGenerator creates a crack generator
func NewCrackGenerator(sr beep.SampleRate, seed int64) *CrackGenerator {
	return &CrackGenerator{sr: sr, seed: seed & 0x7fffffff}
}

func (g *CrackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 12)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.3 * math.Sin(2*math.Pi*70*t)

		s := env * (0.25*noise + rumble)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *CrackGenerator) Err() error { return nil }
