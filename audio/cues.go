package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/world"
)

const (
	sampleRate = beep.SampleRate(48000)

	chimeLength = 600 * time.Millisecond
	blipLength  = 80 * time.Millisecond
	tickLength  = 25 * time.Millisecond
)

// Cue names a short sound
type Cue uint8

const (
	CueChime Cue = iota // atlantis triggered by a deposit
	CueBlip             // collector picked up a resource
	CueTick             // something spawned
	cueCount
)

// Cues turns simulation notifications into sounds
// Safe to use before Initialize: every cue is dropped until the speaker is up
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sink        func(beep.Streamer)
	initialized bool
	muted       [cueCount]bool
	played      [cueCount]int
}

// NewCues creates a cue player; spawn ticks start muted
func NewCues() *Cues {
	c := &Cues{mixer: &beep.Mixer{}}
	c.sink = func(s beep.Streamer) { c.mixer.Add(s) }
	c.muted[CueTick] = true
	return c
}

// Initialize opens the speaker
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences everything queued
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// SetMuted toggles a single cue
func (c *Cues) SetMuted(cue Cue, muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted[cue] = muted
}

// Played returns how many times cue was sent to the speaker
func (c *Cues) Played(cue Cue) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played[cue]
}

func (c *Cues) play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted[cue] {
		return
	}

	var s beep.Streamer
	switch cue {
	case CueChime:
		s = beep.Take(sampleRate.N(chimeLength), NewChimeGenerator(sampleRate, chimeLength))
	case CueBlip:
		s = beep.Take(sampleRate.N(blipLength), NewBlipGenerator(sampleRate, 1320, blipLength))
	case CueTick:
		s = beep.Take(sampleRate.N(tickLength), NewBlipGenerator(sampleRate, 2200, tickLength))
	default:
		return
	}
	c.played[cue]++
	c.sink(s)
}

// Observer callbacks

func (c *Cues) Spawned(world.Entity) { c.play(CueTick) }

func (c *Cues) Consumed(by, _ world.Entity) {
	if by.Kind() == core.KindCollector {
		c.play(CueBlip)
	}
}

func (c *Cues) Transformed(_, _ world.Entity) {}

func (c *Cues) Deposited(_, _ world.Entity) { c.play(CueChime) }

func (c *Cues) Evicted(_, victim world.Entity) {
	// losing the collector ends the run
	if victim.Kind() == core.KindCollector {
		c.play(CueChime)
	}
}

// ChimeGenerator plays a rising three-note arpeggio with a bell decay
type ChimeGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewChimeGenerator creates a chime lasting length
func NewChimeGenerator(sr beep.SampleRate, length time.Duration) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, samples: max(sr.N(length), 1)}
}

var chimeNotes = [...]float64{523.25, 659.25, 783.99} // C5 E5 G5

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	noteLen := max(g.samples/len(chimeNotes), 1)
	for i := range samples {
		note := min(g.pos/noteLen, len(chimeNotes)-1)
		t := float64(g.pos%noteLen) / float64(g.sr)
		env := math.Exp(-6 * float64(g.pos%noteLen) / float64(noteLen))

		freq := chimeNotes[note]
		sample := 0.2 * env * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// BlipGenerator plays a short sine blip with a linear fade
type BlipGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// NewBlipGenerator creates a blip at freq lasting length
func NewBlipGenerator(sr beep.SampleRate, freq float64, length time.Duration) *BlipGenerator {
	return &BlipGenerator{sr: sr, freq: freq, samples: max(sr.N(length), 1)}
}

func (g *BlipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Max(0, 1-float64(g.pos)/float64(g.samples))
		sample := 0.25 * env * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BlipGenerator) Err() error {
	return nil
}
