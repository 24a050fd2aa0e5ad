package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
)

// stub is a minimal world.Entity
type stub struct {
	kind core.Kind
}

func (s stub) ID() core.EntityID      { return 1 }
func (s stub) Name() string           { return s.kind.String() }
func (s stub) Kind() core.Kind        { return s.kind }
func (s stub) Position() core.Point   { return core.Point{} }
func (s stub) SetPosition(core.Point) {}
func (s stub) Frames() []asset.Frame  { return nil }
func (s stub) FrameIndex() int        { return 0 }

// live returns cues that record streams instead of playing them
func live() (*Cues, *[]beep.Streamer) {
	var got []beep.Streamer
	c := NewCues()
	c.sink = func(s beep.Streamer) { got = append(got, s) }
	c.initialized = true
	return c, &got
}

func TestCuesDropWithoutSpeaker(t *testing.T) {
	c := NewCues()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cue panicked without a speaker: %v", r)
		}
	}()

	c.Deposited(stub{core.KindOctoFull}, stub{core.KindAtlantis})
	c.Consumed(stub{core.KindCollector}, stub{core.KindFish})
	c.Close()

	if c.Played(CueChime) != 0 || c.Played(CueBlip) != 0 {
		t.Error("cues played before Initialize")
	}
}

func TestCuesFromNotifications(t *testing.T) {
	tests := []struct {
		name   string
		notify func(c *Cues)
		cue    Cue
		want   int
	}{
		{"deposit chimes", func(c *Cues) { c.Deposited(stub{core.KindOctoFull}, stub{core.KindAtlantis}) }, CueChime, 1},
		{"collector blips", func(c *Cues) { c.Consumed(stub{core.KindCollector}, stub{core.KindFish}) }, CueBlip, 1},
		{"octopus eating is silent", func(c *Cues) { c.Consumed(stub{core.KindOctoNotFull}, stub{core.KindFish}) }, CueBlip, 0},
		{"spawn tick muted by default", func(c *Cues) { c.Spawned(stub{core.KindFish}) }, CueTick, 0},
		{"collector loss chimes", func(c *Cues) { c.Evicted(stub{core.KindOctoNotFull}, stub{core.KindCollector}) }, CueChime, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, got := live()
			tt.notify(c)
			if c.Played(tt.cue) != tt.want || len(*got) != tt.want {
				t.Errorf("played %d (%d streams), want %d", c.Played(tt.cue), len(*got), tt.want)
			}
		})
	}
}

func TestUnmutedTick(t *testing.T) {
	c, got := live()
	c.SetMuted(CueTick, false)
	c.Spawned(stub{core.KindFish})
	if len(*got) != 1 {
		t.Errorf("streams = %d, want 1", len(*got))
	}
}

func TestGeneratorsStayInRange(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		n    int
	}{
		{"chime", beep.Take(sampleRate.N(chimeLength), NewChimeGenerator(sampleRate, chimeLength)), sampleRate.N(chimeLength)},
		{"blip", beep.Take(sampleRate.N(blipLength), NewBlipGenerator(sampleRate, 1320, blipLength)), sampleRate.N(blipLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := tt.s.Stream(buf)
				for _, smp := range buf[:n] {
					if math.Abs(smp[0]) > 1 || math.IsNaN(smp[0]) {
						t.Fatalf("sample %v out of range", smp[0])
					}
				}
				total += n
				if !ok {
					break
				}
			}
			if total != tt.n {
				t.Errorf("streamed %d samples, want %d", total, tt.n)
			}
		})
	}
}

func TestBlipFadesOut(t *testing.T) {
	g := NewBlipGenerator(sampleRate, 1000, 10*time.Millisecond)
	buf := make([][2]float64, sampleRate.N(10*time.Millisecond))
	g.Stream(buf)
	if last := buf[len(buf)-1][0]; math.Abs(last) > 0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
}
