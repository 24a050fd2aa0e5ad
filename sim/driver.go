package sim

import (
	"context"
	"time"

	"github.com/lixenwraith/reef/engine"
	"github.com/lixenwraith/reef/status"
)

// DefaultTickInterval is the real time between simulation advances
const DefaultTickInterval = 100 * time.Millisecond

// Driver advances a Simulation from a pausable clock on a fixed tick
// Tick and Run must be called from the goroutine that owns the simulation
type Driver struct {
	sim          *Simulation
	clock        *engine.PausableClock
	tickInterval time.Duration
	tickCount    uint64
}

// NewDriver creates a driver; a non-positive interval uses DefaultTickInterval
func NewDriver(s *Simulation, clock *engine.PausableClock, tickInterval time.Duration) *Driver {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	if clock == nil {
		clock = engine.NewPausableClock(nil)
	}
	return &Driver{
		sim:          s,
		clock:        clock,
		tickInterval: tickInterval,
	}
}

func (d *Driver) TickInterval() time.Duration { return d.tickInterval }
func (d *Driver) TickCount() uint64           { return d.tickCount }
func (d *Driver) Paused() bool                { return d.clock.IsPaused() }

// Tick advances the simulation to the clock's elapsed time
// No-op while paused
func (d *Driver) Tick() int {
	if d.clock.IsPaused() {
		return 0
	}
	d.tickCount++
	return d.sim.AdvanceTo(d.clock.Elapsed())
}

// TogglePause freezes or resumes logical time; returns the new state
func (d *Driver) TogglePause() bool {
	paused := d.clock.Toggle()
	state := "running"
	switch {
	case paused:
		state = "paused"
	case d.sim.GameOver():
		state = "game over"
	}
	d.sim.registry.Strings.Get(status.SimState).Store(state)
	return paused
}

// Run ticks until ctx is done, calling onTick after every advance
func (d *Driver) Run(ctx context.Context, onTick func(fired int)) {
	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fired := d.Tick()
			if onTick != nil {
				onTick(fired)
			}
		}
	}
}
