package entity

import (
	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
)

// MoveResult reports what a collector move did
type MoveResult uint8

const (
	// MoveNone: target out of bounds, or the collector is gone
	MoveNone MoveResult = iota
	MoveMoved
	MoveCollected
	MoveBlocked
)

func (r MoveResult) String() string {
	switch r {
	case MoveNone:
		return "None"
	case MoveMoved:
		return "Moved"
	case MoveCollected:
		return "Collected"
	case MoveBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// Collector is the player: moved by input, never by the scheduler
type Collector struct {
	Base
}

func NewCollector(id core.EntityID, name string, pos core.Point, frames []asset.Frame) *Collector {
	return &Collector{Base: newBase(id, name, pos, frames)}
}

func (c *Collector) Kind() core.Kind { return core.KindCollector }

// Collectable reports whether the collector may consume k
func Collectable(k core.Kind) bool {
	return k == core.KindFish || k == core.KindCrab
}

// Move steps the collector by delta, consuming a resource in the way
// instead of moving onto it
func (c *Collector) Move(env *Env, delta core.Point) MoveResult {
	if !env.World.IsLive(c) {
		return MoveNone
	}
	target := c.pos.Add(delta)
	if !env.World.WithinBounds(target) || target == c.pos {
		return MoveNone
	}

	occupant, ok := env.World.Occupant(target)
	switch {
	case !ok:
		env.World.Move(c, target)
		return MoveMoved
	case Collectable(occupant.Kind()):
		env.destroy(occupant)
		total := env.World.AddCollected(1)
		env.Observer.Consumed(c, occupant)
		env.Log.WithFields(logFields(occupant)).WithField("collected", total).Debug("collected")
		return MoveCollected
	default:
		return MoveBlocked
	}
}
