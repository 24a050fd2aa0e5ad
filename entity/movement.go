package entity

import (
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/world"
)

// nextPosition is the single 4-neighbor step from pos toward target
// The axis with the larger offset closes first, ties go horizontal
func nextPosition(pos, target core.Point) core.Point {
	dx := target.X - pos.X
	dy := target.Y - pos.Y

	if abs(dx) >= abs(dy) {
		return core.Point{X: pos.X + sign(dx), Y: pos.Y}
	}
	return core.Point{X: pos.X, Y: pos.Y + sign(dy)}
}

// stepToward moves e one cell toward target unless already adjacent
// Whatever sits in the destination is cancelled and evicted
// Returns true when e is adjacent to target
func stepToward(env *Env, e world.Entity, target core.Point) bool {
	pos := e.Position()
	if pos.Adjacent(target) {
		return true
	}

	next := nextPosition(pos, target)
	if occupant, ok := env.World.Occupant(next); ok && occupant.ID() != e.ID() {
		env.Scheduler.CancelAll(occupant.ID())
		env.Observer.Evicted(e, occupant)
		env.Log.WithFields(logFields(occupant)).Debug("evicted")
	}
	env.World.Move(e, next)
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
