package entity

import (
	"time"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
)

const (
	FishLifespanMin = 20000 * time.Millisecond
	FishLifespanMax = 30000 * time.Millisecond

	fishNamePrefix = "fish -- "
)

// SeaGrass spawns a fish into the first open cell around it on each tick
type SeaGrass struct {
	Active
}

func NewSeaGrass(id core.EntityID, name string, pos core.Point, frames []asset.Frame, actionPeriod time.Duration) *SeaGrass {
	return &SeaGrass{Active: newActive(id, name, pos, frames, actionPeriod, 0)}
}

func (s *SeaGrass) Kind() core.Kind { return core.KindSeaGrass }

func (s *SeaGrass) ScheduleActions(env *Env) {
	s.scheduleDefault(env)
}

func (s *SeaGrass) ExecuteActivity(env *Env) {
	if open, ok := env.World.FindOpenAround(s.pos); ok {
		fish := NewFish(
			env.World.NextID(),
			fishNamePrefix+s.name,
			open,
			env.Store.ImageList(asset.KeyFish),
			randomPeriod(env.Rand, FishLifespanMin, FishLifespanMax),
		)
		if env.spawn(fish) {
			env.Log.WithFields(logFields(fish)).Debug("spawned")
		}
	}
	env.rearm(s, s.actionPeriod)
}
