package entity

import (
	"time"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
)

const (
	CrabAnimationMin = 50 * time.Millisecond
	CrabAnimationMax = 150 * time.Millisecond

	// crab period is the fish lifespan divided by this
	crabPeriodDivisor = 4
	crabNameSuffix    = " -- crab"
)

// Fish lives for one action period, then turns into a crab in place
type Fish struct {
	Active
}

func NewFish(id core.EntityID, name string, pos core.Point, frames []asset.Frame, actionPeriod time.Duration) *Fish {
	return &Fish{Active: newActive(id, name, pos, frames, actionPeriod, 0)}
}

func (f *Fish) Kind() core.Kind { return core.KindFish }

func (f *Fish) ScheduleActions(env *Env) {
	f.scheduleDefault(env)
}

// ExecuteActivity replaces the fish with a crab; the fish never re-arms
func (f *Fish) ExecuteActivity(env *Env) {
	crab := NewCrab(
		f.id,
		f.name+crabNameSuffix,
		f.pos,
		env.Store.ImageList(asset.KeyCrab),
		f.actionPeriod/crabPeriodDivisor,
		randomPeriod(env.Rand, CrabAnimationMin, CrabAnimationMax),
	)
	env.replace(f, crab)
}

// Crab is the inert remainder of a fish: it animates and idles
type Crab struct {
	Active
}

func NewCrab(id core.EntityID, name string, pos core.Point, frames []asset.Frame, actionPeriod, animationPeriod time.Duration) *Crab {
	return &Crab{Active: newActive(id, name, pos, frames, actionPeriod, animationPeriod)}
}

func (c *Crab) Kind() core.Kind { return core.KindCrab }

func (c *Crab) ScheduleActions(env *Env) {
	c.scheduleDefault(env)
}

func (c *Crab) ExecuteActivity(env *Env) {
	env.rearm(c, c.actionPeriod)
}
