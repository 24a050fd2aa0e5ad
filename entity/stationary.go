package entity

import (
	"time"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/engine"
)

const (
	AtlantisAnimationPeriod = 70 * time.Millisecond
	AtlantisAnimationRepeat = 7

	QuakeActionPeriod    = 1100 * time.Millisecond
	QuakeAnimationPeriod = 100 * time.Millisecond
	QuakeAnimationRepeat = 10
)

// Obstacle is inert rock; it only takes up a cell
type Obstacle struct {
	Base
}

func NewObstacle(id core.EntityID, name string, pos core.Point, frames []asset.Frame) *Obstacle {
	return &Obstacle{Base: newBase(id, name, pos, frames)}
}

func (o *Obstacle) Kind() core.Kind { return core.KindObstacle }

// Atlantis plays a short animation burst each time an octopus deposits
type Atlantis struct {
	Active
}

func NewAtlantis(id core.EntityID, name string, pos core.Point, frames []asset.Frame) *Atlantis {
	return &Atlantis{Active: newActive(id, name, pos, frames, 0, AtlantisAnimationPeriod)}
}

func (a *Atlantis) Kind() core.Kind { return core.KindAtlantis }

func (a *Atlantis) ScheduleActions(env *Env) {
	env.Scheduler.Schedule(a.id, engine.AnimationAction(AtlantisAnimationRepeat), a.animationPeriod)
}

// ExecuteActivity is never seeded for Atlantis
func (a *Atlantis) ExecuteActivity(env *Env) {}

// Quake marks a terraformed tile with a bounded animation
type Quake struct {
	Active
}

func NewQuake(id core.EntityID, pos core.Point, frames []asset.Frame) *Quake {
	return &Quake{Active: newActive(id, "quake", pos, frames, QuakeActionPeriod, QuakeAnimationPeriod)}
}

func (q *Quake) Kind() core.Kind { return core.KindQuake }

// ScheduleActions seeds the animation only; the quake carries an action
// period but no activity behavior, so no activity event is ever queued
func (q *Quake) ScheduleActions(env *Env) {
	env.Scheduler.Schedule(q.id, engine.AnimationAction(QuakeAnimationRepeat), q.animationPeriod)
}

func (q *Quake) ExecuteActivity(env *Env) {}
