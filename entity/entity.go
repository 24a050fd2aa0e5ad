// Package entity implements the variant behaviors: what each kind of entity
// does when one of its scheduled events fires.
package entity

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/engine"
	"github.com/lixenwraith/reef/world"
)

// Actor is an entity driven by scheduled events
type Actor interface {
	world.Entity
	// ScheduleActions seeds the entity's recurring events, once
	ScheduleActions(env *Env)
	// ExecuteActivity handles an Activity event; it re-arms itself or
	// hands over to a successor that seeds its own events, never both
	ExecuteActivity(env *Env)
}

// Animated entities advance a frame index on Animation events
type Animated interface {
	world.Entity
	NextFrame()
	AnimationPeriod() time.Duration
}

// Periodic entities carry a recurring Activity period
type Periodic interface {
	ActionPeriod() time.Duration
}

// Env is everything a handler may touch while an event fires
type Env struct {
	World     *world.World
	Store     *asset.Store
	Scheduler *engine.Scheduler
	Rand      *rand.Rand
	Log       logrus.FieldLogger
	Observer  Observer
}

// HandleEvent implements engine.Handler by dispatching to the owner
func (env *Env) HandleEvent(ev engine.Event) {
	Dispatch(env, ev)
}

// destroy cancels e's events, then removes it from the world
func (env *Env) destroy(e world.Entity) {
	env.Scheduler.CancelAll(e.ID())
	env.World.Remove(e)
}

// spawn adds a and seeds its events; returns false if its cell was taken
func (env *Env) spawn(a Actor) bool {
	if !env.World.TryAdd(a) {
		return false
	}
	a.ScheduleActions(env)
	env.Observer.Spawned(a)
	return true
}

// replace swaps old for its successor in place
// old is fully detached before the successor is added and seeded
func (env *Env) replace(old world.Entity, successor Actor) bool {
	env.destroy(old)
	if !env.World.TryAdd(successor) {
		return false
	}
	successor.ScheduleActions(env)
	env.Observer.Transformed(old, successor)
	return true
}

// rearm schedules the next Activity of a after its action period
func (env *Env) rearm(a Actor, period time.Duration) {
	env.Scheduler.Schedule(a.ID(), engine.ActivityAction(), period)
}

// Base holds the attributes shared by every variant
type Base struct {
	id     core.EntityID
	name   string
	pos    core.Point
	frames []asset.Frame
	frame  int
}

func newBase(id core.EntityID, name string, pos core.Point, frames []asset.Frame) Base {
	return Base{id: id, name: name, pos: pos, frames: frames}
}

func (b *Base) ID() core.EntityID        { return b.id }
func (b *Base) Name() string             { return b.name }
func (b *Base) Position() core.Point     { return b.pos }
func (b *Base) SetPosition(p core.Point) { b.pos = p }
func (b *Base) Frames() []asset.Frame    { return b.frames }
func (b *Base) FrameIndex() int          { return b.frame }

// NextFrame advances the frame index, wrapping at the end of the sequence
func (b *Base) NextFrame() {
	if len(b.frames) == 0 {
		return
	}
	b.frame = (b.frame + 1) % len(b.frames)
}

// Active adds recurring event periods to Base
// A zero period means no recurring event of that kind
type Active struct {
	Base
	actionPeriod    time.Duration
	animationPeriod time.Duration
}

func newActive(id core.EntityID, name string, pos core.Point, frames []asset.Frame, actionPeriod, animationPeriod time.Duration) Active {
	return Active{
		Base:            newBase(id, name, pos, frames),
		actionPeriod:    actionPeriod,
		animationPeriod: animationPeriod,
	}
}

func (a *Active) ActionPeriod() time.Duration    { return a.actionPeriod }
func (a *Active) AnimationPeriod() time.Duration { return a.animationPeriod }

// scheduleDefault seeds an Activity and an unbounded Animation where periods allow
func (a *Active) scheduleDefault(env *Env) {
	if a.actionPeriod > 0 {
		env.Scheduler.Schedule(a.id, engine.ActivityAction(), a.actionPeriod)
	}
	if a.animationPeriod > 0 {
		env.Scheduler.Schedule(a.id, engine.AnimationAction(0), a.animationPeriod)
	}
}

// randomPeriod draws a whole-millisecond duration in [min, max)
func randomPeriod(r *rand.Rand, min, max time.Duration) time.Duration {
	span := int((max - min) / time.Millisecond)
	if span <= 0 {
		return min
	}
	return min + time.Duration(r.Intn(span))*time.Millisecond
}

func logFields(e world.Entity) logrus.Fields {
	return logrus.Fields{
		"entity": e.Name(),
		"kind":   e.Kind().String(),
		"pos":    e.Position().String(),
	}
}
