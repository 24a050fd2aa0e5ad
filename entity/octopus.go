package entity

import (
	"time"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/engine"
	"github.com/lixenwraith/reef/world"
)

// octopus is the state shared by both octopus variants
type octopus struct {
	Active
	resourceLimit int
}

func newOctopus(id core.EntityID, name string, pos core.Point, frames []asset.Frame, limit int, actionPeriod, animationPeriod time.Duration) octopus {
	return octopus{
		Active:        newActive(id, name, pos, frames, actionPeriod, animationPeriod),
		resourceLimit: max(limit, 1),
	}
}

func (o *octopus) ResourceLimit() int { return o.resourceLimit }

func (o *octopus) ScheduleActions(env *Env) {
	o.scheduleDefault(env)
}

// OctoNotFull hunts the nearest fish until it holds its limit
type OctoNotFull struct {
	octopus
	resourceCount int
}

func NewOctoNotFull(id core.EntityID, name string, pos core.Point, frames []asset.Frame, limit int, actionPeriod, animationPeriod time.Duration) *OctoNotFull {
	return &OctoNotFull{octopus: newOctopus(id, name, pos, frames, limit, actionPeriod, animationPeriod)}
}

func (o *OctoNotFull) Kind() core.Kind    { return core.KindOctoNotFull }
func (o *OctoNotFull) ResourceCount() int { return o.resourceCount }

func (o *OctoNotFull) ExecuteActivity(env *Env) {
	target, ok := env.World.FindNearest(o.pos, core.KindFish)
	if ok && stepToward(env, o, target.Position()) {
		env.destroy(target)
		o.resourceCount++
		env.Observer.Consumed(o, target)
		env.Log.WithFields(logFields(o)).WithField("count", o.resourceCount).Debug("consumed fish")

		if o.resourceCount >= o.resourceLimit {
			full := NewOctoFull(o.id, o.name, o.pos, o.frames, o.resourceLimit, o.actionPeriod, o.animationPeriod)
			env.replace(o, full)
			return
		}
	}
	env.rearm(o, o.actionPeriod)
}

// OctoFull carries its haul to the nearest atlantis
type OctoFull struct {
	octopus
}

func NewOctoFull(id core.EntityID, name string, pos core.Point, frames []asset.Frame, limit int, actionPeriod, animationPeriod time.Duration) *OctoFull {
	return &OctoFull{octopus: newOctopus(id, name, pos, frames, limit, actionPeriod, animationPeriod)}
}

func (o *OctoFull) Kind() core.Kind { return core.KindOctoFull }

func (o *OctoFull) ExecuteActivity(env *Env) {
	target, ok := env.World.FindNearest(o.pos, core.KindAtlantis)
	if ok && stepToward(env, o, target.Position()) {
		deposit(env, target)
		env.Observer.Deposited(o, target)
		env.Log.WithFields(logFields(o)).WithField("atlantis", target.Name()).Debug("deposited")

		notFull := NewOctoNotFull(o.id, o.name, o.pos, o.frames, o.resourceLimit, o.actionPeriod, o.animationPeriod)
		env.replace(o, notFull)
		return
	}
	env.rearm(o, o.actionPeriod)
}

// deposit restarts the target's animation burst
func deposit(env *Env, target world.Entity) {
	env.Scheduler.CancelAll(target.ID())
	if a, ok := target.(Actor); ok {
		a.ScheduleActions(env)
		return
	}
	env.Scheduler.Schedule(target.ID(), engine.AnimationAction(AtlantisAnimationRepeat), AtlantisAnimationPeriod)
}
