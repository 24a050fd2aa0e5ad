package entity

import (
	"github.com/lixenwraith/reef/core"
	"github.com/lixenwraith/reef/engine"
)

// Dispatch routes a fired event to its owner's handler
// The owner must be live: cancellation precedes every removal
func Dispatch(env *Env, ev engine.Event) {
	e, ok := env.World.Entity(ev.Owner)
	if !ok {
		core.Invariantf("event %s fired for entity %d which is not live", ev, ev.Owner)
	}

	switch ev.Kind {
	case engine.EventActivity:
		a, ok := e.(Actor)
		if !ok {
			core.Invariantf("activity for %s %q which has no activity handler", e.Kind(), e.Name())
		}
		a.ExecuteActivity(env)
	case engine.EventAnimation:
		an, ok := e.(Animated)
		if !ok {
			core.Invariantf("animation for %s %q which is not animated", e.Kind(), e.Name())
		}
		Animate(env, an, ev.Repeat)
	default:
		core.Invariantf("unknown event kind %d for entity %d", ev.Kind, ev.Owner)
	}
}

// Animate advances the frame and re-arms while cycles remain
// repeat 0 is unbounded; repeat 1 is the last cycle
func Animate(env *Env, e Animated, repeat int) {
	e.NextFrame()
	if repeat == 1 {
		return
	}
	env.Scheduler.Schedule(e.ID(), engine.AnimationAction(max(repeat-1, 0)), e.AnimationPeriod())
}
