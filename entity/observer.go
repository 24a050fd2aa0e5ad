package entity

import "github.com/lixenwraith/reef/world"

// Observer is notified of notable state changes as handlers run
// Implementations must not mutate the world or scheduler
type Observer interface {
	Spawned(e world.Entity)
	Consumed(by, target world.Entity)
	Transformed(from, to world.Entity)
	Deposited(octo, atlantis world.Entity)
	Evicted(by, victim world.Entity)
}

// NopObserver ignores every notification
// Embed it to implement only the callbacks of interest
type NopObserver struct{}

func (NopObserver) Spawned(world.Entity)                  {}
func (NopObserver) Consumed(by, target world.Entity)      {}
func (NopObserver) Transformed(from, to world.Entity)     {}
func (NopObserver) Deposited(octo, atlantis world.Entity) {}
func (NopObserver) Evicted(by, victim world.Entity)       {}

// Observers fans notifications out in order
type Observers []Observer

func (o Observers) Spawned(e world.Entity) {
	for _, obs := range o {
		obs.Spawned(e)
	}
}

func (o Observers) Consumed(by, target world.Entity) {
	for _, obs := range o {
		obs.Consumed(by, target)
	}
}

func (o Observers) Transformed(from, to world.Entity) {
	for _, obs := range o {
		obs.Transformed(from, to)
	}
}

func (o Observers) Deposited(octo, atlantis world.Entity) {
	for _, obs := range o {
		obs.Deposited(octo, atlantis)
	}
}

func (o Observers) Evicted(by, victim world.Entity) {
	for _, obs := range o {
		obs.Evicted(by, victim)
	}
}
