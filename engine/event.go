package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/reef/core"
)

// EventKind distinguishes behavior ticks from frame advances
type EventKind uint8

const (
	// EventActivity invokes the owner's activity handler
	EventActivity EventKind = iota
	// EventAnimation advances the owner's frame index
	EventAnimation
)

func (k EventKind) String() string {
	switch k {
	case EventActivity:
		return "Activity"
	case EventAnimation:
		return "Animation"
	default:
		return "Unknown"
	}
}

// Action is the payload carried by a scheduled event
type Action struct {
	Kind EventKind
	// Repeat is the number of animation cycles left, 0 runs unbounded
	// Ignored for activity events
	Repeat int
}

// ActivityAction creates a behavior tick payload
func ActivityAction() Action {
	return Action{Kind: EventActivity}
}

// AnimationAction creates a frame advance payload bounded by repeat cycles
func AnimationAction(repeat int) Action {
	return Action{Kind: EventAnimation, Repeat: repeat}
}

// Event is a pending action owned by an entity
type Event struct {
	Owner core.EntityID
	Action
	Due time.Duration

	seq       uint64
	index     int // heap slot, -1 while buffered or after pop
	cancelled bool
}

// Seq is the insertion sequence used to order events with equal due times
func (e Event) Seq() uint64 {
	return e.seq
}

func (e Event) String() string {
	if e.Kind == EventAnimation {
		return fmt.Sprintf("%s(owner=%d repeat=%d due=%v)", e.Kind, e.Owner, e.Repeat, e.Due)
	}
	return fmt.Sprintf("%s(owner=%d due=%v)", e.Kind, e.Owner, e.Due)
}

// before is the firing order: earliest due first, insertion order on ties
func (e *Event) before(o *Event) bool {
	if e.Due != o.Due {
		return e.Due < o.Due
	}
	return e.seq < o.seq
}

// Handler receives fired events
type Handler interface {
	HandleEvent(ev Event)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ev Event)

// HandleEvent implements Handler
func (f HandlerFunc) HandleEvent(ev Event) {
	f(ev)
}
