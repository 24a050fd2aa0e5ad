package engine

import (
	"container/heap"
	"sort"
	"time"

	"github.com/lixenwraith/reef/core"
)

// DefaultTimeScale runs events at their nominal periods
const DefaultTimeScale = 1.0

// Scheduler orders pending events by due time on a logical clock
// Not safe for concurrent use: the simulation loop owns it
type Scheduler struct {
	queue     eventHeap
	owners    map[core.EntityID][]*Event
	timeScale float64
	now       time.Duration
	seq       uint64

	// Events scheduled by handlers while AdvanceTo is popping
	// They join the queue only once the current pass is finished
	advancing bool
	deferred  []*Event
}

// NewScheduler creates a scheduler whose delays are multiplied by timeScale
// Non-positive scales fall back to DefaultTimeScale
func NewScheduler(timeScale float64) *Scheduler {
	if timeScale <= 0 {
		timeScale = DefaultTimeScale
	}
	return &Scheduler{
		owners:    make(map[core.EntityID][]*Event),
		timeScale: timeScale,
	}
}

// TimeScale returns the configured delay multiplier
func (s *Scheduler) TimeScale() float64 {
	return s.timeScale
}

// Now returns the logical clock, the time passed to the last AdvanceTo
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending events
func (s *Scheduler) Len() int {
	n := s.queue.Len()
	for _, ev := range s.deferred {
		if !ev.cancelled {
			n++
		}
	}
	return n
}

// Schedule inserts an event for owner due at Now + delay*timeScale
func (s *Scheduler) Schedule(owner core.EntityID, action Action, delay time.Duration) {
	s.seq++
	ev := &Event{
		Owner:  owner,
		Action: action,
		Due:    s.now + time.Duration(float64(delay)*s.timeScale),
		seq:    s.seq,
		index:  -1,
	}
	s.owners[owner] = append(s.owners[owner], ev)

	if s.advancing {
		s.deferred = append(s.deferred, ev)
		return
	}
	heap.Push(&s.queue, ev)
}

// CancelAll removes every pending event owned by owner, no-op if there are none
// Must be called before the owner leaves the live set
func (s *Scheduler) CancelAll(owner core.EntityID) {
	events, ok := s.owners[owner]
	if !ok {
		return
	}
	delete(s.owners, owner)

	for _, ev := range events {
		ev.cancelled = true
		if ev.index >= 0 {
			heap.Remove(&s.queue, ev.index)
		}
	}
}

// HasPending reports whether owner has any pending event
func (s *Scheduler) HasPending(owner core.EntityID) bool {
	return len(s.owners[owner]) > 0
}

// AdvanceTo moves the clock to t and fires every event due at or before t in order
// Events scheduled by the handler become eligible from the next call. The clock
// never moves backwards. Returns the number of events fired
func (s *Scheduler) AdvanceTo(t time.Duration, h Handler) int {
	if t > s.now {
		s.now = t
	}

	s.advancing = true
	fired := 0
	for s.queue.Len() > 0 && s.queue.peek().Due <= s.now {
		ev := heap.Pop(&s.queue).(*Event)
		s.forget(ev)
		fired++
		h.HandleEvent(*ev)
	}
	s.advancing = false

	for _, ev := range s.deferred {
		if !ev.cancelled {
			heap.Push(&s.queue, ev)
		}
	}
	clear(s.deferred)
	s.deferred = s.deferred[:0]

	return fired
}

// Pending returns a snapshot of pending events in firing order
func (s *Scheduler) Pending() []Event {
	out := make([]Event, 0, s.Len())
	for _, ev := range s.queue.q {
		out = append(out, *ev)
	}
	for _, ev := range s.deferred {
		if !ev.cancelled {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].before(&out[j])
	})
	return out
}

// forget drops a popped event from its owner's index
func (s *Scheduler) forget(ev *Event) {
	events := s.owners[ev.Owner]
	for i, e := range events {
		if e == ev {
			events = append(events[:i], events[i+1:]...)
			break
		}
	}
	if len(events) == 0 {
		delete(s.owners, ev.Owner)
		return
	}
	s.owners[ev.Owner] = events
}
