// Package world owns the grid: occupancy, backgrounds, the live-entity set and
// the spatial queries entities use for targeting and movement.
package world

import (
	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
)

// DefaultReach is the neighbourhood radius searched by FindOpenAround
const DefaultReach = 1

// Entity is the view of an occupant the world needs
type Entity interface {
	ID() core.EntityID
	Name() string
	Kind() core.Kind
	Position() core.Point
	SetPosition(core.Point)
	Frames() []asset.Frame
	FrameIndex() int
}

// World is a bounded grid holding at most one entity per cell
// Not safe for concurrent use: the simulation loop owns it
type World struct {
	cols, rows int

	// Dense row-major grids: index = y*cols + x
	occupancy  []Entity
	background []*Background

	// Live set in insertion order; scan order of FindNearest
	entities []Entity
	index    map[core.EntityID]int

	nextID    core.EntityID
	reach     int
	collected int
}

// Option configures a World
type Option func(*World)

// WithReach sets the FindOpenAround radius
func WithReach(reach int) Option {
	return func(w *World) {
		if reach > 0 {
			w.reach = reach
		}
	}
}

// New creates a cols x rows world with every background cell set to bg
func New(cols, rows int, bg *Background, opts ...Option) *World {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	w := &World{
		cols:       cols,
		rows:       rows,
		occupancy:  make([]Entity, cols*rows),
		background: make([]*Background, cols*rows),
		index:      make(map[core.EntityID]int),
		reach:      DefaultReach,
	}
	for i := range w.background {
		w.background[i] = bg
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Cols returns the grid width
func (w *World) Cols() int { return w.cols }

// Rows returns the grid height
func (w *World) Rows() int { return w.rows }

// NextID allocates an entity id, unique for the lifetime of the world
func (w *World) NextID() core.EntityID {
	w.nextID++
	return w.nextID
}

// WithinBounds reports whether p is a grid cell
func (w *World) WithinBounds(p core.Point) bool {
	return p.X >= 0 && p.X < w.cols && p.Y >= 0 && p.Y < w.rows
}

// IsOccupied reports whether p is in bounds and holds an entity
func (w *World) IsOccupied(p core.Point) bool {
	return w.WithinBounds(p) && w.occupancy[w.cell(p)] != nil
}

// Occupant returns the entity at p
func (w *World) Occupant(p core.Point) (Entity, bool) {
	if !w.IsOccupied(p) {
		return nil, false
	}
	return w.occupancy[w.cell(p)], true
}

// Entity returns the live entity with id
func (w *World) Entity(id core.EntityID) (Entity, bool) {
	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.entities[i], true
}

// IsLive reports whether e is currently in the live set
func (w *World) IsLive(e Entity) bool {
	live, ok := w.Entity(e.ID())
	return ok && live == e
}

// Entities returns a snapshot of the live set in insertion order
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Len returns the number of live entities
func (w *World) Len() int {
	return len(w.entities)
}

// TryAdd adds e at its stored position if that cell is in bounds and empty
// Returns false, without side effects, otherwise
func (w *World) TryAdd(e Entity) bool {
	p := e.Position()
	if !w.WithinBounds(p) || w.IsOccupied(p) {
		return false
	}
	if _, live := w.index[e.ID()]; live {
		return false
	}

	w.occupancy[w.cell(p)] = e
	w.index[e.ID()] = len(w.entities)
	w.entities = append(w.entities, e)
	return true
}

// Move relocates e to p, evicting whatever occupies p
// No-op if p is out of bounds, unchanged, or e is not live. Returns the evicted entity.
// Callers cancel the occupant's events before moving onto it
func (w *World) Move(e Entity, p core.Point) (Entity, bool) {
	old := e.Position()
	if !w.WithinBounds(p) || p == old || !w.IsLive(e) {
		return nil, false
	}

	w.occupancy[w.cell(old)] = nil
	evicted, hadOccupant := w.Occupant(p)
	if hadOccupant {
		w.Remove(evicted)
	}
	w.occupancy[w.cell(p)] = e
	e.SetPosition(p)
	return evicted, hadOccupant
}

// Remove vacates e's cell, drops it from the live set and parks it at core.Offgrid
// Callers cancel e's events first
func (w *World) Remove(e Entity) {
	i, ok := w.index[e.ID()]
	if !ok || w.entities[i] != e {
		return
	}

	p := e.Position()
	if w.WithinBounds(p) && w.occupancy[w.cell(p)] == e {
		w.occupancy[w.cell(p)] = nil
	}

	copy(w.entities[i:], w.entities[i+1:])
	w.entities[len(w.entities)-1] = nil
	w.entities = w.entities[:len(w.entities)-1]
	delete(w.index, e.ID())
	for j := i; j < len(w.entities); j++ {
		w.index[w.entities[j].ID()] = j
	}

	e.SetPosition(core.Offgrid)
}

// FindNearest returns the live entity of exactly kind closest to p
// Squared distance; the first one met in scan order wins ties
func (w *World) FindNearest(p core.Point, kind core.Kind) (Entity, bool) {
	var nearest Entity
	best := 0
	for _, e := range w.entities {
		if e.Kind() != kind {
			continue
		}
		d := e.Position().DistanceSquared(p)
		if nearest == nil || d < best {
			nearest, best = e, d
		}
	}
	return nearest, nearest != nil
}

// FindOpenAround returns the first empty in-bounds cell within reach of p
// Scan order: rows top to bottom, columns left to right, p itself included
func (w *World) FindOpenAround(p core.Point) (core.Point, bool) {
	for dy := -w.reach; dy <= w.reach; dy++ {
		for dx := -w.reach; dx <= w.reach; dx++ {
			candidate := core.Point{X: p.X + dx, Y: p.Y + dy}
			if w.WithinBounds(candidate) && !w.IsOccupied(candidate) {
				return candidate, true
			}
		}
	}
	return core.Point{}, false
}

// Background returns the background at p
func (w *World) Background(p core.Point) (*Background, bool) {
	if !w.WithinBounds(p) {
		return nil, false
	}
	return w.background[w.cell(p)], true
}

// SetBackground replaces the background at p, ignoring out-of-bounds cells
func (w *World) SetBackground(p core.Point, bg *Background) {
	if w.WithinBounds(p) {
		w.background[w.cell(p)] = bg
	}
}

// CurrentFrame returns the frame to draw for a *Background or a live Entity
// Anything else is a modeling bug and panics
func (w *World) CurrentFrame(obj any) asset.Frame {
	switch v := obj.(type) {
	case *Background:
		if v != nil {
			return v.Current()
		}
	case Entity:
		if w.IsLive(v) {
			return frameAt(v.Frames(), v.FrameIndex())
		}
		core.Invariantf("current frame requested for %s %q which is not live", v.Kind(), v.Name())
	}
	core.Invariantf("current frame not supported for %T", obj)
	return asset.Frame{}
}

// Collected returns the global collected counter
func (w *World) Collected() int {
	return w.collected
}

// AddCollected increments the collected counter and returns the new total
func (w *World) AddCollected(n int) int {
	w.collected += n
	return w.collected
}

// CountByKind returns the number of live entities per kind
func (w *World) CountByKind() map[core.Kind]int {
	counts := make(map[core.Kind]int)
	for _, e := range w.entities {
		counts[e.Kind()]++
	}
	return counts
}

func (w *World) cell(p core.Point) int {
	return p.Y*w.cols + p.X
}
