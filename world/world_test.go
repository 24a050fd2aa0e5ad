package world

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/reef/asset"
	"github.com/lixenwraith/reef/core"
)

// stub is a minimal Entity for exercising the grid
type stub struct {
	id    core.EntityID
	kind  core.Kind
	pos   core.Point
	frame int
}

func (s *stub) ID() core.EntityID        { return s.id }
func (s *stub) Name() string             { return s.kind.String() }
func (s *stub) Kind() core.Kind          { return s.kind }
func (s *stub) Position() core.Point     { return s.pos }
func (s *stub) SetPosition(p core.Point) { s.pos = p }
func (s *stub) Frames() []asset.Frame    { return []asset.Frame{{Glyph: 'a'}, {Glyph: 'b'}} }
func (s *stub) FrameIndex() int          { return s.frame }

func newTestWorld(cols, rows int) *World {
	return New(cols, rows, NewBackground("default", []asset.Frame{{Glyph: '.'}}))
}

func place(t *testing.T, w *World, kind core.Kind, x, y int) *stub {
	t.Helper()
	s := &stub{id: w.NextID(), kind: kind, pos: core.Point{X: x, Y: y}}
	if !w.TryAdd(s) {
		t.Fatalf("TryAdd %s at (%d,%d) failed", kind, x, y)
	}
	return s
}

func TestTryAdd(t *testing.T) {
	w := newTestWorld(10, 10)
	a := place(t, w, core.KindFish, 2, 2)

	tests := []struct {
		name string
		pos  core.Point
	}{
		{"occupied", core.Point{X: 2, Y: 2}},
		{"negative", core.Point{X: -1, Y: 0}},
		{"past right edge", core.Point{X: 10, Y: 0}},
		{"past bottom edge", core.Point{X: 0, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stub{id: w.NextID(), kind: core.KindCrab, pos: tt.pos}
			if w.TryAdd(s) {
				t.Errorf("TryAdd at %v succeeded", tt.pos)
			}
		})
	}

	if occ, ok := w.Occupant(core.Point{X: 2, Y: 2}); !ok || occ != a {
		t.Error("original occupant displaced by rejected add")
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d, want 1", w.Len())
	}
	if w.TryAdd(a) {
		t.Error("adding a live entity twice succeeded")
	}
}

func TestMoveEvictsOccupant(t *testing.T) {
	w := newTestWorld(5, 5)
	mover := place(t, w, core.KindOctoNotFull, 0, 0)
	victim := place(t, w, core.KindFish, 1, 0)

	evicted, ok := w.Move(mover, core.Point{X: 1, Y: 0})
	if !ok || evicted != victim {
		t.Fatalf("Move evicted %v, want victim", evicted)
	}
	if w.IsLive(victim) {
		t.Error("evicted entity still live")
	}
	if victim.Position() != core.Offgrid {
		t.Errorf("evicted position = %v, want Offgrid", victim.Position())
	}
	if occ, _ := w.Occupant(core.Point{X: 1, Y: 0}); occ != mover {
		t.Error("mover does not occupy destination")
	}
	if w.IsOccupied(core.Point{X: 0, Y: 0}) {
		t.Error("origin still occupied")
	}
	if mover.Position() != (core.Point{X: 1, Y: 0}) {
		t.Errorf("mover position = %v", mover.Position())
	}
}

func TestMoveNoOps(t *testing.T) {
	w := newTestWorld(3, 3)
	e := place(t, w, core.KindFish, 1, 1)

	if _, ok := w.Move(e, core.Point{X: 3, Y: 1}); ok {
		t.Error("out-of-bounds move reported eviction")
	}
	if _, ok := w.Move(e, core.Point{X: 1, Y: 1}); ok {
		t.Error("unchanged move reported eviction")
	}
	if e.Position() != (core.Point{X: 1, Y: 1}) {
		t.Errorf("position changed to %v", e.Position())
	}

	w.Remove(e)
	w.Move(e, core.Point{X: 0, Y: 0})
	if w.IsOccupied(core.Point{X: 0, Y: 0}) {
		t.Error("removed entity was moved back onto the grid")
	}
}

func TestRemove(t *testing.T) {
	w := newTestWorld(4, 4)
	a := place(t, w, core.KindFish, 0, 0)
	b := place(t, w, core.KindFish, 1, 0)
	c := place(t, w, core.KindFish, 2, 0)

	w.Remove(b)
	w.Remove(b) // already gone

	if w.IsLive(b) || w.IsOccupied(core.Point{X: 1, Y: 0}) {
		t.Error("removed entity still present")
	}
	if b.Position() != core.Offgrid {
		t.Errorf("removed position = %v, want Offgrid", b.Position())
	}
	got := w.Entities()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("live set order = %v, want [a c]", got)
	}
	if e, ok := w.Entity(c.ID()); !ok || e != c {
		t.Error("index not rebuilt after removal")
	}
}

func TestFindNearest(t *testing.T) {
	w := newTestWorld(10, 10)
	origin := core.Point{X: 5, Y: 5}

	if _, ok := w.FindNearest(origin, core.KindFish); ok {
		t.Error("found a fish in an empty world")
	}

	place(t, w, core.KindFish, 0, 0)
	tieFirst := place(t, w, core.KindFish, 5, 7)
	place(t, w, core.KindFish, 7, 5) // same distance, later in scan order
	place(t, w, core.KindCrab, 5, 6) // closer, wrong kind

	got, ok := w.FindNearest(origin, core.KindFish)
	if !ok || got != tieFirst {
		t.Errorf("FindNearest = %v, want first tied fish %v", got, tieFirst)
	}

	// Exact kind only
	if _, ok := w.FindNearest(origin, core.KindOctoFull); ok {
		t.Error("found OctoFull where none exists")
	}
}

func TestFindOpenAroundScanOrder(t *testing.T) {
	w := newTestWorld(10, 10)
	center := core.Point{X: 5, Y: 5}

	p, ok := w.FindOpenAround(center)
	if !ok || p != (core.Point{X: 4, Y: 4}) {
		t.Fatalf("FindOpenAround = %v,%v, want (4,4)", p, ok)
	}

	place(t, w, core.KindObstacle, 4, 4)
	place(t, w, core.KindObstacle, 5, 4)
	p, _ = w.FindOpenAround(center)
	if p != (core.Point{X: 6, Y: 4}) {
		t.Errorf("FindOpenAround = %v, want (6,4)", p)
	}

	// Corner: out-of-bounds candidates are skipped
	p, _ = w.FindOpenAround(core.Point{X: 0, Y: 0})
	if p != (core.Point{X: 0, Y: 0}) {
		t.Errorf("corner FindOpenAround = %v, want (0,0)", p)
	}
}

func TestFindOpenAroundFull(t *testing.T) {
	w := newTestWorld(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			place(t, w, core.KindObstacle, x, y)
		}
	}
	if p, ok := w.FindOpenAround(core.Point{X: 1, Y: 1}); ok {
		t.Errorf("found open cell %v in a full world", p)
	}
}

func TestWithReach(t *testing.T) {
	w := New(10, 10, nil, WithReach(2))
	for y := 3; y <= 7; y++ {
		for x := 3; x <= 7; x++ {
			if x == 7 && y == 7 {
				continue
			}
			place(t, w, core.KindObstacle, x, y)
		}
	}
	if p, ok := w.FindOpenAround(core.Point{X: 5, Y: 5}); !ok || p != (core.Point{X: 7, Y: 7}) {
		t.Errorf("FindOpenAround reach 2 = %v,%v, want (7,7)", p, ok)
	}
}

func TestBackground(t *testing.T) {
	w := newTestWorld(4, 4)
	water := NewBackground("water", []asset.Frame{{Glyph: '~'}})

	w.SetBackground(core.Point{X: 1, Y: 1}, water)
	w.SetBackground(core.Point{X: 9, Y: 9}, water) // ignored

	bg, ok := w.Background(core.Point{X: 1, Y: 1})
	if !ok || bg != water {
		t.Errorf("Background(1,1) = %v", bg)
	}
	bg, _ = w.Background(core.Point{X: 0, Y: 0})
	if bg.Name != "default" {
		t.Errorf("default background = %q", bg.Name)
	}
	if _, ok := w.Background(core.Point{X: -1, Y: 0}); ok {
		t.Error("out-of-bounds background reported present")
	}
	if got := w.CurrentFrame(water).Glyph; got != '~' {
		t.Errorf("CurrentFrame(water) = %q", got)
	}
}

func TestCurrentFrame(t *testing.T) {
	w := newTestWorld(4, 4)
	e := place(t, w, core.KindFish, 0, 0)
	e.frame = 3 // wraps onto frame 1

	if got := w.CurrentFrame(e).Glyph; got != 'b' {
		t.Errorf("CurrentFrame = %q, want 'b'", got)
	}

	assertInvariantPanic(t, func() { w.CurrentFrame("not drawable") })

	w.Remove(e)
	assertInvariantPanic(t, func() { w.CurrentFrame(e) })
}

func assertInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, core.ErrInvariant) {
			t.Errorf("expected invariant panic, got %v", r)
		}
	}()
	fn()
}

// Random add/move/remove sequences never put two entities in one cell
func TestOccupancyInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := newTestWorld(6, 6)
	var all []*stub

	for step := 0; step < 5000; step++ {
		p := core.Point{X: rng.Intn(8) - 1, Y: rng.Intn(8) - 1}
		switch rng.Intn(3) {
		case 0:
			s := &stub{id: w.NextID(), kind: core.KindFish, pos: p}
			if w.TryAdd(s) {
				all = append(all, s)
			}
		case 1:
			if len(all) > 0 {
				w.Move(all[rng.Intn(len(all))], p)
			}
		case 2:
			if len(all) > 0 {
				w.Remove(all[rng.Intn(len(all))])
			}
		}
		checkOccupancy(t, w)
	}
}

func checkOccupancy(t *testing.T, w *World) {
	t.Helper()
	seen := make(map[core.Point]core.EntityID)
	for _, e := range w.Entities() {
		p := e.Position()
		if other, dup := seen[p]; dup {
			t.Fatalf("entities %d and %d share %v", other, e.ID(), p)
		}
		seen[p] = e.ID()
		if occ, ok := w.Occupant(p); !ok || occ != e {
			t.Fatalf("entity %d at %v not in occupancy grid", e.ID(), p)
		}
	}
	occupied := 0
	for y := 0; y < w.Rows(); y++ {
		for x := 0; x < w.Cols(); x++ {
			if w.IsOccupied(core.Point{X: x, Y: y}) {
				occupied++
			}
		}
	}
	if occupied != w.Len() {
		t.Fatalf("occupied cells = %d, live entities = %d", occupied, w.Len())
	}
}

func TestCollected(t *testing.T) {
	w := newTestWorld(1, 1)
	w.AddCollected(2)
	if got := w.AddCollected(1); got != 3 || w.Collected() != 3 {
		t.Errorf("Collected = %d, want 3", w.Collected())
	}
}
