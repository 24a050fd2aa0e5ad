package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestPointAdjacent(t *testing.T) {
	origin := Point{X: 5, Y: 5}
	tests := []struct {
		name  string
		other Point
		want  bool
	}{
		{"right", Point{6, 5}, true},
		{"left", Point{4, 5}, true},
		{"up", Point{5, 4}, true},
		{"down", Point{5, 6}, true},
		{"same cell", Point{5, 5}, false},
		{"diagonal", Point{6, 6}, false},
		{"two away", Point{7, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := origin.Adjacent(tt.other); got != tt.want {
				t.Errorf("%v.Adjacent(%v) = %v, want %v", origin, tt.other, got, tt.want)
			}
			if got := tt.other.Adjacent(origin); got != tt.want {
				t.Errorf("adjacency not symmetric for %v and %v", origin, tt.other)
			}
		})
	}
}

func TestPointDistanceSquared(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: 6}
	if got := a.DistanceSquared(b); got != 25 {
		t.Errorf("DistanceSquared = %d, want 25", got)
	}
	if got := a.DistanceSquared(a); got != 0 {
		t.Errorf("DistanceSquared to self = %d, want 0", got)
	}
}

func TestPointNeighbors(t *testing.T) {
	p := Point{X: 2, Y: 2}
	want := [4]Point{{3, 2}, {2, 1}, {2, 3}, {1, 2}}
	if got := p.Neighbors(); got != want {
		t.Errorf("Neighbors() = %v, want %v", got, want)
	}
	for _, n := range p.Neighbors() {
		if !p.Adjacent(n) {
			t.Errorf("neighbor %v not adjacent to %v", n, p)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := KindOctoFull.String(); got != "OctoFull" {
		t.Errorf("KindOctoFull.String() = %q", got)
	}
	if got := Kind(200).String(); got != "Unknown" {
		t.Errorf("Kind(200).String() = %q, want Unknown", got)
	}
	if got := len(Kinds()); got != int(kindCount) {
		t.Errorf("len(Kinds()) = %d, want %d", got, kindCount)
	}
}

func TestInvariantfPanicsWithSentinel(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %v", r)
		}
		if !errors.Is(err, ErrInvariant) {
			t.Errorf("panic error %v does not wrap ErrInvariant", err)
		}
	}()
	Invariantf("entity %d missing", 7)
}
