package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridshift/pkg/grid"
)

func TestDistancesAbsentIsInfinity(t *testing.T) {
	a := grid.NewState([]grid.Units{0, 5}, 1)
	b := a.ApplyMove(1, 0)
	d := distances{a: 0}

	if got := d.get(a); got != 0 {
		t.Errorf("get(a) = %d, want 0", got)
	}
	if got := d.get(b); got != Infinity {
		t.Errorf("get(b) = %d, want Infinity", got)
	}
	if _, ok := d[b]; ok {
		t.Error("get inserted an entry")
	}

	if !d.improve(b, 3) {
		t.Error("improve from Infinity should succeed")
	}
	if d.improve(b, 3) || d.improve(b, 4) {
		t.Error("improve should require a strictly shorter distance")
	}
	if !d.improve(b, 2) || d.get(b) != 2 {
		t.Errorf("improve(b, 2) left %d", d.get(b))
	}
}

func TestPathReconstruction(t *testing.T) {
	s0 := grid.NewState([]grid.Units{0, 5, 3}, 2)
	s1 := s0.ApplyMove(1, 0)
	s2 := s1.ApplyMove(2, 1)

	pred := map[grid.State]step{
		s0: {prev: s0},
		s1: {prev: s0, move: grid.Move{Src: 1, Dst: 0}},
		s2: {prev: s1, move: grid.Move{Src: 2, Dst: 1}},
	}

	states, moves := path(pred, s2)
	if len(states) != 3 || states[0] != s0 || states[1] != s1 || states[2] != s2 {
		t.Errorf("states = %v, want [%s %s %s]", states, s0, s1, s2)
	}
	want := []grid.Move{{Src: 1, Dst: 0}, {Src: 2, Dst: 1}}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}

	states, moves = path(pred, s0)
	if len(states) != 1 || len(moves) != 0 {
		t.Errorf("root path = %v / %v, want just the root", states, moves)
	}
}

func TestStatusText(t *testing.T) {
	var s Status
	if err := s.UnmarshalText([]byte("budget_exceeded")); err != nil || s != StatusBudgetExceeded {
		t.Errorf("UnmarshalText() = %s, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("maybe")); err == nil {
		t.Error("unknown status should fail")
	}
	if got := Status(7).String(); got != "status(7)" {
		t.Errorf("String() = %q", got)
	}
}
