package search

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/gridshift/pkg/grid"
)

// remaining explores every state reachable from start and returns, for each
// state that can still reach a goal, the exact number of moves left. States
// that cannot reach a goal are absent. ok is false if more than limit states
// are reachable.
func remaining(g *grid.Grid, start grid.State, limit int) (map[grid.State]int, []grid.State, bool) {
	index := map[grid.State]int{start: 0}
	states := []grid.State{start}
	parents := map[int][]int{}
	for i := 0; i < len(states); i++ {
		for e := range g.Successors(states[i]) {
			j, seen := index[e.To]
			if !seen {
				if len(states) >= limit {
					return nil, nil, false
				}
				j = len(states)
				index[e.To] = j
				states = append(states, e.To)
			}
			parents[j] = append(parents[j], i)
		}
	}

	dist := make([]int, len(states))
	var queue []int
	for i, s := range states {
		dist[i] = -1
		if g.IsGoal(s) {
			dist[i] = 0
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		for _, i := range parents[j] {
			if dist[i] < 0 {
				dist[i] = dist[j] + 1
				queue = append(queue, i)
			}
		}
	}

	out := make(map[grid.State]int)
	for i, s := range states {
		if dist[i] >= 0 {
			out[s] = dist[i]
		}
	}
	return out, states, true
}

type generator func(r *rand.Rand, n int) (caps, used []grid.Units)

// mixed produces small items that can merge and several holes.
func mixed(r *rand.Rand, n int) (caps, used []grid.Units) {
	caps = make([]grid.Units, n)
	used = make([]grid.Units, n)
	for i := range caps {
		caps[i] = grid.Units(4 + r.IntN(9))
		if r.IntN(4) > 0 {
			used[i] = grid.Units(1 + r.IntN(int(caps[i])))
		}
	}
	return caps, used
}

// oneHole produces items too large to merge and exactly one hole.
func oneHole(r *rand.Rand, n int) (caps, used []grid.Units) {
	caps = make([]grid.Units, n)
	used = make([]grid.Units, n)
	for i := range caps {
		caps[i] = grid.Units(8 + r.IntN(4))
		used[i] = grid.Units(6 + r.IntN(int(caps[i])-5))
	}
	used[r.IntN(n)] = 0
	return caps, used
}

func TestSolveMatchesExhaustiveSearch(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		gen           generator
		wantSingle    bool
	}{
		{"Mixed3x2", 3, 2, mixed, false},
		{"Mixed2x3", 2, 3, mixed, false},
		{"OneHole3x2", 3, 2, oneHole, true},
		{"OneHole4x2", 4, 2, oneHole, true},
	}

	const limit = 100_000
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(uint64(tt.width), uint64(tt.height)))
			n := tt.width * tt.height
			checked, single := 0, 0

			for round := 0; round < 30; round++ {
				caps, used := tt.gen(r, n)
				if used[tt.width-1] == 0 {
					used[tt.width-1] = caps[tt.width-1]
					if tt.wantSingle {
						used[0] = 0 // keep exactly one hole
					}
				}
				g, s := build(t, tt.width, caps, used)

				rem, states, ok := remaining(g, s, limit)
				if !ok {
					continue
				}
				checked++

				mc := NewMoveCost(g, s)
				if mc.SingleHole() {
					single++
				}
				checkAdmissible(t, round, "move-cost", mc, states, rem)
				checkAdmissible(t, round, "manhattan", Manhattan{Grid: g}, states, rem)

				res, err := Solve(context.Background(), g, s)
				if err != nil {
					t.Fatalf("round %d: Solve() error = %v", round, err)
				}
				want, reachable := rem[s]
				switch {
				case !reachable && res.Status != StatusExhausted:
					t.Fatalf("round %d: Status = %s, goal is unreachable", round, res.Status)
				case reachable && (!res.Found() || res.Length != want):
					t.Fatalf("round %d: Solve() = %s in %d moves, shortest is %d", round, res.Status, res.Length, want)
				case reachable:
					checkPlan(t, g, s, res)
				}
			}

			if checked == 0 {
				t.Fatal("no instance was small enough to check")
			}
			if tt.wantSingle && single == 0 {
				t.Error("no instance exercised the single-hole bound")
			}
		})
	}
}

func checkAdmissible(t *testing.T, round int, name string, h Heuristic, states []grid.State, rem map[grid.State]int) {
	t.Helper()
	for _, st := range states {
		want, ok := rem[st]
		if !ok {
			continue
		}
		if got := h.Estimate(st); got > want {
			t.Fatalf("round %d: %s estimate %d exceeds true cost %d for %s", round, name, got, want, st)
		}
	}
}
