package search

import (
	"math"

	"github.com/matzehuels/gridshift/pkg/grid"
)

// Infinity is the distance of an unreached state and the estimate of a state
// from which the goal cannot be reached.
const Infinity = math.MaxInt

// distances records the best known number of moves from the initial state.
// A state that is absent is infinitely far away; lookups go through get so
// that rule lives in one place.
type distances map[grid.State]int

func (d distances) get(s grid.State) int {
	if v, ok := d[s]; ok {
		return v
	}
	return Infinity
}

// improve records g for s if it beats the known distance.
func (d distances) improve(s grid.State, g int) bool {
	if g >= d.get(s) {
		return false
	}
	d[s] = g
	return true
}

// step is a predecessor link. The initial state links to itself.
type step struct {
	prev grid.State
	move grid.Move
}

// path walks predecessor links back from goal and returns the states and moves
// in forward order.
func path(pred map[grid.State]step, goal grid.State) ([]grid.State, []grid.Move) {
	states := []grid.State{goal}
	var moves []grid.Move
	for cur := goal; ; {
		p := pred[cur]
		if p.prev == cur {
			break
		}
		moves = append(moves, p.move)
		states = append(states, p.prev)
		cur = p.prev
	}
	reverse(states)
	reverse(moves)
	return states, moves
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
