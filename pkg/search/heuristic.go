package search

import (
	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
)

// Heuristic estimates the number of moves left before the payload reaches the
// target. Estimates must never exceed the true remaining cost, and must return
// [Infinity] only for states from which the goal is unreachable.
type Heuristic interface {
	Estimate(s grid.State) int
}

// HeuristicFunc adapts a function to [Heuristic].
type HeuristicFunc func(grid.State) int

// Estimate calls f(s).
func (f HeuristicFunc) Estimate(s grid.State) int { return f(s) }

// Heuristic names accepted by [NewHeuristic].
const (
	HeuristicManhattan = "manhattan"
	HeuristicMoveCost  = "move-cost"
)

// HeuristicNames lists the accepted heuristic names, default first.
var HeuristicNames = []string{HeuristicMoveCost, HeuristicManhattan}

// NewHeuristic builds the named heuristic for searches starting at initial.
// An empty name selects [HeuristicMoveCost].
func NewHeuristic(name string, g *grid.Grid, initial grid.State) (Heuristic, error) {
	switch name {
	case "", HeuristicMoveCost:
		return NewMoveCost(g, initial), nil
	case HeuristicManhattan:
		return Manhattan{Grid: g}, nil
	default:
		return nil, gserrors.New(gserrors.ErrCodeInvalidInput, "unknown heuristic %q (want one of %v)", name, HeuristicNames)
	}
}

// Manhattan is the grid distance between the payload and the target. The
// payload advances at most one node per move, so this never overestimates.
type Manhattan struct {
	Grid *grid.Grid
}

// Estimate implements [Heuristic].
func (m Manhattan) Estimate(s grid.State) int {
	return m.Grid.Distance(s.Payload(), m.Grid.Target())
}

// MoveCost bounds the remaining moves using the cost of walking a hole
// around the payload.
//
// In the single-hole regime (see [grid.Holes]) every move shifts the only
// empty node by one step, and the payload can only step into it. Moving the
// payload d steps along a straight line then costs at least 5 moves per step
// except the last, plus the moves needed to bring the hole next to the payload
// in the first place. When the payload is not in line with the target it can
// alternate directions, which lowers the bound to 3d - 2.
//
// Outside that regime MoveCost falls back to Manhattan distance. In every
// regime it reports [Infinity] when the payload can no longer fit in the
// target or has no neighbour large enough to receive it, since merges only
// ever grow the payload's data.
type MoveCost struct {
	g         *grid.Grid
	single    bool
	targetCap int
}

// NewMoveCost analyses the hole layout of initial once. The estimate is only
// valid for states reachable from initial.
func NewMoveCost(g *grid.Grid, initial grid.State) *MoveCost {
	return &MoveCost{
		g:         g,
		single:    g.Holes(initial).Single(),
		targetCap: int(g.Node(g.Target()).Capacity),
	}
}

// SingleHole reports whether the tighter single-hole bound is in use.
func (m *MoveCost) SingleHole() bool { return m.single }

// Estimate implements [Heuristic].
func (m *MoveCost) Estimate(s grid.State) int {
	g := m.g
	p, t := s.Payload(), g.Target()
	if p == t {
		return 0
	}
	load := int(s.Usage(p))
	if load > m.targetCap {
		return Infinity
	}

	hole := -1
	if m.single {
		hole = s.Hole()
	}
	holeDist := Infinity
	receivable := false
	for _, d := range grid.Directions {
		n, ok := g.Neighbor(p, d)
		if !ok || int(g.Node(n).Capacity) < load {
			continue
		}
		receivable = true
		if hole >= 0 {
			holeDist = min(holeDist, g.Distance(hole, n))
		}
	}
	if !receivable {
		return Infinity
	}

	dist := g.Distance(p, t)
	if hole < 0 {
		return dist
	}
	pn, tn := g.Node(p), g.Node(t)
	if pn.X == tn.X || pn.Y == tn.Y {
		return holeDist + 5*(dist-1) + 1
	}
	return holeDist + 3*dist - 2
}
