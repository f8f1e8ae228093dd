package grid

import (
	gserrors "github.com/matzehuels/gridshift/pkg/errors"
)

type coord struct{ x, y int }

// Grid is the static node layout of a puzzle.
//
// A Grid is immutable after [New] returns and safe for concurrent use.
type Grid struct {
	nodes  []Node
	index  map[coord]int
	adj    [][numDirections]int // neighbour index per direction, -1 if none
	width  int
	height int
	target int
}

type options struct {
	targetX, targetY int
}

// Option configures a Grid.
type Option func(*options)

// WithTarget sets the coordinates of the node the payload must reach.
// The default target is (0, 0).
func WithTarget(x, y int) Option {
	return func(o *options) {
		o.targetX, o.targetY = x, y
	}
}

// New builds a grid from the given nodes. Node indices are positions in nodes.
//
// New returns an ErrCodeInvalidLayout error if nodes is empty, if any
// coordinate is negative or repeated, or if no node sits at the target
// coordinates.
func New(nodes []Node, opts ...Option) (*Grid, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(nodes) == 0 {
		return nil, gserrors.New(gserrors.ErrCodeInvalidLayout, "grid has no nodes")
	}

	g := &Grid{
		nodes: append([]Node(nil), nodes...),
		index: make(map[coord]int, len(nodes)),
		adj:   make([][numDirections]int, len(nodes)),
	}
	for i, n := range g.nodes {
		if n.X < 0 || n.Y < 0 {
			return nil, gserrors.New(gserrors.ErrCodeInvalidLayout, "negative coordinates at %s", n)
		}
		c := coord{n.X, n.Y}
		if _, dup := g.index[c]; dup {
			return nil, gserrors.New(gserrors.ErrCodeInvalidLayout, "duplicate node %s", n)
		}
		g.index[c] = i
		g.width = max(g.width, n.X+1)
		g.height = max(g.height, n.Y+1)
	}

	target, ok := g.index[coord{o.targetX, o.targetY}]
	if !ok {
		return nil, gserrors.New(gserrors.ErrCodeInvalidLayout, "no node at target (%d, %d)", o.targetX, o.targetY)
	}
	g.target = target

	for i, n := range g.nodes {
		for _, d := range Directions {
			dx, dy := d.Offset()
			if j, ok := g.index[coord{n.X + dx, n.Y + dy}]; ok {
				g.adj[i][d] = j
			} else {
				g.adj[i][d] = -1
			}
		}
	}
	return g, nil
}

// Len returns the number of nodes.
func (g *Grid) Len() int { return len(g.nodes) }

// Node returns node i.
func (g *Grid) Node(i int) Node { return g.nodes[i] }

// Nodes returns a copy of the node layout.
func (g *Grid) Nodes() []Node { return append([]Node(nil), g.nodes...) }

// Width returns one more than the largest x coordinate.
func (g *Grid) Width() int { return g.width }

// Height returns one more than the largest y coordinate.
func (g *Grid) Height() int { return g.height }

// Index returns the index of the node at (x, y).
func (g *Grid) Index(x, y int) (int, bool) {
	i, ok := g.index[coord{x, y}]
	return i, ok
}

// Target returns the index of the node the payload must reach.
func (g *Grid) Target() int { return g.target }

// Neighbor returns the index of i's neighbour in direction d.
func (g *Grid) Neighbor(i int, d Direction) (int, bool) {
	j := g.adj[i][d]
	return j, j >= 0
}

// Adjacent reports whether nodes i and j differ by exactly one unit in
// exactly one coordinate.
func (g *Grid) Adjacent(i, j int) bool {
	return g.Distance(i, j) == 1
}

// Distance returns the Manhattan distance between nodes i and j.
func (g *Grid) Distance(i, j int) int {
	a, b := g.nodes[i], g.nodes[j]
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// PayloadSource returns the index of the node that initially holds the
// payload: the node with y = 0 and the largest x.
func (g *Grid) PayloadSource() (int, bool) {
	best := -1
	for i, n := range g.nodes {
		if n.Y == 0 && (best < 0 || n.X > g.nodes[best].X) {
			best = i
		}
	}
	return best, best >= 0
}

// NewState validates usages against the layout and returns the packed state.
//
// It fails with ErrCodeInvalidInput if the usage count does not match the node
// count, if any usage exceeds its node's capacity, or if the payload index is
// out of range or points at an empty node.
func (g *Grid) NewState(usages []Units, payload int) (State, error) {
	if len(usages) != len(g.nodes) {
		return State{}, gserrors.New(gserrors.ErrCodeInvalidInput,
			"got %d usages for %d nodes", len(usages), len(g.nodes))
	}
	for i, u := range usages {
		if u > g.nodes[i].Capacity {
			return State{}, gserrors.New(gserrors.ErrCodeInvalidInput,
				"%s uses %dT of %dT", g.nodes[i], u, g.nodes[i].Capacity)
		}
	}
	if payload < 0 || payload >= len(g.nodes) {
		return State{}, gserrors.New(gserrors.ErrCodeInvalidInput, "payload index %d out of range", payload)
	}
	if usages[payload] == 0 {
		return State{}, gserrors.New(gserrors.ErrCodeInvalidInput, "payload node %s holds no data", g.nodes[payload])
	}
	return NewState(usages, payload), nil
}

// IsGoal reports whether the payload sits on the target node.
func (g *Grid) IsGoal(s State) bool {
	return s.Payload() == g.target
}
