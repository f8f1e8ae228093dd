// Package grid models the storage-node grid and its implicit move graph.
//
// # Overview
//
// A [Grid] is a fixed rectangular layout of storage nodes, each with grid
// coordinates and a capacity. A [State] is one snapshot of how much data every
// node holds, plus the index of the node that currently carries the payload,
// the one piece of data whose journey to the target node is being planned.
//
// The move graph is never materialised. Its vertices are states and its edges
// are single moves ("move everything from node A into adjacent node B"). For
// any state, [Grid.Edges] enumerates the legal successors one at a time, so
// memory stays bounded by what the caller keeps, not by the (exponential)
// size of the graph.
//
// # States
//
// States are immutable values. Usages are packed into a string, which makes
// State comparable: it can be used directly as a map key, compared with ==,
// and shared freely between search branches. [State.ApplyMove] returns a new
// state and never touches its receiver.
//
//	g, _ := grid.New([]grid.Node{
//	    {X: 0, Y: 0, Capacity: 10},
//	    {X: 1, Y: 0, Capacity: 10},
//	})
//	s, _ := g.NewState([]grid.Units{0, 5}, 1)
//	next := s.ApplyMove(1, 0) // payload now at index 0
//
// # Legal Moves
//
// A move (src, dst) is legal when the source holds data, src != dst, the
// destination has room for all of it, the nodes are grid neighbours, and, when
// the payload moves, the merged content still fits in the target node. See
// [Grid.Legal].
//
// # Target
//
// The target node is an explicit parameter ([WithTarget]); by default it is the
// node at (0, 0). The payload starts at the node with y = 0 and the largest x
// ([Grid.PayloadSource]).
package grid
