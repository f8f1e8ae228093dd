package grid

import "iter"

// Legal reports whether moving all of src's data into dst is a legal move
// from state s:
//
//  1. src holds data.
//  2. src and dst are different nodes.
//  3. dst has room for all of src's data.
//  4. src and dst are grid neighbours.
//  5. If src holds the payload, the merged data still fits in the target node.
//
// Out-of-range indices are never legal.
func (g *Grid) Legal(s State, src, dst int) bool {
	n := len(g.nodes)
	if src < 0 || src >= n || dst < 0 || dst >= n || s.Len() != n {
		return false
	}
	moving := int(s.Usage(src))
	if moving == 0 || src == dst {
		return false
	}
	if moving > int(g.nodes[dst].Capacity)-int(s.Usage(dst)) {
		return false
	}
	if !g.Adjacent(src, dst) {
		return false
	}
	if src == s.Payload() && moving+int(s.Usage(dst)) > int(g.nodes[g.target].Capacity) {
		return false
	}
	return true
}

// EdgeIterator enumerates the legal moves out of one state, one at a time.
//
// Moves are produced in node index order, and for each source node in the
// direction order North, South, East, West. An iterator is not safe for
// concurrent use.
type EdgeIterator struct {
	g    *Grid
	from State
	src  int
	dir  Direction
}

// Edges returns an iterator over the legal moves out of s. Nothing is computed
// until [EdgeIterator.Next] is called.
func (g *Grid) Edges(s State) *EdgeIterator {
	return &EdgeIterator{g: g, from: s}
}

// Next returns the next legal edge. The boolean is false once every candidate
// has been examined; further calls keep returning false until [EdgeIterator.Reset].
func (it *EdgeIterator) Next() (Edge, bool) {
	for ; it.src < len(it.g.nodes); it.src, it.dir = it.src+1, North {
		if it.from.Usage(it.src) == 0 {
			continue
		}
		for it.dir < numDirections {
			d := it.dir
			it.dir++
			dst, ok := it.g.Neighbor(it.src, d)
			if !ok || !it.g.Legal(it.from, it.src, dst) {
				continue
			}
			return Edge{
				From: it.from,
				To:   it.from.ApplyMove(it.src, dst),
				Move: Move{Src: it.src, Dst: dst},
			}, true
		}
	}
	return Edge{}, false
}

// Reset restarts the enumeration at the first node, direction North.
func (it *EdgeIterator) Reset() {
	it.src, it.dir = 0, North
}

// Successors returns the legal edges out of s as a range-able sequence.
// Each call to the returned sequence starts a fresh enumeration.
func (g *Grid) Successors(s State) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		it := g.Edges(s)
		for {
			e, ok := it.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}
