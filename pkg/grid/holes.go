package grid

// Holes summarises how data can circulate from a given state.
//
// Content can only travel by moving into an empty node (a hole) or by merging
// into a non-empty node. Holes tracks which nodes' content could ever take part
// in hole moves, and whether any merge is reachable at all. The analysis is a
// conservative over-approximation: Merging may be true for grids where no merge
// actually happens, but never the other way round.
type Holes struct {
	// Empty lists the nodes holding no data, in index order.
	Empty []int
	// Mobile reports, per node, whether its content may ever move into a hole.
	// Empty nodes count as mobile.
	Mobile []bool
	// Merging reports whether some sequence of moves could merge the data of
	// two non-empty nodes.
	Merging bool
}

// Single reports whether the state is in the single-hole regime: exactly one
// empty node and no merge reachable. In that regime every reachable state also
// has exactly one empty node, and each move swaps the hole with a neighbour.
func (h Holes) Single() bool {
	return len(h.Empty) == 1 && !h.Merging
}

// Holes analyses s. See [Holes].
func (g *Grid) Holes(s State) Holes {
	n := len(g.nodes)
	h := Holes{Empty: s.Empty(), Mobile: make([]bool, n)}

	// Grow the set of positions a hole can occupy. A hole at a node of capacity
	// c accepts any item of size <= c, whose old position then becomes a hole.
	holeCap := 0
	for _, i := range h.Empty {
		h.Mobile[i] = true
		holeCap = max(holeCap, int(g.nodes[i].Capacity))
	}
	for changed := true; changed; {
		changed = false
		for i := range g.nodes {
			if u := int(s.Usage(i)); !h.Mobile[i] && u <= holeCap {
				h.Mobile[i] = true
				holeCap = max(holeCap, int(g.nodes[i].Capacity))
				changed = true
			}
		}
	}

	// Smallest mobile item, and the two smallest items overall.
	minMobile, minMobileAt := -1, -1
	s1, s1At, s2 := -1, -1, -1
	for i := range g.nodes {
		u := int(s.Usage(i))
		if u == 0 {
			continue
		}
		if h.Mobile[i] && (minMobile < 0 || u < minMobile) {
			minMobile, minMobileAt = u, i
		}
		switch {
		case s1 < 0 || u < s1:
			s2 = s1
			s1, s1At = u, i
		case s2 < 0 || u < s2:
			s2 = u
		}
	}
	if s2 < 0 {
		return h // fewer than two items, nothing to merge
	}

	// Cheapest pair that could end up sharing a mobile position: the smallest
	// mobile item plus the smallest other item.
	pairAtMobile := -1
	if minMobile >= 0 {
		other := s1
		if s1At == minMobileAt {
			other = s2
		}
		pairAtMobile = minMobile + other
	}

	for k, node := range g.nodes {
		c := int(node.Capacity)
		if h.Mobile[k] {
			if pairAtMobile >= 0 && pairAtMobile <= c {
				h.Merging = true
				return h
			}
			continue
		}
		// An immobile node keeps its own content; anything else may arrive.
		other := s1
		if s1At == k {
			other = s2
		}
		if other+int(s.Usage(k)) <= c {
			h.Merging = true
			return h
		}
	}
	return h
}

// Hole returns the single empty node of s, or -1 if s does not have exactly
// one.
func (s State) Hole() int {
	hole := -1
	for i := 0; i < s.Len(); i++ {
		if s.Usage(i) == 0 {
			if hole >= 0 {
				return -1
			}
			hole = i
		}
	}
	return hole
}
