package grid

import (
	"iter"
	"slices"
	"sort"
)

// ViablePairs yields every ordered pair (i, j), i != j, where node i holds data
// and all of it fits into node j's spare capacity. Adjacency is ignored.
func ViablePairs(g *Grid, s State) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := range g.nodes {
			u := int(s.Usage(i))
			if u == 0 {
				continue
			}
			for j := range g.nodes {
				if i != j && u <= avail(g, s, j) {
					if !yield(i, j) {
						return
					}
				}
			}
		}
	}
}

// ViablePairCount returns the number of pairs [ViablePairs] would yield.
// It sorts spare capacities instead of comparing every pair.
func ViablePairCount(g *Grid, s State) int {
	spare := make([]int, len(g.nodes))
	for j := range g.nodes {
		spare[j] = avail(g, s, j)
	}
	sorted := slices.Clone(spare)
	slices.Sort(sorted)

	count := 0
	for i := range g.nodes {
		u := int(s.Usage(i))
		if u == 0 {
			continue
		}
		// nodes whose spare capacity is at least u
		count += len(sorted) - sort.SearchInts(sorted, u)
		if u <= spare[i] {
			count-- // a node never pairs with itself
		}
	}
	return count
}

func avail(g *Grid, s State, j int) int {
	return int(g.nodes[j].Capacity) - int(s.Usage(j))
}
