package search

import "github.com/matzehuels/gridshift/pkg/grid"

type frontierItem struct {
	state grid.State
	g     int
	f     int
	seq   int // insertion order, breaks f ties
}

// frontier is a container/heap min-heap on (f, seq).
type frontier []*frontierItem

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(*frontierItem)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
