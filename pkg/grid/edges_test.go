package grid

import (
	"slices"
	"testing"
)

func TestLegal(t *testing.T) {
	// 3x2 grid, target (0,0) has capacity 8.
	//   (0,0) cap 8  used 0 | (1,0) cap 10 used 6 | (2,0) cap 10 used 7 payload
	//   (0,1) cap 10 used 3 | (1,1) cap 10 used 0 | (2,1) cap 10 used 9
	g, s := layout(t, 3,
		[]Units{8, 10, 10, 10, 10, 10},
		[]Units{0, 6, 7, 3, 0, 9})

	tests := []struct {
		name     string
		src, dst int
		want     bool
	}{
		{"IntoEmptyNeighbour", 1, 0, true},
		{"EmptySource", 0, 1, false},
		{"SameNode", 1, 1, false},
		{"NoRoom", 2, 1, false},
		{"NotAdjacent", 2, 0, false},
		{"Diagonal", 3, 1, false},
		{"IntoTarget", 3, 0, true},
		{"MergeOverflows", 5, 2, false},
		{"PayloadNoRoom", 2, 5, false},
		{"OutOfRange", 1, 6, false},
		{"Negative", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Legal(s, tt.src, tt.dst); got != tt.want {
				t.Errorf("Legal(%d, %d) = %v, want %v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestLegalPayloadMustFitTarget(t *testing.T) {
	// The payload (5) may merge into (1,0) which has room, but the merged 9
	// units would never fit in the 8-unit target.
	g, s := layout(t, 3,
		[]Units{8, 20, 10},
		[]Units{0, 4, 5})

	if g.Legal(s, 2, 1) {
		t.Error("payload merge exceeding target capacity should be illegal")
	}
	if !g.Legal(s, 1, 2) {
		t.Error("non-payload merge into payload node should be legal when it fits")
	}

	// With a roomier target elsewhere the same merge is fine.
	g2, s2 := layout(t, 3,
		[]Units{8, 20, 10},
		[]Units{0, 4, 5},
		WithTarget(1, 0))
	if !g2.Legal(s2, 2, 1) {
		t.Error("payload merge fitting the explicit target should be legal")
	}
}

func TestEdgesOrder(t *testing.T) {
	// 3x3, full nodes around a large empty centre: only moves into the centre.
	g, s := layout(t, 3,
		[]Units{5, 5, 5, 5, 50, 5, 5, 5, 5},
		[]Units{5, 5, 5, 5, 0, 5, 5, 5, 5})

	var got []Move
	for e := range g.Successors(s) {
		got = append(got, e.Move)
	}
	// Sources ascend; each source has exactly one legal direction (towards 4).
	want := []Move{{1, 4}, {3, 4}, {5, 4}, {7, 4}}
	if !slices.Equal(got, want) {
		t.Errorf("moves = %v, want %v", got, want)
	}
}

func TestEdgesDirectionOrder(t *testing.T) {
	// Centre holds data and every neighbour is empty: N, S, E, W.
	g, s := layout(t, 3,
		[]Units{10, 10, 10, 10, 10, 10, 10, 10, 10},
		[]Units{0, 0, 1, 0, 5, 0, 0, 0, 0})

	var dsts []int
	for e := range g.Successors(s) {
		if e.Move.Src == 4 {
			dsts = append(dsts, e.Move.Dst)
		}
	}
	if want := []int{1, 7, 5, 3}; !slices.Equal(dsts, want) {
		t.Errorf("destinations = %v, want %v", dsts, want)
	}
}

func TestEdgeIteratorRestartable(t *testing.T) {
	g, s := layout(t, 2,
		[]Units{10, 10, 10, 10},
		[]Units{0, 5, 3, 0})

	it := g.Edges(s)
	var first []Move
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		first = append(first, e.Move)
	}
	if len(first) == 0 {
		t.Fatal("expected at least one edge")
	}
	if _, ok := it.Next(); ok {
		t.Error("exhausted iterator yielded again")
	}

	it.Reset()
	var second []Move
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		second = append(second, e.Move)
	}
	if !slices.Equal(first, second) {
		t.Errorf("after Reset() = %v, want %v", second, first)
	}
}

func TestEdgesAreLegal(t *testing.T) {
	g, s := layout(t, 3,
		[]Units{8, 10, 12, 10, 9, 10, 11, 10, 10},
		[]Units{2, 6, 7, 3, 0, 4, 0, 8, 1})

	// Walk a few levels of the move graph and check every edge.
	frontier := []State{s}
	seen := map[State]bool{s: true}
	for depth := 0; depth < 3; depth++ {
		var next []State
		for _, st := range frontier {
			count := 0
			for e := range g.Successors(st) {
				count++
				m := e.Move
				if m.Src < 0 || m.Src >= g.Len() || m.Dst < 0 || m.Dst >= g.Len() {
					t.Fatalf("move %v out of range", m)
				}
				if !g.Legal(st, m.Src, m.Dst) {
					t.Fatalf("illegal move %v from %s", m, st)
				}
				if e.From != st {
					t.Fatalf("edge From = %s, want %s", e.From, st)
				}
				if e.To.Total() != st.Total() {
					t.Fatalf("move %v changed total usage", m)
				}
				for i := 0; i < g.Len(); i++ {
					if e.To.Usage(i) > g.Node(i).Capacity {
						t.Fatalf("move %v overfills node %d", m, i)
					}
				}
				if e.To.Usage(m.Src) != 0 || e.To.Usage(m.Dst) != st.Usage(m.Dst)+st.Usage(m.Src) {
					t.Fatalf("move %v did not relocate all data", m)
				}
				if !seen[e.To] {
					seen[e.To] = true
					next = append(next, e.To)
				}
			}
			if count > 4*g.Len() {
				t.Fatalf("%d edges exceeds bound", count)
			}
		}
		frontier = next
	}
}

func TestSuccessorsEarlyBreak(t *testing.T) {
	g, s := layout(t, 3,
		[]Units{5, 5, 5, 5, 50, 5, 5, 5, 5},
		[]Units{5, 5, 5, 5, 0, 5, 5, 5, 5})

	n := 0
	for range g.Successors(s) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("consumed %d edges, want 2", n)
	}
}
