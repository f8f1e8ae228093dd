package grid

import (
	"slices"
	"testing"
)

func TestHoles(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		caps        []Units
		used        []Units
		wantEmpty   []int
		wantMerging bool
		wantSingle  bool
		immobile    []int
	}{
		{
			// Classic layout: one hole, one wall of oversized data.
			name:        "SingleHoleWithWall",
			width:       3,
			caps:        []Units{10, 10, 10, 10, 10, 10, 10, 95, 10},
			used:        []Units{6, 7, 8, 6, 0, 7, 8, 90, 6},
			wantEmpty:   []int{4},
			wantMerging: false,
			wantSingle:  true,
			immobile:    []int{7},
		},
		{
			name:        "TwoHoles",
			width:       2,
			caps:        []Units{10, 10, 10, 10},
			used:        []Units{0, 8, 0, 7},
			wantEmpty:   []int{0, 2},
			wantMerging: false,
			wantSingle:  false,
		},
		{
			name:        "SmallItemsMerge",
			width:       3,
			caps:        []Units{10, 10, 10},
			used:        []Units{0, 2, 3},
			wantEmpty:   []int{0},
			wantMerging: true,
			wantSingle:  false,
		},
		{
			// Nothing fits in the tiny hole, but the 50 fits on top of the 10.
			name:        "ImmobileMerge",
			width:       3,
			caps:        []Units{4, 100, 60},
			used:        []Units{0, 10, 50},
			wantEmpty:   []int{0},
			wantMerging: true,
			wantSingle:  false,
		},
		{
			name:        "NoHole",
			width:       2,
			caps:        []Units{10, 10},
			used:        []Units{5, 5},
			wantEmpty:   nil,
			wantMerging: true,
			wantSingle:  false,
		},
		{
			name:        "Frozen",
			width:       2,
			caps:        []Units{5, 5},
			used:        []Units{5, 5},
			wantEmpty:   nil,
			wantMerging: false,
			wantSingle:  false,
			immobile:    []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, s := layout(t, tt.width, tt.caps, tt.used)
			h := g.Holes(s)

			if !slices.Equal(h.Empty, tt.wantEmpty) {
				t.Errorf("Empty = %v, want %v", h.Empty, tt.wantEmpty)
			}
			if h.Merging != tt.wantMerging {
				t.Errorf("Merging = %v, want %v", h.Merging, tt.wantMerging)
			}
			if h.Single() != tt.wantSingle {
				t.Errorf("Single() = %v, want %v", h.Single(), tt.wantSingle)
			}
			for _, i := range tt.immobile {
				if h.Mobile[i] {
					t.Errorf("node %d should be immobile", i)
				}
			}
		})
	}
}

// In the single-hole regime every reachable state keeps exactly one hole.
func TestSingleHoleIsPreserved(t *testing.T) {
	g, s := layout(t, 3,
		[]Units{10, 10, 10, 10, 10, 10, 10, 95, 10},
		[]Units{6, 7, 8, 6, 0, 7, 8, 90, 6})
	if !g.Holes(s).Single() {
		t.Fatal("expected single-hole regime")
	}

	seen := map[State]bool{s: true}
	queue := []State{s}
	for len(queue) > 0 && len(seen) < 2000 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Hole() < 0 {
			t.Fatalf("state %s has %d empty nodes", cur, len(cur.Empty()))
		}
		for e := range g.Successors(cur) {
			if cur.Usage(e.Move.Dst) != 0 {
				t.Fatalf("merge %v reached from %s", e.Move, cur)
			}
			if !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
}
