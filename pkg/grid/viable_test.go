package grid

import (
	"math/rand/v2"
	"testing"
)

func TestViablePairCount(t *testing.T) {
	tests := []struct {
		name  string
		width int
		caps  []Units
		used  []Units
		want  int
	}{
		// Every non-empty node fits into the single empty one.
		{"OneHole", 3, []Units{10, 10, 10}, []Units{0, 6, 7}, 2},
		// Spare capacity is 10, 4, 3 and 7: the 6 and the 7 fit twice each,
		// the 3 fits everywhere but at home.
		{"Partial", 2, []Units{10, 10, 10, 10}, []Units{0, 6, 7, 3}, 7},
		// A node never pairs with itself even when it would "fit".
		{"NoSelfPair", 2, []Units{20, 20}, []Units{5, 5}, 2},
		{"NoneFit", 2, []Units{5, 5}, []Units{5, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, s := layout(t, tt.width, tt.caps, tt.used)
			if got := ViablePairCount(g, s); got != tt.want {
				t.Errorf("ViablePairCount() = %d, want %d", got, tt.want)
			}
			if got := countPairs(g, s); got != tt.want {
				t.Errorf("ViablePairs() yielded %d, want %d", got, tt.want)
			}
		})
	}
}

func TestViablePairCountMatchesEnumeration(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		const width, height = 4, 3
		caps := make([]Units, width*height)
		used := make([]Units, width*height)
		for i := range caps {
			caps[i] = Units(5 + r.IntN(20))
			used[i] = Units(r.IntN(int(caps[i]) + 1))
		}
		if used[width-1] == 0 {
			used[width-1] = 1
		}

		g, s := layout(t, width, caps, used)
		if got, want := ViablePairCount(g, s), countPairs(g, s); got != want {
			t.Fatalf("round %d: ViablePairCount() = %d, enumeration = %d", round, got, want)
		}
	}
}

func TestViablePairsEarlyStop(t *testing.T) {
	g, s := layout(t, 2, []Units{20, 20}, []Units{5, 5})
	n := 0
	for i, j := range ViablePairs(g, s) {
		if i == j {
			t.Fatalf("pair (%d, %d) pairs a node with itself", i, j)
		}
		n++
		break
	}
	if n != 1 {
		t.Errorf("consumed %d pairs, want 1", n)
	}
}

func countPairs(g *Grid, s State) int {
	n := 0
	for range ViablePairs(g, s) {
		n++
	}
	return n
}
