package grid

import (
	"cmp"
	"fmt"
	"strings"
)

// State is an immutable snapshot of every node's usage plus the index of the
// node holding the payload.
//
// Usages are packed big-endian, two bytes per node, into a string. This keeps
// State comparable (usable as a map key and with ==) and makes the byte-wise
// string order equal to the lexicographic order of the usage sequence.
//
// The zero value is an empty state with no nodes.
type State struct {
	usage   string
	payload int
}

// NewState packs usages into a state without validating it against a grid.
// Use [Grid.NewState] for input that has not been checked yet.
func NewState(usages []Units, payload int) State {
	b := make([]byte, 2*len(usages))
	for i, u := range usages {
		putUnits(b, i, u)
	}
	return State{usage: string(b), payload: payload}
}

// Len returns the number of nodes in the state.
func (s State) Len() int { return len(s.usage) / 2 }

// Usage returns the current usage of node i.
func (s State) Usage(i int) Units {
	return Units(s.usage[2*i])<<8 | Units(s.usage[2*i+1])
}

// Payload returns the index of the node that holds the payload.
func (s State) Payload() int { return s.payload }

// Usages returns a copy of the usage sequence.
func (s State) Usages() []Units {
	out := make([]Units, s.Len())
	for i := range out {
		out[i] = s.Usage(i)
	}
	return out
}

// Total returns the sum of all usages. Moves conserve it.
func (s State) Total() uint64 {
	var sum uint64
	for i := 0; i < s.Len(); i++ {
		sum += uint64(s.Usage(i))
	}
	return sum
}

// Empty returns the indices of nodes holding no data, in index order.
func (s State) Empty() []int {
	var out []int
	for i := 0; i < s.Len(); i++ {
		if s.Usage(i) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// ApplyMove returns the state after moving all of src's data into dst.
// If src holds the payload, the payload moves to dst.
//
// ApplyMove does not validate the move; callers must only apply moves that
// [Grid.Legal] accepts. The receiver is never modified.
func (s State) ApplyMove(src, dst int) State {
	b := []byte(s.usage)
	putUnits(b, dst, s.Usage(dst)+s.Usage(src))
	putUnits(b, src, 0)

	payload := s.payload
	if src == payload {
		payload = dst
	}
	return State{usage: string(b), payload: payload}
}

// Equal reports whether both states have the same usages and payload location.
func (s State) Equal(o State) bool { return s == o }

// Compare orders states lexicographically by (payload, usages).
// It returns -1, 0 or +1.
func (s State) Compare(o State) int {
	if c := cmp.Compare(s.payload, o.payload); c != 0 {
		return c
	}
	return strings.Compare(s.usage, o.usage)
}

// Key returns a compact, stable encoding of the state, suitable for external
// stores that need a string key.
func (s State) Key() string {
	return fmt.Sprintf("%d:%x", s.payload, s.usage)
}

// String renders the state for logs and debugging.
func (s State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "payload@%d [", s.payload)
	for i := 0; i < s.Len(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", s.Usage(i))
	}
	sb.WriteByte(']')
	return sb.String()
}

func putUnits(b []byte, i int, u Units) {
	b[2*i] = byte(u >> 8)
	b[2*i+1] = byte(u)
}
