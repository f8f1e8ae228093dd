package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
)

// Coord is a grid position.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PuzzleNode is one node of a JSON puzzle. Capacity and Used are decoded as
// uint64 so that oversized values are reported, not wrapped.
type PuzzleNode struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Capacity uint64 `json:"capacity"`
	Used     uint64 `json:"used"`
}

// Puzzle is the JSON form of a grid and its initial state.
type Puzzle struct {
	Target  *Coord       `json:"target,omitempty"`
	Payload *Coord       `json:"payload,omitempty"`
	Nodes   []PuzzleNode `json:"nodes"`
}

// NewPuzzle describes g and s as a puzzle with explicit target and payload.
func NewPuzzle(g *grid.Grid, s grid.State) *Puzzle {
	p := &Puzzle{Nodes: make([]PuzzleNode, g.Len())}
	for i, n := range g.Nodes() {
		p.Nodes[i] = PuzzleNode{X: n.X, Y: n.Y, Capacity: uint64(n.Capacity), Used: uint64(s.Usage(i))}
	}
	t := g.Node(g.Target())
	p.Target = &Coord{X: t.X, Y: t.Y}
	pl := g.Node(s.Payload())
	p.Payload = &Coord{X: pl.X, Y: pl.Y}
	return p
}

// Build validates the puzzle and returns its grid and initial state.
func (p *Puzzle) Build() (*grid.Grid, grid.State, error) {
	nodes := make([]grid.Node, len(p.Nodes))
	used := make([]grid.Units, len(p.Nodes))
	for i, n := range p.Nodes {
		c, err := gserrors.CheckUnits("capacity", n.Capacity)
		if err != nil {
			return nil, grid.State{}, fmt.Errorf("node %d: %w", i, err)
		}
		u, err := gserrors.CheckUnits("used", n.Used)
		if err != nil {
			return nil, grid.State{}, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = grid.Node{X: n.X, Y: n.Y, Capacity: grid.Units(c)}
		used[i] = grid.Units(u)
	}

	var opts []grid.Option
	if p.Target != nil {
		opts = append(opts, grid.WithTarget(p.Target.X, p.Target.Y))
	}
	g, err := grid.New(nodes, opts...)
	if err != nil {
		return nil, grid.State{}, err
	}

	var payload int
	if p.Payload != nil {
		i, ok := g.Index(p.Payload.X, p.Payload.Y)
		if !ok {
			return nil, grid.State{}, gserrors.New(gserrors.ErrCodeInvalidLayout,
				"no node at payload (%d, %d)", p.Payload.X, p.Payload.Y)
		}
		payload = i
	} else {
		i, ok := g.PayloadSource()
		if !ok {
			return nil, grid.State{}, gserrors.New(gserrors.ErrCodeInvalidLayout, "no node with y = 0")
		}
		payload = i
	}

	s, err := g.NewState(used, payload)
	if err != nil {
		return nil, grid.State{}, err
	}
	return g, s, nil
}

// Canonical returns the compact JSON encoding of the fully explicit form of
// the puzzle: equal puzzles give equal bytes, whatever defaults the input
// relied on.
func Canonical(g *grid.Grid, s grid.State) ([]byte, error) {
	return json.Marshal(NewPuzzle(g, s))
}

// ReadPuzzle decodes a JSON puzzle from r. It does not validate the layout;
// call [Puzzle.Build] for that. ReadPuzzle does not close r.
func ReadPuzzle(r io.Reader) (*Puzzle, error) {
	var p Puzzle
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, gserrors.Wrap(gserrors.ErrCodeInvalidFormat, err, "decode puzzle")
	}
	return &p, nil
}

// ImportPuzzle reads a JSON puzzle file.
func ImportPuzzle(path string) (*Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPuzzle(f)
}

// WritePuzzle encodes p as indented JSON.
func WritePuzzle(w io.Writer, p *Puzzle) error {
	return writeIndented(w, p)
}

// ExportPuzzle writes p to a file at path.
func ExportPuzzle(path string, p *Puzzle) error {
	var buf bytes.Buffer
	if err := WritePuzzle(&buf, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
