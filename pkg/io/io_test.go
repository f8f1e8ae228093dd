package io

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
	"github.com/matzehuels/gridshift/pkg/search"
)

const examplePuzzle = `{
  "nodes": [
    {"x": 0, "y": 0, "capacity": 10, "used": 0},
    {"x": 1, "y": 0, "capacity": 10, "used": 5}
  ]
}`

func TestReadPuzzleDefaults(t *testing.T) {
	p, err := ReadPuzzle(strings.NewReader(examplePuzzle))
	if err != nil {
		t.Fatalf("ReadPuzzle() error = %v", err)
	}
	g, s, err := p.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.Target() != 0 {
		t.Errorf("Target() = %d, want 0", g.Target())
	}
	if s.Payload() != 1 {
		t.Errorf("Payload() = %d, want 1", s.Payload())
	}
}

func TestPuzzleBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode gserrors.Code
	}{
		{"Malformed", `{"nodes": [`, gserrors.ErrCodeInvalidFormat},
		{"UnknownField", `{"nodes": [], "colour": "red"}`, gserrors.ErrCodeInvalidFormat},
		{"Overflow", `{"nodes": [{"x": 0, "y": 0, "capacity": 70000, "used": 1}]}`, gserrors.ErrCodeCapacityOverflow},
		{"Empty", `{"nodes": []}`, gserrors.ErrCodeInvalidLayout},
		{"BadTarget", `{"target": {"x": 5, "y": 5}, "nodes": [{"x": 0, "y": 0, "capacity": 10, "used": 1}]}`, gserrors.ErrCodeInvalidLayout},
		{"BadPayload", `{"payload": {"x": 5, "y": 5}, "nodes": [{"x": 0, "y": 0, "capacity": 10, "used": 1}]}`, gserrors.ErrCodeInvalidLayout},
		{"EmptyPayload", `{"nodes": [{"x": 0, "y": 0, "capacity": 10, "used": 0}]}`, gserrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ReadPuzzle(strings.NewReader(tt.input))
			if err == nil {
				_, _, err = p.Build()
			}
			if !gserrors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestPuzzleExportImport(t *testing.T) {
	p, err := ReadPuzzle(strings.NewReader(examplePuzzle))
	if err != nil {
		t.Fatal(err)
	}
	g, s, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "puzzle.json")
	if err := ExportPuzzle(path, NewPuzzle(g, s)); err != nil {
		t.Fatalf("ExportPuzzle() error = %v", err)
	}
	back, err := ImportPuzzle(path)
	if err != nil {
		t.Fatalf("ImportPuzzle() error = %v", err)
	}
	if diff := cmp.Diff(NewPuzzle(g, s), back); diff != "" {
		t.Errorf("puzzle mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalIgnoresDefaults(t *testing.T) {
	implicit, err := ReadPuzzle(strings.NewReader(examplePuzzle))
	if err != nil {
		t.Fatal(err)
	}
	explicit, err := ReadPuzzle(strings.NewReader(`{
		"target": {"x": 0, "y": 0},
		"payload": {"x": 1, "y": 0},
		"nodes": [
			{"x": 0, "y": 0, "capacity": 10, "used": 0},
			{"x": 1, "y": 0, "capacity": 10, "used": 5}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	a := mustCanonical(t, implicit)
	b := mustCanonical(t, explicit)
	if !bytes.Equal(a, b) {
		t.Errorf("canonical forms differ:\n%s\n%s", a, b)
	}
}

func mustCanonical(t *testing.T, p *Puzzle) []byte {
	t.Helper()
	g, s, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Canonical(g, s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestPlan(t *testing.T) {
	p, err := ReadPuzzle(strings.NewReader(examplePuzzle))
	if err != nil {
		t.Fatal(err)
	}
	g, s, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	res, err := search.Solve(context.Background(), g, s)
	if err != nil {
		t.Fatal(err)
	}

	plan := NewPlan(g, s, res)
	plan.ID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	want := []PlanMove{{From: Coord{1, 0}, To: Coord{0, 0}, Units: 5, Payload: true}}
	if diff := cmp.Diff(want, plan.Moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := WritePlan(&buf, plan); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "found"`) {
		t.Errorf("status not encoded by name:\n%s", buf.String())
	}

	back, err := ReadPlan(&buf)
	if err != nil {
		t.Fatalf("ReadPlan() error = %v", err)
	}
	if !back.Found() || back.Length != 1 {
		t.Errorf("decoded plan = %+v", back)
	}
	states, err := back.Replay(g, s)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if !g.IsGoal(states[len(states)-1]) {
		t.Error("replayed plan does not end at the goal")
	}
	moves, err := back.GridMoves(g, s)
	if err != nil {
		t.Fatalf("GridMoves() error = %v", err)
	}
	if diff := cmp.Diff(res.Moves, moves); diff != "" {
		t.Errorf("GridMoves() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanReplayRejectsIllegalMoves(t *testing.T) {
	g, err := grid.New([]grid.Node{{X: 0, Y: 0, Capacity: 10}, {X: 1, Y: 0, Capacity: 10}})
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.NewState([]grid.Units{0, 5}, 1)
	if err != nil {
		t.Fatal(err)
	}
	plan := &Plan{Moves: []PlanMove{{From: Coord{0, 0}, To: Coord{1, 0}}}}
	if _, err := plan.Replay(g, s); !gserrors.Is(err, gserrors.ErrCodeInvalidInput) {
		t.Errorf("Replay() error = %v, want %s", err, gserrors.ErrCodeInvalidInput)
	}
}

func TestImportPuzzleMissingFile(t *testing.T) {
	_, err := ImportPuzzle(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ImportPuzzle() error = %v, want not-exist", err)
	}
}
