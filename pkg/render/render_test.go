package render

import (
	"bytes"
	"strings"
	"testing"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
)

func example(t *testing.T) (*grid.Grid, grid.State) {
	t.Helper()
	caps := []grid.Units{10, 9, 10, 11, 8, 9, 32, 11, 9}
	used := []grid.Units{8, 7, 6, 6, 0, 8, 28, 7, 6}
	nodes := make([]grid.Node, len(caps))
	for i, c := range caps {
		nodes[i] = grid.Node{X: i % 3, Y: i / 3, Capacity: c}
	}
	g, err := grid.New(nodes)
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.NewState(used, 2)
	if err != nil {
		t.Fatal(err)
	}
	return g, s
}

func TestMap(t *testing.T) {
	g, s := example(t)
	want := "(.) .  G\n" +
		" .  _  .\n" +
		" #  .  .\n"
	if got := Map(g, s); got != want {
		t.Errorf("Map() =\n%s\nwant\n%s", got, want)
	}

	s = s.ApplyMove(1, 4)
	want = "(.) _  G\n" +
		" .  .  .\n" +
		" #  .  .\n"
	if got := Map(g, s); got != want {
		t.Errorf("Map() after move =\n%s\nwant\n%s", got, want)
	}
}

func TestMapSparse(t *testing.T) {
	g, err := grid.New([]grid.Node{
		{X: 0, Y: 0, Capacity: 10},
		{X: 2, Y: 0, Capacity: 10},
		{X: 1, Y: 0, Capacity: 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.NewState([]grid.Units{0, 5, 3}, 1)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := Map(g, s), "(_) .  G\n"; got != want {
		t.Errorf("Map() = %q, want %q", got, want)
	}

	g, err = grid.New([]grid.Node{{X: 0, Y: 0, Capacity: 10}, {X: 2, Y: 0, Capacity: 10}})
	if err != nil {
		t.Fatal(err)
	}
	s, err = g.NewState([]grid.Units{0, 5}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Map(g, s), "(_)    G\n"; got != want {
		t.Errorf("Map() with gap = %q, want %q", got, want)
	}
}

func TestCells(t *testing.T) {
	g, s := example(t)
	cells := Cells(g, s)
	if len(cells) != 3 || len(cells[0]) != 3 {
		t.Fatalf("Cells() shape = %dx%d, want 3x3", len(cells), len(cells[0]))
	}
	tests := []struct {
		x, y   int
		kind   CellKind
		target bool
	}{
		{0, 0, CellData, true},
		{2, 0, CellPayload, false},
		{1, 1, CellEmpty, false},
		{0, 2, CellWall, false},
	}
	for _, tt := range tests {
		c := cells[tt.y][tt.x]
		if c.Kind != tt.kind || c.Target != tt.target {
			t.Errorf("cell (%d,%d) = %+v, want kind %c target %v", tt.x, tt.y, c, tt.kind.Symbol(), tt.target)
		}
	}
}

func TestToDOT(t *testing.T) {
	g, s := example(t)
	moves := []grid.Move{{Src: 1, Dst: 4}, {Src: 2, Dst: 1}}
	dot := ToDOT(g, s, moves, Options{})

	for _, want := range []string{
		"digraph G {",
		`n0_0 [label=".", fillcolor=white, penwidth=3, color=crimson];`,
		`n2_0 [label="G", fillcolor=gold];`,
		`n0_2 [label="#", fillcolor=grey60];`,
		"{ rank=same; n0_1; n1_1; n2_1; }",
		`n1_0 -> n1_1 [label="1", color=steelblue, fontcolor=steelblue];`,
		`n2_0 -> n1_0 [label="2", color=darkorange, fontcolor=darkorange];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTOptions(t *testing.T) {
	g, s := example(t)
	moves := []grid.Move{{Src: 1, Dst: 4}, {Src: 2, Dst: 1}}

	dot := ToDOT(g, s, moves, Options{MaxMoves: 1})
	if strings.Contains(dot, `label="2"`) {
		t.Errorf("MaxMoves=1 drew the second move:\n%s", dot)
	}

	dot = ToDOT(g, s, nil, Options{Detailed: true})
	if !strings.Contains(dot, `label="0,2\n28/32T"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	g, s := example(t)
	svg, err := RenderSVG(ToDOT(g, s, []grid.Move{{Src: 1, Dst: 4}}, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("SVG header not normalized:\n%.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got := string(normalizeViewBox(in)); got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() changed SVG without viewBox: %s", got)
	}
}

func TestToPDFUnavailable(t *testing.T) {
	old := rsvgConvert
	rsvgConvert = "rsvg-convert-missing-for-test"
	defer func() { rsvgConvert = old }()

	_, err := ToPDF([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	if code := gserrors.GetCode(err); code != gserrors.ErrCodeUnsupported {
		t.Errorf("ToPDF() without converter: code = %q (err %v), want %s", code, err, gserrors.ErrCodeUnsupported)
	}
}
