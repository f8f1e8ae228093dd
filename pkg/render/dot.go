package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridshift/pkg/grid"
)

// Options configures plan diagrams.
type Options struct {
	// Detailed labels every node with its coordinates, usage and capacity.
	// When false, only the map symbol is shown.
	Detailed bool
	// MaxMoves caps the number of moves drawn. Zero draws every move.
	MaxMoves int
}

var cellFill = map[CellKind]string{
	CellData:    "white",
	CellEmpty:   "palegreen",
	CellWall:    "grey60",
	CellPayload: "gold",
}

// ToDOT converts a move plan on g, starting at initial, to Graphviz DOT.
//
// Nodes are laid out as a lattice matching their grid coordinates and coloured
// by their kind in the initial state. Each move is an arrow labelled with its
// step number; moves that carry the payload are drawn in orange.
func ToDOT(g *grid.Grid, initial grid.State, moves []grid.Move, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, width=0.6, height=0.6, fixedsize=true];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	cells := Cells(g, initial)
	for y, row := range cells {
		var ids []string
		for x, c := range row {
			if c.Kind == CellNone {
				continue
			}
			attrs := fmtAttrs(g, initial, c, opts.Detailed)
			fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(x, y), strings.Join(attrs, ", "))
			ids = append(ids, nodeID(x, y))
		}
		if len(ids) > 0 {
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
	}

	// Invisible lattice edges pin columns left to right and rows top to bottom.
	buf.WriteString("\n  edge [style=invis];\n")
	for y, row := range cells {
		for x, c := range row {
			if c.Kind == CellNone {
				continue
			}
			if x+1 < len(row) && row[x+1].Kind != CellNone {
				fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(x, y), nodeID(x+1, y))
			}
			if y+1 < len(cells) && cells[y+1][x].Kind != CellNone {
				fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(x, y), nodeID(x, y+1))
			}
		}
	}

	buf.WriteString("\n  edge [style=solid, constraint=false, fontsize=10, penwidth=1.5];\n")
	cur := initial
	for step, m := range moves {
		if opts.MaxMoves > 0 && step >= opts.MaxMoves {
			break
		}
		from, to := g.Node(m.Src), g.Node(m.Dst)
		color := "steelblue"
		if m.Src == cur.Payload() {
			color = "darkorange"
		}
		fmt.Fprintf(&buf, "  %s -> %s [label=\"%d\", color=%s, fontcolor=%s];\n",
			nodeID(from.X, from.Y), nodeID(to.X, to.Y), step+1, color, color)
		cur = cur.ApplyMove(m.Src, m.Dst)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(x, y int) string {
	return fmt.Sprintf("n%d_%d", x, y)
}

func fmtAttrs(g *grid.Grid, s grid.State, c Cell, detailed bool) []string {
	label := string(c.Kind.Symbol())
	if detailed {
		n := g.Node(c.Node)
		label = fmt.Sprintf("%d,%d\n%d/%dT", n.X, n.Y, s.Usage(c.Node), n.Capacity)
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "fillcolor=" + cellFill[c.Kind]}
	if c.Target {
		attrs = append(attrs, "penwidth=3", "color=crimson")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := renderFormat(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
