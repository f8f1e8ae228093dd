package render

import (
	"strings"

	"github.com/matzehuels/gridshift/pkg/grid"
)

// CellKind classifies a grid position for display.
type CellKind uint8

const (
	CellNone    CellKind = iota // no node at this position
	CellData                    // a node holding movable data
	CellEmpty                   // a node holding nothing
	CellWall                    // a node whose data can never move into a hole
	CellPayload                 // the node holding the payload
)

// Symbol returns the map character for k.
func (k CellKind) Symbol() byte {
	switch k {
	case CellData:
		return '.'
	case CellEmpty:
		return '_'
	case CellWall:
		return '#'
	case CellPayload:
		return 'G'
	}
	return ' '
}

// Cell is one position of a rendered map.
type Cell struct {
	Kind   CellKind
	Target bool
	Node   int // node index, -1 for CellNone
}

// Cells classifies every position of g in state s, indexed [y][x].
func Cells(g *grid.Grid, s grid.State) [][]Cell {
	mobile := g.Holes(s).Mobile
	rows := make([][]Cell, g.Height())
	for y := range rows {
		rows[y] = make([]Cell, g.Width())
		for x := range rows[y] {
			i, ok := g.Index(x, y)
			if !ok {
				rows[y][x] = Cell{Kind: CellNone, Node: -1}
				continue
			}
			c := Cell{Kind: CellData, Node: i, Target: i == g.Target()}
			switch {
			case i == s.Payload():
				c.Kind = CellPayload
			case s.Usage(i) == 0:
				c.Kind = CellEmpty
			case !mobile[i]:
				c.Kind = CellWall
			}
			rows[y][x] = c
		}
	}
	return rows
}

// Map renders s as a text map, one line per grid row. Trailing spaces are
// trimmed.
func Map(g *grid.Grid, s grid.State) string {
	var sb strings.Builder
	for _, row := range Cells(g, s) {
		var line strings.Builder
		for _, c := range row {
			open, closing := byte(' '), byte(' ')
			if c.Target {
				open, closing = '(', ')'
			}
			line.WriteByte(open)
			line.WriteByte(c.Kind.Symbol())
			line.WriteByte(closing)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
