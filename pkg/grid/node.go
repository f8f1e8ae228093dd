package grid

import (
	"fmt"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
)

// Units is an amount of data (or room for data) on a node, in terabytes.
type Units uint16

// MaxUnits is the largest representable capacity or usage.
const MaxUnits = Units(gserrors.MaxUnits)

// Node is a storage node at fixed grid coordinates.
// Nodes are static: neither their position nor their capacity changes while
// a puzzle is being solved.
type Node struct {
	X        int   `json:"x"`
	Y        int   `json:"y"`
	Capacity Units `json:"capacity"`
}

// String returns the node in the df report naming scheme.
func (n Node) String() string {
	return fmt.Sprintf("node-x%d-y%d", n.X, n.Y)
}

// Direction names one of the four grid neighbours of a node.
type Direction uint8

// Directions are enumerated in this order by [EdgeIterator].
const (
	North Direction = iota // y - 1
	South                  // y + 1
	East                   // x + 1
	West                   // x - 1

	numDirections
)

// Directions lists all directions in enumeration order.
var Directions = [numDirections]Direction{North, South, East, West}

// Offset returns the coordinate delta of a step in direction d.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "invalid"
}

// Move relocates all data from node Src into node Dst.
type Move struct {
	Src int `json:"src"`
	Dst int `json:"dst"`
}

// Edge is one step of the implicit move graph.
type Edge struct {
	From State
	To   State
	Move Move
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
