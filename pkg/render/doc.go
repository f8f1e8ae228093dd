// Package render visualises grids and move plans.
//
// # Overview
//
// Two outputs are supported:
//
//   - Text maps ([Map], [Cells]): one character per node, the classic way
//     of eyeballing a grid in a terminal.
//   - Plan diagrams ([ToDOT]): Graphviz DOT with the grid laid out as a
//     lattice and every move drawn as a numbered arrow, rendered in-process
//     with [RenderSVG] or [RenderPNG].
//
// # Text Maps
//
//	(.) .  G
//	 .  _  .
//	 #  .  .
//
// Symbols:
//
//   - G: the node holding the payload
//   - _: an empty node
//   - #: data too large to ever move into a hole
//   - .: any other node
//
// The target node is wrapped in parentheses. Coordinates with no node are
// left blank.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool (from
// librsvg).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering.
package render
