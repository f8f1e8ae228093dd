// Package io provides JSON import and export for puzzles and move plans.
//
// # Overview
//
// The df report parsed by package parse is the native puzzle input, but it
// cannot express a custom target or payload location. The JSON format here can,
// and it is what the HTTP API accepts and what cache keys are derived from:
//
//   - Puzzles: node layout, usages, target and payload coordinates
//   - Plans: the outcome of a search, with moves spelled out as coordinates
//
// # Puzzle Format
//
//	{
//	  "target":  {"x": 0, "y": 0},
//	  "payload": {"x": 2, "y": 0},
//	  "nodes": [
//	    {"x": 0, "y": 0, "capacity": 10, "used": 8},
//	    {"x": 1, "y": 0, "capacity": 9,  "used": 7},
//	    {"x": 2, "y": 0, "capacity": 10, "used": 6}
//	  ]
//	}
//
// "target" defaults to (0, 0). "payload" defaults to the node with y = 0 and
// the largest x. Capacities and usages beyond grid.MaxUnits are rejected with
// CAPACITY_OVERFLOW.
//
// # Plan Format
//
//	{
//	  "id": "7d444840-9dc0-11d1-b245-5ffdce74fad2",
//	  "status": "found",
//	  "length": 1,
//	  "moves": [
//	    {"from": {"x": 1, "y": 0}, "to": {"x": 0, "y": 0}, "units": 6, "payload": true}
//	  ],
//	  "expanded": 1,
//	  "generated": 2
//	}
//
// # Import and Export
//
// Use [ReadPuzzle] / [ImportPuzzle] to decode puzzles from a reader or file,
// and [WritePuzzle] / [ExportPuzzle] to encode them. [Puzzle.Build] validates
// a decoded puzzle and returns the grid and initial state; [NewPuzzle] goes the
// other way. Plans use [ReadPlan], [WritePlan] and [NewPlan].
//
// Encoding is deterministic: the same puzzle always produces the same bytes,
// which is what makes [Canonical] usable as a cache key input.
package io
