// Package pkg provides the core libraries for gridshift.
//
// # Overview
//
// gridshift plans data moves on a rectangular grid of storage nodes. Every
// node has a capacity and a usage in terabytes; a move empties one node into
// an orthogonal neighbour that has room for all of it. The goal is to bring
// the data that starts in the top-right node (the payload) to a target node,
// (0,0) by default, in as few moves as possible.
//
// The pkg directory is organized into three main areas:
//
//  1. Domain: [grid], [search], [parse], [io], [render]
//  2. Infrastructure: [cache], [archive], [config], [errors], [observability]
//  3. Orchestration: [pipeline] (solve → render, cached)
//
// # Architecture
//
// The typical data flow:
//
//	df report / puzzle JSON
//	         ↓
//	    [parse] or [io] (read the grid and initial state)
//	         ↓
//	    [grid] (immutable states, legal moves, hole analysis)
//	         ↓
//	    [search] (A* with an admissible heuristic)
//	         ↓
//	    [render] (text map, DOT, SVG, PNG, PDF)
//
// # Quick Start
//
//	rep, err := parse.ReadFile("grid.df")
//	if err != nil {
//	    return err
//	}
//	g, initial, err := rep.Puzzle()
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(grid.ViablePairCount(g, initial))
//
//	res, err := search.Solve(ctx, g, initial)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Status, res.Length)
//
// # Main Packages
//
// [grid] - Nodes, the immutable [grid.State], legal moves enumerated lazily,
// viable pairs and the hole analysis that separates the mobile nodes from the
// walls.
//
// [search] - A* over states with the move-cost and manhattan heuristics, an
// expansion budget, progress callbacks and cancellation through context.
//
// [parse] - The df-style report reader.
//
// [io] - JSON puzzles and plans, and the canonical puzzle encoding used for
// cache keys.
//
// [render] - Text maps and Graphviz plan diagrams.
//
// [pipeline] - The cached solve and render stages shared by the CLI and the
// HTTP API.
//
// [cache] - Plan and artifact caches: file, Redis, null.
//
// [archive] - Plan history in SQLite or MongoDB.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/search/...   # Specific package
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/grid
// [grid.State]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/grid#State
// [search]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/search
// [parse]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/parse
// [io]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/archive
// [config]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridshift/pkg/observability
package pkg
