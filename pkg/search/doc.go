// Package search finds shortest move plans with A*.
//
// # Overview
//
// [Solve] explores the implicit move graph of a [grid.Grid] from an initial
// state until the payload sits on the target node. Vertices are
// [grid.State] values and every edge costs one move, so the plan length is the
// number of moves.
//
// The graph is never built. Successors are pulled one at a time from
// [grid.Grid.Edges] as each state is expanded, so memory grows with the number
// of discovered states, not with the size of the state space.
//
// # Algorithm
//
// The frontier is a binary heap ordered by f = g + h. Ties are broken by
// insertion order, which makes runs on the same input fully deterministic. A
// state's best known distance lives in a map whose absent entries mean
// "infinitely far"; a state is pushed again whenever a shorter route to it is
// found, and outdated heap entries are skipped when popped. The goal test runs
// on pop, so the first goal state popped carries an optimal distance whenever
// the heuristic never overestimates.
//
// # Heuristics
//
// [Manhattan] is the plain grid distance between the payload and the target.
// [MoveCost] accounts for the hole that has to be walked around the payload
// between payload steps and also detects states from which the payload can
// never move. Both are admissible. MoveCost is the default.
//
// # Outcomes
//
// Not finding a plan is a normal result, not an error:
//
//   - [StatusFound]: Result.Path holds an optimal plan.
//   - [StatusExhausted]: every reachable state was examined; no plan exists.
//   - [StatusBudgetExceeded]: the expansion budget ran out first; the
//     question is still open.
//
// Errors are reserved for invalid input, context cancellation and internal
// invariant violations (ErrCodeInvariant), which indicate a bug rather than a
// property of the puzzle.
//
//	res, err := search.Solve(ctx, g, initial, search.WithMaxExpansions(1_000_000))
//	if err != nil {
//	    return err
//	}
//	if res.Found() {
//	    fmt.Println("moves:", res.Length)
//	}
package search
