package search

import (
	"container/heap"
	"context"
	"time"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
)

// Progress is a snapshot of a running search, passed to the callback
// registered with [WithProgress].
type Progress struct {
	Expanded  int
	Generated int
	Frontier  int // entries on the heap, including outdated ones
	Known     int // states with a recorded distance
	BestF     int // f of the state just expanded; never decreases for consistent heuristics
	Elapsed   time.Duration
}

type options struct {
	heuristic     Heuristic
	maxExpansions int
	progress      func(Progress)
	progressEvery int
}

// Option configures [Solve].
type Option func(*options)

// WithHeuristic sets the heuristic. The default is [NewMoveCost] on the
// initial state.
func WithHeuristic(h Heuristic) Option {
	return func(o *options) { o.heuristic = h }
}

// WithMaxExpansions caps the number of expanded states. Zero or a negative
// value means no cap. When the cap is hit the result is
// [StatusBudgetExceeded].
func WithMaxExpansions(n int) Option {
	return func(o *options) { o.maxExpansions = n }
}

// WithProgress calls fn after every `every` expansions. The callback runs on
// the search goroutine and should return quickly.
func WithProgress(every int, fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
		o.progressEvery = max(every, 1)
	}
}

// cancellation is checked once per this many expansions
const ctxCheckInterval = 64

// Solve searches for the shortest sequence of moves that brings the payload of
// initial onto g's target node.
//
// An unreachable goal or an exhausted budget is reported through
// Result.Status, not as an error. Solve returns an error only if initial does
// not match g, if ctx is done, or if the move generator produced an illegal
// move (ErrCodeInvariant).
func Solve(ctx context.Context, g *grid.Grid, initial grid.State, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if initial.Len() != g.Len() {
		return nil, gserrors.New(gserrors.ErrCodeInvalidInput,
			"state has %d nodes, grid has %d", initial.Len(), g.Len())
	}
	if o.heuristic == nil {
		o.heuristic = NewMoveCost(g, initial)
	}

	s := &solver{
		g:     g,
		opts:  o,
		dist:  distances{initial: 0},
		pred:  map[grid.State]step{initial: {prev: initial}},
		start: time.Now(),
	}
	return s.run(ctx, initial)
}

type solver struct {
	g     *grid.Grid
	opts  options
	open  frontier
	dist  distances
	pred  map[grid.State]step
	seq   int
	start time.Time

	res Result
}

func (s *solver) push(st grid.State, g, h int) {
	heap.Push(&s.open, &frontierItem{state: st, g: g, f: g + h, seq: s.seq})
	s.seq++
}

func (s *solver) run(ctx context.Context, initial grid.State) (*Result, error) {
	h := s.opts.heuristic
	if h0 := h.Estimate(initial); h0 != Infinity {
		s.push(initial, 0, h0)
	}

	for s.open.Len() > 0 {
		if s.res.Expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		cur := heap.Pop(&s.open).(*frontierItem)
		if cur.g > s.dist.get(cur.state) {
			continue // a shorter route was found after this entry was pushed
		}
		if s.g.IsGoal(cur.state) {
			return s.finish(StatusFound, cur.state), nil
		}
		if s.opts.maxExpansions > 0 && s.res.Expanded >= s.opts.maxExpansions {
			return s.finish(StatusBudgetExceeded, grid.State{}), nil
		}

		if err := s.expand(cur, h); err != nil {
			return nil, err
		}
	}
	return s.finish(StatusExhausted, grid.State{}), nil
}

func (s *solver) expand(cur *frontierItem, h Heuristic) error {
	s.res.Expanded++

	edges := s.g.Edges(cur.state)
	for e, ok := edges.Next(); ok; e, ok = edges.Next() {
		if !s.g.Legal(cur.state, e.Move.Src, e.Move.Dst) {
			return gserrors.New(gserrors.ErrCodeInvariant,
				"move generator produced illegal move %d->%d from %s", e.Move.Src, e.Move.Dst, cur.state)
		}
		s.res.Generated++

		next := cur.g + 1
		if !s.dist.improve(e.To, next) {
			continue
		}
		s.pred[e.To] = step{prev: cur.state, move: e.Move}

		// A dead end keeps its distance so it is not re-evaluated, but is
		// never queued.
		if est := h.Estimate(e.To); est != Infinity {
			s.push(e.To, next, est)
		}
	}

	if p := s.opts.progress; p != nil && s.res.Expanded%s.opts.progressEvery == 0 {
		p(Progress{
			Expanded:  s.res.Expanded,
			Generated: s.res.Generated,
			Frontier:  s.open.Len(),
			Known:     len(s.dist),
			BestF:     cur.f,
			Elapsed:   time.Since(s.start),
		})
	}
	return nil
}

func (s *solver) finish(status Status, goal grid.State) *Result {
	res := s.res
	res.Status = status
	res.Duration = time.Since(s.start)
	if status == StatusFound {
		res.Path, res.Moves = path(s.pred, goal)
		res.Length = len(res.Moves)
	}
	return &res
}
