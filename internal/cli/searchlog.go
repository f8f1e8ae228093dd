package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridshift/pkg/search"
)

// heartbeatInterval is how often a running search logs a status line.
const heartbeatInterval = 10 * time.Second

// searchReporter logs A* progress: a line whenever the f-bound rises and a
// heartbeat every heartbeatInterval while the search keeps running.
//
// It is called from the search goroutine only and is not safe for concurrent
// use.
type searchReporter struct {
	prog    *progress
	logger  *log.Logger
	last    search.Progress
	lastF   int
	lastLog time.Time
	now     func() time.Time
}

// newSearchReporter creates a reporter that logs to the logger from ctx.
func newSearchReporter(ctx context.Context) *searchReporter {
	logger := loggerFromContext(ctx)
	return &searchReporter{
		prog:   newProgress(logger),
		logger: logger,
		lastF:  -1,
		now:    time.Now,
	}
}

// onProgress is the search.WithProgress callback.
//
// With a consistent heuristic BestF never decreases; each increase means every
// plan shorter than the new bound has been ruled out.
func (r *searchReporter) onProgress(p search.Progress) {
	r.last = p
	switch {
	case r.lastF < 0:
		r.logger.Debugf("Searching: bound %d (expanded: %d, frontier: %d)", p.BestF, p.Expanded, p.Frontier)
		r.lastLog = r.now()
	case p.BestF > r.lastF:
		r.logger.Infof("No plan shorter than %d moves (expanded: %d)", p.BestF, p.Expanded)
		r.lastLog = r.now()
	default:
		if r.now().Sub(r.lastLog) >= heartbeatInterval {
			r.logger.Infof("Searching... %v elapsed, %d expanded, %d on frontier, %d states known",
				p.Elapsed.Truncate(time.Second), p.Expanded, p.Frontier, p.Known)
			r.lastLog = r.now()
		}
	}
	r.lastF = p.BestF
}

// done logs the outcome of a finished search.
func (r *searchReporter) done(status search.Status, length, expanded int) {
	switch status {
	case search.StatusFound:
		r.prog.done("Solved in " + pluralMoves(length))
	case search.StatusExhausted:
		r.prog.done("No plan exists")
	default:
		r.prog.done("Search gave up")
		r.logger.Warnf("Expansion budget spent after %d states; try a larger --max-expansions", expanded)
	}
	if r.last.Expanded > 0 {
		r.logger.Debugf("Last report: %d on frontier, %d states known", r.last.Frontier, r.last.Known)
	}
}
