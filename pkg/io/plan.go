package io

import (
	"encoding/json"
	"io"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
	"github.com/matzehuels/gridshift/pkg/search"
)

// PlanMove is one move of a plan in grid coordinates.
type PlanMove struct {
	From    Coord  `json:"from"`
	To      Coord  `json:"to"`
	Units   uint64 `json:"units"`
	Payload bool   `json:"payload,omitempty"` // the move carries the payload
}

// Plan is the JSON form of a search result.
type Plan struct {
	ID         string        `json:"id,omitempty"`
	Status     search.Status `json:"status"`
	Length     int           `json:"length"`
	Moves      []PlanMove    `json:"moves"`
	Expanded   int           `json:"expanded"`
	Generated  int           `json:"generated"`
	DurationMS int64         `json:"duration_ms"`
	Heuristic  string        `json:"heuristic,omitempty"`
}

// NewPlan converts a search result on g starting at initial into a plan.
// Moves are replayed from initial so each carries its data volume.
func NewPlan(g *grid.Grid, initial grid.State, res *search.Result) *Plan {
	p := &Plan{
		Status:     res.Status,
		Length:     res.Length,
		Moves:      make([]PlanMove, 0, len(res.Moves)),
		Expanded:   res.Expanded,
		Generated:  res.Generated,
		DurationMS: res.Duration.Milliseconds(),
	}
	cur := initial
	for _, m := range res.Moves {
		from, to := g.Node(m.Src), g.Node(m.Dst)
		p.Moves = append(p.Moves, PlanMove{
			From:    Coord{X: from.X, Y: from.Y},
			To:      Coord{X: to.X, Y: to.Y},
			Units:   uint64(cur.Usage(m.Src)),
			Payload: m.Src == cur.Payload(),
		})
		cur = cur.ApplyMove(m.Src, m.Dst)
	}
	return p
}

// Found reports whether the plan reaches the goal.
func (p *Plan) Found() bool { return p.Status == search.StatusFound }

// Replay maps the plan's moves back onto node indices of g and checks that
// each one is legal from initial. It returns the visited states, initial
// first.
func (p *Plan) Replay(g *grid.Grid, initial grid.State) ([]grid.State, error) {
	states, _, err := p.walk(g, initial)
	return states, err
}

// GridMoves is like Replay but returns the moves as node indices.
func (p *Plan) GridMoves(g *grid.Grid, initial grid.State) ([]grid.Move, error) {
	_, moves, err := p.walk(g, initial)
	return moves, err
}

func (p *Plan) walk(g *grid.Grid, initial grid.State) ([]grid.State, []grid.Move, error) {
	states := []grid.State{initial}
	moves := make([]grid.Move, 0, len(p.Moves))
	cur := initial
	for i, m := range p.Moves {
		src, ok1 := g.Index(m.From.X, m.From.Y)
		dst, ok2 := g.Index(m.To.X, m.To.Y)
		if !ok1 || !ok2 || !g.Legal(cur, src, dst) {
			return nil, nil, gserrors.New(gserrors.ErrCodeInvalidInput,
				"move %d (%d,%d)->(%d,%d) is not legal", i, m.From.X, m.From.Y, m.To.X, m.To.Y)
		}
		cur = cur.ApplyMove(src, dst)
		states = append(states, cur)
		moves = append(moves, grid.Move{Src: src, Dst: dst})
	}
	return states, moves, nil
}

// ReadPlan decodes a JSON plan from r.
func ReadPlan(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, gserrors.Wrap(gserrors.ErrCodeInvalidFormat, err, "decode plan")
	}
	return &p, nil
}

// WritePlan encodes p as indented JSON.
func WritePlan(w io.Writer, p *Plan) error {
	return writeIndented(w, p)
}
