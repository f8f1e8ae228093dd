package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridshift/pkg/buildinfo"
	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/pipeline"
	"github.com/matzehuels/gridshift/pkg/render"
)

// solveRequest is the body of /v1/solve, /v1/render and /v1/viable.
type solveRequest struct {
	Puzzle        *gsio.Puzzle `json:"puzzle"`
	Heuristic     string       `json:"heuristic,omitempty"`
	MaxExpansions int          `json:"max_expansions,omitempty"`
	TimeoutMS     int64        `json:"timeout_ms,omitempty"`
	Refresh       bool         `json:"refresh,omitempty"`

	// render only
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	MaxMoves int    `json:"max_moves,omitempty"`
}

type solveResponse struct {
	Plan       *gsio.Plan `json:"plan"`
	PuzzleHash string     `json:"puzzle_hash"`
	CacheHit   bool       `json:"cache_hit"`
	Map        string     `json:"map"`
}

type viableResponse struct {
	Nodes       int  `json:"nodes"`
	ViablePairs int  `json:"viable_pairs"`
	SingleHole  bool `json:"single_hole"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, g, initial, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Solve(r.Context(), g, initial, s.options(req))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{
		Plan:       res.Plan,
		PuzzleHash: res.PuzzleHash,
		CacheHit:   res.CacheHit,
		Map:        render.Map(g, initial),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, g, initial, ok := s.decode(w, r)
	if !ok {
		return
	}
	opts := s.options(req)
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	opts.Formats = []string{req.Format}
	opts.Detailed = req.Detailed
	opts.MaxMoves = req.MaxMoves

	res, err := s.runner.Solve(r.Context(), g, initial, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("X-Plan-Id", res.Plan.ID)
	w.Header().Set("X-Plan-Status", res.Plan.Status.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[req.Format])
}

func (s *Server) handleViable(w http.ResponseWriter, r *http.Request) {
	_, g, initial, ok := s.decode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viableResponse{
		Nodes:       g.Len(),
		ViablePairs: grid.ViablePairCount(g, initial),
		SingleHole:  g.Holes(initial).Single(),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.runner.Plan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// decode reads a solveRequest and builds its puzzle. On failure it writes the
// error response and returns ok == false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (req solveRequest, g *grid.Grid, initial grid.State, ok bool) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Code:    string(gserrors.ErrCodeInvalidInput),
				Message: "request body too large",
			})
			return req, nil, grid.State{}, false
		}
		s.writeError(w, gserrors.Wrap(gserrors.ErrCodeInvalidFormat, err, "decode request"))
		return req, nil, grid.State{}, false
	}
	if req.Puzzle == nil {
		s.writeError(w, gserrors.New(gserrors.ErrCodeInvalidInput, "puzzle is required"))
		return req, nil, grid.State{}, false
	}
	g, initial, err := req.Puzzle.Build()
	if err != nil {
		s.writeError(w, err)
		return req, nil, grid.State{}, false
	}
	return req, g, initial, true
}

// options turns a request into pipeline options, clamped to the server's
// per-request budget.
func (s *Server) options(req solveRequest) pipeline.Options {
	maxExp := s.cfg.MaxExpansions
	if req.MaxExpansions > 0 && req.MaxExpansions < maxExp {
		maxExp = req.MaxExpansions
	}
	timeout := s.cfg.Timeout
	if d := time.Duration(req.TimeoutMS) * time.Millisecond; d > 0 && d < timeout {
		timeout = d
	}
	return pipeline.Options{
		Heuristic:     req.Heuristic,
		MaxExpansions: maxExp,
		Timeout:       timeout,
		Refresh:       req.Refresh,
		Logger:        s.logger,
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := gserrors.HTTPStatus(err)
	code := string(gserrors.GetCode(err))
	msg := gserrors.UserMessage(err)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = http.StatusServiceUnavailable, "TIMEOUT", "search did not finish within the request timeout"
	case errors.Is(err, context.Canceled):
		status, code, msg = 499, "CANCELED", "request canceled"
	case code == "":
		code = string(gserrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
