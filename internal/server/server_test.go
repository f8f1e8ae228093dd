package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridshift/pkg/archive"
	"github.com/matzehuels/gridshift/pkg/buildinfo"
	"github.com/matzehuels/gridshift/pkg/cache"
	"github.com/matzehuels/gridshift/pkg/config"
	gsio "github.com/matzehuels/gridshift/pkg/io"
	"github.com/matzehuels/gridshift/pkg/observability"
	"github.com/matzehuels/gridshift/pkg/pipeline"
)

// examplePuzzle is the 3x3 sample grid; the payload starts at (2,0).
const examplePuzzle = `{
  "nodes": [
    {"x": 0, "y": 0, "capacity": 10, "used": 8},
    {"x": 1, "y": 0, "capacity": 9, "used": 7},
    {"x": 2, "y": 0, "capacity": 10, "used": 6},
    {"x": 0, "y": 1, "capacity": 11, "used": 6},
    {"x": 1, "y": 1, "capacity": 8, "used": 0},
    {"x": 2, "y": 1, "capacity": 9, "used": 8},
    {"x": 0, "y": 2, "capacity": 32, "used": 28},
    {"x": 1, "y": 2, "capacity": 11, "used": 7},
    {"x": 2, "y": 2, "capacity": 9, "used": 6}
  ]
}`

type testServer struct {
	*httptest.Server
	metrics *Metrics
}

func newTestServer(t *testing.T, mutate ...func(*config.ServerConfig)) *testServer {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	store, err := archive.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, store, logger)

	cfg := config.Default().Server
	for _, m := range mutate {
		m(&cfg)
	}

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	metrics.Register()

	srv := httptest.NewServer(New(runner, cfg, logger, metrics, reg).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
		observability.Reset()
	})
	return &testServer{Server: srv, metrics: metrics}
}

func (s *testServer) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(s.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(s.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func solveBody(extra string) string {
	return `{"puzzle": ` + examplePuzzle + extra + `}`
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
	body := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, buildinfo.Version, body["version"])
}

func TestSolve(t *testing.T) {
	s := newTestServer(t)

	resp := s.post(t, "/v1/solve", solveBody(""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decodeJSON[solveResponse](t, resp)
	require.NotNil(t, first.Plan)
	assert.True(t, first.Plan.Found())
	assert.Equal(t, 7, first.Plan.Length)
	assert.Len(t, first.Plan.Moves, 7)
	assert.False(t, first.CacheHit)
	assert.Equal(t, "(.) .  G\n .  _  .\n #  .  .\n", first.Map)
	assert.Len(t, first.PuzzleHash, 64)

	resp = s.post(t, "/v1/solve", solveBody(""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decodeJSON[solveResponse](t, resp)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Plan.ID, second.Plan.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.solves.WithLabelValues("move-cost", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.cache.WithLabelValues("plan", "hit")))
}

func TestSolveBudgetIsClamped(t *testing.T) {
	s := newTestServer(t, func(c *config.ServerConfig) { c.MaxExpansions = 1 })

	resp := s.post(t, "/v1/solve", solveBody(`, "max_expansions": 1000000`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeJSON[solveResponse](t, resp)
	assert.Equal(t, "budget_exceeded", got.Plan.Status.String())
	assert.Empty(t, got.Plan.Moves)
}

func TestSolveErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"Malformed", `{"puzzle": `, http.StatusBadRequest, "INVALID_FORMAT"},
		{"UnknownField", solveBody(`, "colour": "red"`), http.StatusBadRequest, "INVALID_FORMAT"},
		{"MissingPuzzle", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"EmptyGrid", `{"puzzle": {"nodes": []}}`, http.StatusBadRequest, "INVALID_LAYOUT"},
		{"Overflow", `{"puzzle": {"nodes": [{"x": 0, "y": 0, "capacity": 70000, "used": 1}]}}`, http.StatusBadRequest, "CAPACITY_OVERFLOW"},
		{"UnknownHeuristic", solveBody(`, "heuristic": "greedy"`), http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.post(t, "/v1/solve", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			got := decodeJSON[errorResponse](t, resp)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestSolveBodyTooLarge(t *testing.T) {
	s := newTestServer(t, func(c *config.ServerConfig) { c.MaxBodyBytes = 16 })
	resp := s.post(t, "/v1/solve", solveBody(""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestViable(t *testing.T) {
	s := newTestServer(t)
	resp := s.post(t, "/v1/viable", solveBody(""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeJSON[viableResponse](t, resp)
	assert.Equal(t, viableResponse{Nodes: 9, ViablePairs: 7, SingleHole: true}, got)
}

func TestRender(t *testing.T) {
	s := newTestServer(t)

	resp := s.post(t, "/v1/render", solveBody(`, "format": "txt", "max_moves": 1`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "found", resp.Header.Get("X-Plan-Status"))
	_, err := uuid.Parse(resp.Header.Get("X-Plan-Id"))
	assert.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("initial (found, 7 moves)\n")), string(body))
	assert.Contains(t, string(body), "... 6 more moves")

	resp = s.post(t, "/v1/render", solveBody(`, "format": "gif"`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlans(t *testing.T) {
	s := newTestServer(t)

	resp := s.post(t, "/v1/solve", solveBody(""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	solved := decodeJSON[solveResponse](t, resp)

	resp = s.get(t, "/v1/plans/"+solved.Plan.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decodeJSON[gsio.Plan](t, resp)
	assert.Equal(t, solved.Plan.ID, plan.ID)
	assert.Equal(t, solved.Plan.Moves, plan.Moves)

	resp = s.get(t, "/v1/plans/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.get(t, "/v1/plans/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.post(t, "/v1/solve", solveBody(""))

	resp := s.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gridshift_solves_total{heuristic="move-cost",status="found"} 1`)
	assert.Contains(t, string(body), `route="/v1/solve"`)
}

func TestOptionsClamp(t *testing.T) {
	s := &Server{cfg: config.ServerConfig{MaxExpansions: 100, Timeout: time.Second}}

	tests := []struct {
		name    string
		req     solveRequest
		wantExp int
		wantTO  time.Duration
	}{
		{"Defaults", solveRequest{}, 100, time.Second},
		{"Smaller", solveRequest{MaxExpansions: 10, TimeoutMS: 200}, 10, 200 * time.Millisecond},
		{"Larger", solveRequest{MaxExpansions: 1000, TimeoutMS: 5000}, 100, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := s.options(tt.req)
			assert.Equal(t, tt.wantExp, o.MaxExpansions)
			assert.Equal(t, tt.wantTO, o.Timeout)
		})
	}
}
