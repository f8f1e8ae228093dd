package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/gridshift/pkg/observability"
)

// Metrics collects Prometheus metrics for HTTP requests and, registered as
// observability hooks, for the solve pipeline.
type Metrics struct {
	requests      *prometheus.HistogramVec
	solves        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	expanded      prometheus.Histogram
	renders       *prometheus.HistogramVec
	cache         *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	archiveSaves  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "gridshift_http_request_duration_seconds",
			Help: "Duration of HTTP requests",
		}, []string{"method", "route", "status"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridshift_solves_total",
			Help: "Searches run, by heuristic and outcome",
		}, []string{"heuristic", "status"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridshift_solve_duration_seconds",
			Help:    "Duration of searches",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"heuristic"}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridshift_solve_expanded_states",
			Help:    "States expanded per search",
			Buckets: prometheus.ExponentialBuckets(10, 10, 8),
		}),
		renders: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "gridshift_render_duration_seconds",
			Help: "Duration of plan rendering",
		}, []string{"format", "result"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridshift_cache_events_total",
			Help: "Cache lookups and writes",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridshift_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}, []string{"key_type"}),
		archiveSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridshift_archive_saves_total",
			Help: "Plan archive writes",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.solves, m.solveDuration, m.expanded,
		m.renders, m.cache, m.cacheBytes, m.archiveSaves)
	return m
}

// Middleware records request durations by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) OnSolveStart(context.Context, string, int) {}

func (m *Metrics) OnSolveComplete(_ context.Context, heuristic, status string, expanded int, d time.Duration, err error) {
	if err != nil {
		status = "error"
	}
	m.solves.WithLabelValues(heuristic, status).Inc()
	if err == nil {
		m.solveDuration.WithLabelValues(heuristic).Observe(d.Seconds())
		m.expanded.Observe(float64(expanded))
	}
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	m.renders.WithLabelValues(format, result(err)).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cache.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnArchiveSave(_ context.Context, _ time.Duration, err error) {
	m.archiveSaves.WithLabelValues(result(err)).Inc()
}

// Register installs m as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetArchiveHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.ArchiveHooks  = (*Metrics)(nil)
)
