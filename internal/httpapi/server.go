// Package httpapi exposes route building, activity metrics, graph reload and
// the static map front-end over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/graphstore"
	"github.com/katalvlaran/cabinetroute/internal/logging"
	"github.com/katalvlaran/cabinetroute/internal/metrics"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Router answers route queries by cabinet name.
type Router interface {
	FindPath(startName, endName string) (core.Route, error)
}

// Source yields the current graph snapshot.
type Source interface {
	Snapshot() (*graphstore.Snapshot, error)
}

// Reloader swaps in a freshly loaded snapshot.
type Reloader interface {
	Reload() (*graphstore.Snapshot, error)
}

// Recorder stores activity reports.
type Recorder interface {
	Record(ctx context.Context, a metrics.Activity) (metrics.Activity, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = logging.OrDiscard(log) }
}

// WithReloader enables POST /api/graph/reload.
func WithReloader(r Reloader) Option {
	return func(s *Server) { s.reloader = r }
}

// WithRecorder stores POST /api/metric/build bodies. Without it reports are
// accepted and dropped.
func WithRecorder(r Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// WithStaticDir serves files from dir for every path outside /api.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// WithRequestID replaces the request ID generator.
func WithRequestID(gen func() string) Option {
	return func(s *Server) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Server holds the handlers and their dependencies.
type Server struct {
	router    Router
	source    Source
	reloader  Reloader
	recorder  Recorder
	staticDir string
	log       *slog.Logger
	newID     func() string
	counters  *Counters
	started   time.Time
}

// New returns a Server answering routes with router and reading cabinet
// names from source.
func New(router Router, source Source, opts ...Option) *Server {
	s := &Server{
		router:   router,
		source:   source,
		log:      logging.Discard(),
		newID:    uuid.NewString,
		counters: &Counters{},
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Counters returns the live request counters.
func (s *Server) Counters() *Counters { return s.counters }

// Handler returns the full HTTP handler with request ID and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/route/build", s.handleRoute)
	mux.HandleFunc("POST /api/metric/build", s.handleMetric)
	mux.HandleFunc("POST /api/graph/reload", s.handleReload)
	mux.HandleFunc("GET /api/cabinets", s.handleCabinets)
	mux.HandleFunc("GET /names.json", s.handleNamesFile)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.counters.handler(s.started))
	if s.staticDir != "" {
		mux.Handle("GET /", s.static())
	}

	return s.withRequestID(mux)
}

// static serves staticDir, falling back to index.html for unknown paths so
// client-side pages resolve.
func (s *Server) static() http.Handler {
	files := http.FileServer(http.Dir(s.staticDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if strings.HasPrefix(clean, "/api/") {
			writeError(w, http.StatusNotFound, "unknown endpoint")
			return
		}
		full := filepath.Join(s.staticDir, filepath.FromSlash(clean))
		if info, err := os.Stat(full); err != nil || (info.IsDir() && clean != "/") {
			r2 := r.Clone(r.Context())
			r2.URL.Path = "/"
			files.ServeHTTP(w, r2)
			return
		}
		files.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

// RequestID returns the request ID stored by the middleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)

	return id
}

// statusWriter records the status code for access logs.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = s.newID()
		}
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		s.log.Info("http request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.Duration("took", time.Since(start)),
		)
	})
}
