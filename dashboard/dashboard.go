// Package dashboard serves the relative performance dashboard over HTTP.
//
// Every request runs its own fetch, normalize and render cycle: there is no
// state shared between requests other than the provider.
package dashboard

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
	"github.com/etnz/relperf/renderer"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "dashboard")

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Server is an http.Handler for the dashboard.
type Server struct {
	provider relperf.Provider
	universe relperf.Universe
	tailRows int
	today    func() date.Date
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithUniverse sets the candidate tickers offered to the user.
func WithUniverse(u relperf.Universe) Option {
	return func(s *Server) { s.universe = u }
}

// WithTailRows sets the number of rows previewed in the report tables.
func WithTailRows(n int) Option {
	return func(s *Server) { s.tailRows = n }
}

// New returns a dashboard that fetches prices from p.
func New(p relperf.Provider, opts ...Option) *Server {
	s := &Server{
		provider: p,
		universe: relperf.DefaultUniverse(),
		tailRows: renderer.DefaultTailRows,
		today:    date.Today,
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/relative", s.handleRelative)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler. Every request is logged with a request id.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set("X-Request-Id", id)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()

	s.mux.ServeHTTP(rec, r)

	entry := log.WithFields(logrus.Fields{
		"request_id": id,
		"method":     r.Method,
		"path":       r.URL.Path,
		"query":      r.URL.RawQuery,
		"status":     rec.status,
		"duration":   time.Since(start).String(),
	})
	if rec.status >= http.StatusInternalServerError {
		entry.Warn("request failed")
		return
	}
	entry.Info("request")
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ListenAndServe serves the dashboard on addr until the server fails.
func ListenAndServe(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.WithField("addr", addr).Info("dashboard listening")
	return srv.ListenAndServe()
}
