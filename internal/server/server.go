// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//	GET    /healthz              liveness probe
//	POST   /v1/layouts           compute a layout (optionally persisted)
//	GET    /v1/layouts           list persisted layouts
//	GET    /v1/layouts/{id}      fetch a persisted layout
//	GET    /v1/layouts/{id}/svg  render a persisted layout as SVG
//	DELETE /v1/layouts/{id}      delete a persisted layout
//
// Requests share one pipeline Runner, so the layout cache is shared across
// all API consumers.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jentor/strata/pkg/observability"
	"github.com/jentor/strata/pkg/pipeline"
	"github.com/jentor/strata/pkg/store"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The store may be nil, which disables persistence:
// POST still computes layouts but nothing is saved and the fetch endpoints
// return 404.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Routes builds the HTTP handler with all middleware and endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCompute)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/svg", s.handleSVG)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// observe emits request events to the registered server hooks and writes an
// access log line per request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(req.Context(), req.Method, req.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		elapsed := time.Since(start)
		observability.Server().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", elapsed)
	})
}
