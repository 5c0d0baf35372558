// Package server implements the anchorage HTTP API.
//
// # Endpoints
//
//	POST   /v1/solve         solve the scene in the request body
//	GET    /v1/layouts/{id}  fetch a stored layout
//	DELETE /v1/layouts/{id}  remove a stored layout
//	GET    /healthz          liveness and build information
//
// The scene format comes from the format query parameter or the request
// Content-Type, defaulting to TOML. Solve accepts strict, steps, store and
// formats (comma-separated svg, txt, dot, graph) query parameters.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchorage/pkg/httputil"
	"github.com/matzehuels/anchorage/pkg/pipeline"
	"github.com/matzehuels/anchorage/pkg/store"
)

// Defaults for Config.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 30 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner       *pipeline.Runner
	Store        store.Store // nil disables ?store and the layout endpoints
	Logger       *log.Logger
	MaxBodyBytes int64
	Timeout      time.Duration
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
}

// New creates a server. A nil runner gets an uncached one.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
		timeout: cfg.Timeout,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)
	r.Use(httputil.RequestLogger(s.logger))
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
	})
	return r
}
