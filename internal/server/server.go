// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /render?format=tex|pdf|json   render the scene in the request body
//	GET  /renders/{id}                 fetch a previously rendered artifact
//	GET  /health                       liveness and build information
//
// Scenes from clients are built with RelativeOnly set, so image paths
// cannot escape the service's base directory. Text and style tokens reach
// the TeX source unchanged, so pdf renders compile Restricted: no shell
// escape, and no file access outside the base and build directories.
// Every rendered artifact is
// kept in the runner's cache under a fresh uuid for [cache.TTLRender].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tikzlayout/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	Addr         string
	MaxBodyBytes int64
	// Engine is the LaTeX binary used for pdf renders.
	Engine string
	// BaseDir resolves image paths referenced by scenes.
	BaseDir     string
	ProbeImages bool
}

// Server serves render requests.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server around runner. The runner's cache also stores the
// rendered artifacts addressed by /renders/{id}.
func New(runner *pipeline.Runner, opts Options, logger *log.Logger) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/health", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/renders/{id}", s.handleGetRender)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
