// Package server exposes search and amendment drafting over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/amend"
	"github.com/coolbeans/lawamend/pkg/search"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Runner performs the searches and drafting the server exposes.
type Runner interface {
	Search(ctx context.Context, query string) ([]search.LawResult, error)
	Amend(ctx context.Context, find, replacement string) ([]amend.Amendment, error)
}

// Server is the HTTP API server for lawamend.
type Server struct {
	router  chi.Router
	runner  Runner
	logger  zerolog.Logger
	version string
}

// NewServer creates and configures the HTTP server.
func NewServer(runner Runner, logger zerolog.Logger, version string) *Server {
	server := &Server{
		runner:  runner,
		logger:  logger,
		version: version,
	}
	server.setupRoutes()
	return server
}

func (server *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	server.router.ServeHTTP(w, r)
}

func (server *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(server.logger))

	r.Get("/health", server.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", server.handleSearch)
		r.Get("/amend", server.handleAmend)
	})

	server.router = r
}

// ListenAndServe serves handler on addr until ctx is done, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		zerolog.Ctx(ctx).Info().Str("addr", addr).Msg("listening")
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Errorf("shutdown failed: %w", err)
	}
	<-serveErr
	return nil
}
