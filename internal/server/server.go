// Package server exposes layout computation over HTTP.
//
// Routes:
//
//	GET    /healthz                     liveness and version
//	POST   /v1/layouts                  lay out the graph in the body
//	GET    /v1/layouts/{id}             fetch a stored layout
//	GET    /v1/layouts/{id}/render      render a stored layout (?format=svg|png|pdf|dot|json)
//	DELETE /v1/layouts/{id}             remove a stored layout
//
// Layout options are passed as query parameters named like the config file
// keys (min_node_spacing, placer, prefix, ...).
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Server wraps an http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a server listening on addr.
func New(addr string, handler http.Handler, logger *log.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and shuts it down when ctx is cancelled, allowing
// in-flight requests the given grace period.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
