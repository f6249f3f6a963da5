// Package server implements the depgraph HTTP API.
//
// The API analyzes graphs sent in the request body; it never reads local
// files or queries registries. Every response carries an analysis id, also
// returned in the X-Analysis-ID header, that matches the server log line of
// the request.
//
//	POST /v1/traverse  breadth-first walk from "root"
//	POST /v1/order     load order of the whole graph
//	POST /v1/export    D2 edge list of the walk (or of every edge with "all")
//	GET  /healthz      liveness and version
//
// A request body holds exactly one of "graph" (name to dependency list),
// "text" (test graph lines "A: B C") or "nodes" (JSON document nodes).
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = "127.0.0.1:8080"

	// ShutdownTimeout bounds graceful shutdown in [Server.Run].
	ShutdownTimeout = 10 * time.Second
)

// Server wraps an http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a server for handler on addr.
func New(addr string, handler http.Handler, logger *log.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start listens and serves until the server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener. It returns nil after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting API server", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
