// Package server implements the daemon's HTTP configuration API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/automat-io/automat/internal/daemon/store"
)

// Server is the daemon's HTTP server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	port       int
	logger     *slog.Logger
}

// New creates a server listening on localhost at the specified port.
// Pass port 0 for dynamic allocation.
func New(ctx context.Context, port int, st store.Store, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	// Get actual port if dynamically allocated
	actualPort := listener.Addr().(*net.TCPAddr).Port

	return &Server{
		httpServer: &http.Server{
			Handler: NewHandler(st, logger),
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		listener: listener,
		port:     actualPort,
		logger:   logger,
	}, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve starts serving requests. This blocks until Shutdown is called.
func (s *Server) Serve() error {
	s.logger.Info("serving config API", "addr", s.listener.Addr().String())
	return s.httpServer.Serve(s.listener)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
