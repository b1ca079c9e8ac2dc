// Package api exposes the complexity analyzer over HTTP for editor
// plugins and CI scripts that prefer a long-lived process over
// repeated CLI invocations.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bigo/internal/analysis"
	"bigo/internal/auth"
	"bigo/internal/logging"
	"bigo/internal/store"
)

// Server represents the HTTP API server
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	repoRoot string
	logger   *logging.Logger
	analyzer *analysis.Analyzer
	store    store.Store
	auth     *auth.Manager
}

// Options carries the dependencies for a server. Store and Auth may be
// nil; the corresponding features degrade gracefully.
type Options struct {
	Addr     string
	RepoRoot string
	Store    store.Store
	Auth     *auth.Manager
	Logger   *logging.Logger
}

// NewServer creates a new HTTP server instance
func NewServer(opts Options) *Server {
	s := &Server{
		addr:     opts.Addr,
		repoRoot: opts.RepoRoot,
		logger:   opts.Logger,
		analyzer: analysis.NewAnalyzer(),
		store:    opts.Store,
		auth:     opts.Auth,
		router:   http.NewServeMux(),
	}

	// Register routes
	s.registerRoutes()

	// Create HTTP server with configured router and middleware
	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = AuthMiddleware(s.auth, s.logger)(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
