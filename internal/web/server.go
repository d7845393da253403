// Package web serves the HTTP API over the scanner and its results.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kozaktomas/photo-atlas/internal/scanner"
	"github.com/kozaktomas/photo-atlas/internal/store"
)

// Server represents the web server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	scanner    *scanner.Scanner
	store      store.Store
	log        zerolog.Logger
}

// NewServer creates a new web server.
func NewServer(listen string, sc *scanner.Scanner, st store.Store, log zerolog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:  r,
		scanner: sc,
		store:   st,
		log:     log,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting web server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down web server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
