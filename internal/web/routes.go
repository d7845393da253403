package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-atlas/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	resultsHandler := handlers.NewResultsHandler(s.store)
	scanHandler := handlers.NewScanHandler(s.scanner)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/scan", scanHandler.Start)
		r.Get("/status", scanHandler.Status)

		r.Get("/stats", resultsHandler.Stats)
		r.Get("/locations", resultsHandler.Locations)
		r.Get("/trajectory", resultsHandler.Trajectory)
		r.Get("/clusters", resultsHandler.Clusters)
		r.Delete("/results", resultsHandler.Clear)
	})
}
