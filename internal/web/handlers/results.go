package handlers

import (
	"errors"
	"net/http"

	"github.com/kozaktomas/photo-atlas/internal/store"
)

// ResultsHandler serves persisted analysis results.
type ResultsHandler struct {
	store store.Store
}

// NewResultsHandler creates a results handler.
func NewResultsHandler(st store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// serve writes the stored document for key verbatim. Results are
// persisted as JSON, so no re-encoding is needed.
func (h *ResultsHandler) serve(w http.ResponseWriter, r *http.Request, key string) {
	raw, err := h.store.Get(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no results yet, run a scan first")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read results")
		return
	}
	respondRawJSON(w, http.StatusOK, raw)
}

// Stats serves the media statistics snapshot.
func (h *ResultsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, store.KeyMediaStats)
}

// Locations serves the full geotag list.
func (h *ResultsHandler) Locations(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, store.KeyPhotoLocations)
}

// Trajectory serves the simplified movement trajectory.
func (h *ResultsHandler) Trajectory(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, store.KeyTrajectory)
}

// Clusters serves the dense cluster list.
func (h *ResultsHandler) Clusters(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, store.KeyDenseClusters)
}

// Clear removes every persisted result.
func (h *ResultsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	for _, key := range store.ResultKeys {
		if err := h.store.Remove(r.Context(), key); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to clear results")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
