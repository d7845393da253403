package handlers

import (
	"errors"
	"net/http"

	"github.com/kozaktomas/photo-atlas/internal/scanner"
)

// ScanHandler starts scans and reports their progress.
type ScanHandler struct {
	scanner *scanner.Scanner
}

// NewScanHandler creates a scan handler.
func NewScanHandler(sc *scanner.Scanner) *ScanHandler {
	return &ScanHandler{scanner: sc}
}

// Start launches a background scan. Only one scan may run at a time.
func (h *ScanHandler) Start(w http.ResponseWriter, r *http.Request) {
	runID, err := h.scanner.Start(r.Context())
	switch {
	case errors.Is(err, scanner.ErrAlreadyRunning):
		respondError(w, http.StatusConflict, "a scan is already running")
	case errors.Is(err, scanner.ErrPermissionDenied):
		respondError(w, http.StatusForbidden, "library access denied")
	case err != nil:
		respondError(w, http.StatusBadGateway, "could not start scan: "+err.Error())
	default:
		respondJSON(w, http.StatusAccepted, map[string]string{"runId": runID})
	}
}

// Status reports the current scanner state.
func (h *ScanHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.scanner.Status())
}
