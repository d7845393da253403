package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/photo-atlas/internal/store"
	storemock "github.com/kozaktomas/photo-atlas/internal/store/mock"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q; want ok", body["status"])
	}
}

func TestResultsServeStored(t *testing.T) {
	st := storemock.New()
	if err := st.Set(context.Background(), store.KeyMediaStats, `{"localPhotos":42}`); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	h := NewResultsHandler(st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"localPhotos":42}` {
		t.Errorf("body = %q; want the stored document verbatim", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestResultsMissing(t *testing.T) {
	h := NewResultsHandler(storemock.New())

	endpoints := map[string]http.HandlerFunc{
		"stats":      h.Stats,
		"locations":  h.Locations,
		"trajectory": h.Trajectory,
		"clusters":   h.Clusters,
	}

	for name, handler := range endpoints {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/"+name, nil)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d; want 404 before any scan", rec.Code)
			}
		})
	}
}

func TestResultsStoreFailure(t *testing.T) {
	st := storemock.New()
	st.GetError = errors.New("backend down")
	h := NewResultsHandler(st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want 500", rec.Code)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	st := storemock.New()
	for _, key := range store.ResultKeys {
		if err := st.Set(ctx, key, "{}"); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	h := NewResultsHandler(st)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/results", nil)
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if st.Len() != 0 {
		t.Errorf("%d keys left after clear; want 0", st.Len())
	}
}

func TestClearStoreFailure(t *testing.T) {
	st := storemock.New()
	st.RemoveError = errors.New("backend down")
	h := NewResultsHandler(st)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/results", nil)
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want 500", rec.Code)
	}
}
