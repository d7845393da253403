package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	libmock "github.com/kozaktomas/photo-atlas/internal/library/mock"
	"github.com/kozaktomas/photo-atlas/internal/scanner"
	"github.com/kozaktomas/photo-atlas/internal/store"
	storemock "github.com/kozaktomas/photo-atlas/internal/store/mock"
)

func newTestServer(t *testing.T) (*Server, *storemock.Store) {
	t.Helper()
	st := storemock.New()
	sc := scanner.New(libmock.NewProvider(), st, scanner.Config{}, zerolog.Nop())
	return NewServer(":0", sc, st, zerolog.Nop()), st
}

func TestRoutes(t *testing.T) {
	server, st := newTestServer(t)
	if err := st.Set(context.Background(), store.KeyMediaStats, `{"localPhotos":1}`); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/status", http.StatusOK},
		{http.MethodGet, "/api/v1/stats", http.StatusOK},
		{http.MethodGet, "/api/v1/locations", http.StatusNotFound},
		{http.MethodGet, "/api/v1/trajectory", http.StatusNotFound},
		{http.MethodGet, "/api/v1/clusters", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/results", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			server.Router().ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Errorf("status = %d; want %d", rec.Code, tc.status)
			}
		})
	}
}
