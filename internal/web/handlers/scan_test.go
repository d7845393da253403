package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kozaktomas/photo-atlas/internal/library"
	libmock "github.com/kozaktomas/photo-atlas/internal/library/mock"
	"github.com/kozaktomas/photo-atlas/internal/scanner"
	storemock "github.com/kozaktomas/photo-atlas/internal/store/mock"
)

func newTestScanner(provider library.Provider) *scanner.Scanner {
	return scanner.New(provider, storemock.New(), scanner.Config{}, zerolog.Nop())
}

func waitForIdle(t *testing.T, sc *scanner.Scanner) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for sc.Status().IsProcessing {
		select {
		case <-deadline:
			t.Fatal("scan did not finish")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestScanStart(t *testing.T) {
	provider := libmock.NewProvider()
	provider.AddAsset(library.Asset{ID: "a1", Kind: library.KindPhoto, Filename: "a.jpg"}, nil)
	sc := newTestScanner(provider)
	h := NewScanHandler(sc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
	rec := httptest.NewRecorder()
	h.Start(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d; want 202", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["runId"] == "" {
		t.Error("response missing runId")
	}

	waitForIdle(t, sc)
}

func TestScanStartPermissionDenied(t *testing.T) {
	provider := libmock.NewProvider()
	provider.PermissionDenied = true
	h := NewScanHandler(newTestScanner(provider))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil)
	rec := httptest.NewRecorder()
	h.Start(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d; want 403", rec.Code)
	}
}

func TestScanStatus(t *testing.T) {
	provider := libmock.NewProvider()
	provider.AddAsset(library.Asset{ID: "a1", Kind: library.KindPhoto, Filename: "a.jpg"}, nil)
	sc := newTestScanner(provider)
	h := NewScanHandler(sc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var status scanner.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.IsProcessing {
		t.Error("idle scanner reported as processing")
	}
}
