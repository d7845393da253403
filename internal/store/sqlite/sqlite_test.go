package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/photo-atlas/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "atlas.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Get(ctx, store.KeyMediaStats); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get on empty store = %v; want ErrNotFound", err)
	}

	if err := s.Set(ctx, store.KeyMediaStats, `{"localPhotos":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, store.KeyMediaStats)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"localPhotos":1}` {
		t.Errorf("Get = %q; want stored value", got)
	}

	if err := s.Remove(ctx, store.KeyMediaStats); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(ctx, store.KeyMediaStats); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Remove = %v; want ErrNotFound", err)
	}

	// Removing an absent key must be a no-op.
	if err := s.Remove(ctx, "never-written"); err != nil {
		t.Errorf("Remove absent key: %v", err)
	}
}

func TestSetReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Set(ctx, store.KeyTrajectory, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, store.KeyTrajectory, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set again: %v", err)
	}

	got, err := s.Get(ctx, store.KeyTrajectory)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `[{"id":"a"}]` {
		t.Errorf("Get = %q; want the replaced value", got)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "atlas.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, store.KeyDenseClusters, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, store.KeyDenseClusters)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != "[]" {
		t.Errorf("Get after reopen = %q; want []", got)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	in := map[string]int{"a": 1, "b": 2}
	if err := store.SaveJSON(ctx, s, "doc", in); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	var out map[string]int
	if err := store.LoadJSON(ctx, s, "doc", &out); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Errorf("LoadJSON = %v; want %v", out, in)
	}

	var missing map[string]int
	if err := store.LoadJSON(ctx, s, "absent", &missing); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("LoadJSON absent key = %v; want ErrNotFound", err)
	}
}
