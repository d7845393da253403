//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kozaktomas/photo-atlas/internal/store"
)

func setupTestContainer(t *testing.T) (*Store, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}
	if container == nil {
		t.Skip("Docker not available, skipping integration test")
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dbURL := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s, err := Open(ctx, dbURL)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to open store: %v", err)
	}

	cleanup := func() {
		s.Close()
		container.Terminate(ctx)
	}

	return s, cleanup
}

func TestStore(t *testing.T) {
	s, cleanup := setupTestContainer(t)
	if s == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		if _, err := s.Get(ctx, store.KeyMediaStats); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get on empty store = %v; want ErrNotFound", err)
		}
	})

	t.Run("SetAndGet", func(t *testing.T) {
		if err := s.Set(ctx, store.KeyMediaStats, `{"localPhotos":5}`); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := s.Get(ctx, store.KeyMediaStats)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != `{"localPhotos":5}` {
			t.Errorf("Get = %q; want stored value", got)
		}
	})

	t.Run("SetReplaces", func(t *testing.T) {
		if err := s.Set(ctx, store.KeyMediaStats, `{"localPhotos":6}`); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := s.Get(ctx, store.KeyMediaStats)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != `{"localPhotos":6}` {
			t.Errorf("Get = %q; want the replaced value", got)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := s.Remove(ctx, store.KeyMediaStats); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if _, err := s.Get(ctx, store.KeyMediaStats); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get after Remove = %v; want ErrNotFound", err)
		}
		if err := s.Remove(ctx, "never-written"); err != nil {
			t.Errorf("Remove absent key: %v", err)
		}
	})
}
