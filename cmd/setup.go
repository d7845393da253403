package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/library/immich"
	"github.com/kozaktomas/photo-atlas/internal/store"
	"github.com/kozaktomas/photo-atlas/internal/store/postgres"
	"github.com/kozaktomas/photo-atlas/internal/store/sqlite"
)

// newStore opens the result store selected by the configuration.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		s, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newProvider creates the Immich library client.
func newProvider(cfg *config.Config) (*immich.Immich, error) {
	if cfg.Immich.URL == "" {
		return nil, fmt.Errorf("IMMICH_URL not set")
	}
	im, err := immich.New(cfg.Immich.URL, cfg.Immich.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Immich client: %w", err)
	}
	return im, nil
}
