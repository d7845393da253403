// Package store defines the key-value persistence contract for analysis
// results.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known result keys. Values are JSON documents.
const (
	KeyMediaStats     = "mediaStats"
	KeyPhotoLocations = "photoLocations"
	KeyTrajectory     = "worldLineLocations"
	KeyDenseClusters  = "denseClusters"
)

// ResultKeys lists every key a scan may write, in persistence order.
var ResultKeys = []string{KeyMediaStats, KeyPhotoLocations, KeyTrajectory, KeyDenseClusters}

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a string-keyed blob store. Implementations must allow
// concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backing resources.
	Close() error
}

// SaveJSON marshals v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// LoadJSON reads key and unmarshals it into v. ErrNotFound passes
// through so callers can distinguish absence from corruption.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
