// Package mock provides an in-memory store implementation for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/photo-atlas/internal/store"
)

// Store is an in-memory store.Store with error injection.
type Store struct {
	mu     sync.RWMutex
	values map[string]string

	// Track calls
	SetCalls    []string
	RemoveCalls []string

	// Error injection
	GetError    error
	SetError    error
	RemoveError error
}

// New creates an empty mock store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key, or store.ErrNotFound.
func (m *Store) Get(ctx context.Context, key string) (string, error) {
	if m.GetError != nil {
		return "", m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

// Set writes the value for key.
func (m *Store) Set(ctx context.Context, key, value string) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, key)
	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *Store) Remove(ctx context.Context, key string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, key)
	delete(m.values, key)
	return nil
}

// Close is a no-op.
func (m *Store) Close() error {
	return nil
}

// Len returns the number of stored keys.
func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

var _ store.Store = (*Store)(nil)
