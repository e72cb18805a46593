// Package memstore is a process-local key-value store with no dependencies,
// so the browser build can fall back to it without pulling in the server
// backends.
package memstore

import (
	"context"
	"sync"
)

// Store keeps values for the lifetime of the process only.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

func New() *Store {
	return &Store{items: make(map[string]string)}
}

func (m *Store) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Store) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *Store) Close() error { return nil }
