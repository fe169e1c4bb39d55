package memory

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-oauth2-client/storage"
)

var _ storage.Store[struct{}] = (*Store[struct{}])(nil)

// Store is a thread-safe in-memory implementation of storage.Store
type Store[V any] struct {
	mu     sync.RWMutex
	values map[string]V
}

// New creates an empty in-memory store
func New[V any]() *Store[V] {
	return &Store[V]{
		values: make(map[string]V),
	}
}

// Set stores or replaces the value for key
func (s *Store[V]) Set(_ context.Context, key string, value V) (V, bool, error) {
	var zero V
	if key == "" {
		return zero, false, storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, replaced := s.values[key]
	// Store a copy so later changes by the caller are not visible
	s.values[key] = storage.Clone(value)
	return previous, replaced, nil
}

// Get retrieves the value for key
func (s *Store[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	if key == "" {
		return zero, storage.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return zero, storage.ErrNotFound
	}
	return storage.Clone(value), nil
}

// Drop removes the value for key and returns it
func (s *Store[V]) Drop(_ context.Context, key string) (V, error) {
	var zero V
	if key == "" {
		return zero, storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.values[key]
	if !exists {
		return zero, storage.ErrNotFound
	}
	delete(s.values, key)
	return value, nil
}

func (s *Store[V]) Has(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, storage.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.values[key]
	return exists, nil
}

// Len returns the number of pending entries
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
