// Package memory provides an in-memory ResourceStore for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ResourceStore = (*Store)(nil)

// Store is an in-memory implementation of driven.ResourceStore.
type Store struct {
	mu        sync.RWMutex
	resources map[string]domain.Resource
	saves     int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{resources: make(map[string]domain.Resource)}
}

// Get retrieves a resource by id.
func (s *Store) Get(_ context.Context, id string) (*domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.resources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &res, nil
}

// Put inserts or replaces a resource.
func (s *Store) Put(_ context.Context, res *domain.Resource) error {
	if res == nil || res.ID() == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[res.ID()] = *res
	return nil
}

// Delete removes a resource by id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.resources, id)
	return nil
}

// List returns all resources in unspecified order.
func (s *Store) List(_ context.Context) ([]domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Resource, 0, len(s.resources))
	for id := range s.resources {
		out = append(out, s.resources[id])
	}
	return out, nil
}

// Count returns the number of stored resources.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources), nil
}

// Save is a no-op for the in-memory store. It counts invocations so
// tests can assert autosave behaviour.
func (s *Store) Save(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
