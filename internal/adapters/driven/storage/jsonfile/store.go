// Package jsonfile is the canonical ResourceStore: a single JSON
// document mapping content ids to resources, with a one-generation
// backup written before every save.
//
// The store is single-writer by design. There is no file locking;
// concurrent processes writing the same path will race. That is a
// documented limitation of the format, not something this package
// tries to fix.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
	"github.com/custodia-labs/knowbase-cli/internal/core/ports/driven"
	"github.com/custodia-labs/knowbase-cli/internal/logger"
)

// DefaultPath is the conventional store location relative to the data
// directory.
const DefaultPath = "data/unified_knowledge_base.json"

// backupSuffix replaces ".json" on the previous generation.
const backupSuffix = ".backup.json"

// Ensure Store implements the interface.
var _ driven.ResourceStore = (*Store)(nil)

// Store is a JSON-file-backed resource store. All resources are held
// in memory; Save writes the whole mapping back out.
type Store struct {
	mu        sync.RWMutex
	path      string
	resources map[string]domain.Resource
}

// NewStore opens (or creates) the store at path. A missing file starts
// an empty store; an unreadable or corrupt file logs a warning and
// also starts empty, so a damaged store never takes the tool down.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	s := &Store{
		path:      path,
		resources: make(map[string]domain.Resource),
	}
	s.load()
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// load reads the backing file into memory. Failures degrade to an
// empty store; the caller decides whether that is fatal.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no knowledge base at %s, starting fresh", s.path)
			return
		}
		logger.Error("reading knowledge base %s: %v (starting empty)", s.path, err)
		return
	}

	var resources map[string]domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		logger.Error("parsing knowledge base %s: %v (starting empty)", s.path, err)
		return
	}

	s.resources = resources
	logger.Info("loaded %d resources from %s", len(resources), s.path)
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

// Put inserts or replaces a resource keyed by its id.
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

// Save writes the store to disk: the previous file is renamed to a
// .backup.json sibling first, then the new generation is written as
// pretty-printed JSON with HTML escaping off so non-ASCII titles stay
// readable. A failed write never touches the in-memory state, so a
// retry is always possible.
func (s *Store) Save(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.backupPath()); err != nil {
			return fmt.Errorf("rotating backup: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating store file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.resources); err != nil {
		f.Close()
		return fmt.Errorf("encoding store: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing store file: %w", err)
	}

	logger.Info("saved %d resources to %s", len(s.resources), s.path)
	return nil
}

// backupPath derives the .backup.json sibling path.
func (s *Store) backupPath() string {
	if strings.HasSuffix(s.path, ".json") {
		return strings.TrimSuffix(s.path, ".json") + backupSuffix
	}
	return s.path + backupSuffix
}
