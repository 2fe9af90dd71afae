package dataset

import (
	"sync"

	"github.com/google/uuid"

	"linal/internal/errs"
	"linal/internal/schema"
)

// Store is a database's dataset namespace: every dataset it owns, indexed
// by both name and ID, guarded by a single mutex (one logical writer per
// database instance, per the engine's concurrency model).
type Store struct {
	mu       sync.RWMutex
	byName   map[string]*Dataset
	byID     map[uuid.UUID]*Dataset
}

// NewStore constructs an empty dataset store.
func NewStore() *Store {
	return &Store{byName: make(map[string]*Dataset), byID: make(map[uuid.UUID]*Dataset)}
}

// Create registers a new, empty dataset under name with schema s.
func (s *Store) Create(name string, schema schema.Schema) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[name]; exists {
		return nil, &errs.AlreadyExists{Kind: "dataset", Name: name}
	}
	d := New(name, schema)
	s.byName[name] = d
	s.byID[d.ID] = d
	return d, nil
}

// GetByName returns the named dataset.
func (s *Store) GetByName(name string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byName[name]
	if !ok {
		return nil, &errs.NotFound{Kind: "dataset", Name: name}
	}
	return d, nil
}

// GetByID returns the dataset with the given ID.
func (s *Store) GetByID(id uuid.UUID) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	if !ok {
		return nil, &errs.NotFound{Kind: "dataset", Name: id.String()}
	}
	return d, nil
}

// Drop removes a dataset and all its indexes from the store.
func (s *Store) Drop(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byName[name]
	if !ok {
		return &errs.NotFound{Kind: "dataset", Name: name}
	}
	delete(s.byName, name)
	delete(s.byID, d.ID)
	return nil
}

// Register inserts an already-constructed dataset into the store, used
// by bootstrap recovery when rehydrating from a storage adapter.
func (s *Store) Register(d *Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[d.Name]; exists {
		return &errs.AlreadyExists{Kind: "dataset", Name: d.Name}
	}
	s.byName[d.Name] = d
	s.byID[d.ID] = d
	return nil
}

// Names lists every dataset name currently in the store.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.byName))
	for name := range s.byName {
		out = append(out, name)
	}
	return out
}
