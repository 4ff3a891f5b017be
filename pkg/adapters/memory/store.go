// Package memory keeps arrangements in process memory. It backs tests and
// short-lived tools that never need to persist a machine list.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.ArrangementStore and ports.ArrangementLister in memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]string),
	}
}

// Save replaces the machine list of the arrangement.
func (s *Store) Save(_ context.Context, name string, machines []string) error {
	if err := arrangement.Validate(machines); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = append([]string{}, machines...)
	return nil
}

// Load returns a copy of the machine list.
func (s *Store) Load(_ context.Context, name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	machines, ok := s.data[name]
	if !ok {
		return nil, &domain.MissingManifestError{Path: name}
	}
	return append([]string{}, machines...), nil
}

// Delete removes the arrangement.
func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, name)
	return nil
}

// List returns the stored arrangement names in sorted order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
