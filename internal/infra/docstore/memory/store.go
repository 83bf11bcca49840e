// Package memory implements an in-memory document backend for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tagcrm/internal/docstore/core"
)

// Store implements core.Backend backed by process memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store { return &Store{docs: make(map[string][]byte)} }

// Driver returns the backend driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Read returns a copy of the stored document.
func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	clean, err := core.CleanName(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	b, ok := s.docs[clean]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("document %s: %w", name, core.ErrNotExist)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Write stores a copy of data under name.
func (s *Store) Write(_ context.Context, name string, data []byte) error {
	clean, err := core.CleanName(name)
	if err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.docs[clean] = cp
	s.mu.Unlock()
	return nil
}

// Names lists stored document names in ascending order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for k := range s.docs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
