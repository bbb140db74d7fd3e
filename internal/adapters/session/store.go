// Package session implements the per-project-root session store. Selections
// live for the duration of the host process; nothing is written to disk.
package session

import (
	"path/filepath"
	"sync"
)

// Store implements ports.SessionStore with an in-memory map keyed by the
// normalized absolute root path, so state for one root is never visible
// under another regardless of trailing slashes or relative spellings.
type Store struct {
	mu    sync.RWMutex
	roots map[string]map[string]string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{roots: make(map[string]map[string]string)}
}

// Get returns the value stored for key under root.
func (s *Store) Get(root, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, ok := s.roots[normalize(root)]
	if !ok {
		return "", false
	}
	value, ok := values[key]
	return value, ok
}

// Set stores value for key under root. The per-root map is created lazily
// on first write; last writer wins.
func (s *Store) Set(root, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := normalize(root)
	values, ok := s.roots[norm]
	if !ok {
		values = make(map[string]string)
		s.roots[norm] = values
	}
	values[key] = value
}

func normalize(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Clean(root)
	}
	return filepath.Clean(abs)
}
