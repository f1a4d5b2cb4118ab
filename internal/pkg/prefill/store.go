// Package prefill hands context from one screen to the next: a write-once,
// read-once key/value exchange keyed by the destination path.
package prefill

import (
	"errors"
	"path"
	"strings"
	"sync"
)

var ErrInvalidPath = errors.New("prefill path must not be empty")

// Payload is the context handed to a destination screen.
type Payload map[string]any

// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]Payload
}

func NewStore() *Store {
	return &Store{entries: make(map[string]Payload)}
}

// NormalizePath turns "attendance/adjustments/new/", "/attendance//adjustments/new?x=1"
// and "/attendance/adjustments/new" into the same absolute key.
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p), nil
}

// Set stores payload for path, overwriting anything not yet consumed.
func (s *Store) Set(p string, payload Payload) error {
	key, err := NormalizePath(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = payload
	return nil
}

// ConsumeOnce returns the payload for path and removes it.
func (s *Store) ConsumeOnce(p string) (Payload, bool) {
	key, err := NormalizePath(p)
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return payload, ok
}

// Len returns the number of unconsumed entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
