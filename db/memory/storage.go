// Package memory implements storage that lasts as long as the program runs.
package memory

import (
	"context"
	"sync"
)

// Storage is a map that implements the db.Storage interface.
// The zero value is ready to use.
type Storage struct {
	mu     sync.Mutex
	values map[string]string
}

// Get reads the value for the key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set writes the value for the key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// Clear removes all values.
func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = nil
	return nil
}

// Len is the number of keys with values.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
