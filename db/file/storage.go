// Package file implements storage in a TOML file on the local file system.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is where values are stored if no other path is specified.
const DefaultPath = "~/.config/selene-tiles/storage.toml"

// tempPattern names the temporary files that replace the storage file.
const tempPattern = ".storage-*.toml.tmp"

type (
	// Storage keeps values in a TOML file.
	// The whole file is read for each Get and rewritten for each Set.
	Storage struct {
		mu   sync.Mutex
		path string
	}

	// document is the structure of the file.
	document struct {
		Values map[string]string `toml:"values"`
	}
)

// NewStorage creates storage for the file at the path.
// A leading tilde in the path is replaced with the user's home directory.
func NewStorage(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("creating file storage: %w", err)
	}
	s := Storage{
		path: resolved,
	}
	return &s, nil
}

// Path is the absolute path of the file.
func (s *Storage) Path() string {
	return s.path
}

// Get reads the value for the key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := d.Values[key]
	return v, ok, nil
}

// Set writes the value for the key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.read()
	if err != nil {
		return err
	}
	if d.Values == nil {
		d.Values = make(map[string]string, 1)
	}
	d.Values[key] = value
	return s.write(*d)
}

// Clear removes all values.
func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(document{})
}

// read parses the file.  A missing file is an empty document.
func (s *Storage) read() (*document, error) {
	var d document
	b, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &d, nil
	case err != nil:
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if err := toml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse storage file: %w", err)
	}
	return &d, nil
}

// write replaces the file, creating directories as needed.
// The document is written to a temporary file in the same folder that is renamed over the file,
// so the file is never partially written.
func (s *Storage) write(d document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	b, err := toml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temporary storage file: %w", err)
	}
	tempPath := f.Name()
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write temporary storage file: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("set storage file permissions: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temporary storage file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading tilde to the home directory and makes the path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
