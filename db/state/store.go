// Package state persists which tiles are used and how they are sorted.
package state

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jacobpatterson1549/selene-tiles/db"
	"github.com/jacobpatterson1549/selene-tiles/log"
)

const (
	// Version is the schema version of the stored keys.
	// Stored values from other versions are cleared when the store is initialized.
	Version = "1"

	versionKey  = "version"
	sortUsedKey = "sort_used"
	usedPrefix  = "used_"
)

// Store reads and writes tile state to storage.
// Initialize should be called before values are read.
type Store struct {
	storage db.Storage
	log     log.Logger
	// current is set when the stored version matches the schema version and old values can be read.
	current bool
}

// NewStore creates a Store over the storage.
func NewStore(storage db.Storage, log log.Logger) (*Store, error) {
	switch {
	case storage == nil:
		return nil, fmt.Errorf("creating state store: validation: storage required")
	case log == nil:
		return nil, fmt.Errorf("creating state store: validation: log required")
	}
	s := Store{
		storage: storage,
		log:     log,
	}
	return &s, nil
}

// Initialize checks the stored version.
// If it is not the current version, the storage is cleared and the current version is written.
// Values read after a version change are the defaults.
func (s *Store) Initialize(ctx context.Context) error {
	version, ok, err := s.storage.Get(ctx, versionKey)
	if err != nil {
		s.log.Printf("reading stored version, clearing storage: %v", err)
	}
	if err == nil && ok && version == Version {
		s.current = true
		return nil
	}
	s.current = false
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clearing storage: %w", err)
	}
	if err := s.storage.Set(ctx, versionKey, Version); err != nil {
		return fmt.Errorf("writing storage version: %w", err)
	}
	return nil
}

// Used reads if the tile at the ordinal was used.
func (s *Store) Used(ctx context.Context, ordinal int) bool {
	return s.readBool(ctx, usedKey(ordinal))
}

// SortUsed reads if used tiles should be sorted after tiles in the pile.
func (s *Store) SortUsed(ctx context.Context) bool {
	return s.readBool(ctx, sortUsedKey)
}

// SetUsed writes if the tile at the ordinal is used.
func (s *Store) SetUsed(ctx context.Context, ordinal int, used bool) error {
	return s.writeBool(ctx, usedKey(ordinal), used)
}

// SetSortUsed writes if used tiles should be sorted after tiles in the pile.
func (s *Store) SetSortUsed(ctx context.Context, sortUsed bool) error {
	return s.writeBool(ctx, sortUsedKey, sortUsed)
}

// readBool reads the value of the key, defaulting to false.
func (s *Store) readBool(ctx context.Context, key string) bool {
	if !s.current {
		return false
	}
	v, ok, err := s.storage.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Printf("reading %v: %v", key, err)
		return false
	case !ok:
		return false
	}
	return parseBool(v)
}

// writeBool writes the value of the key.
func (s *Store) writeBool(ctx context.Context, key string, value bool) error {
	if err := s.storage.Set(ctx, key, strconv.FormatBool(value)); err != nil {
		return fmt.Errorf("storing %v: %w", key, err)
	}
	return nil
}

// usedKey is the key of used state of the tile with the ordinal.
func usedKey(ordinal int) string {
	return usedPrefix + strconv.Itoa(ordinal)
}

// parseBool is true only if the value is "true", ignoring case.
func parseBool(v string) bool {
	return strings.EqualFold(v, "true")
}
