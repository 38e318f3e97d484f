// Package dbtest contains mock testing utilities.
package dbtest

import (
	"context"

	"github.com/jacobpatterson1549/selene-tiles/db"
)

// MockStorage implements the db.Storage interface.
type MockStorage struct {
	// GetFunc is called by Get.
	GetFunc func(ctx context.Context, key string) (string, bool, error)
	// SetFunc is called by Set.
	SetFunc func(ctx context.Context, key, value string) error
	// ClearFunc is called by Clear.
	ClearFunc func(ctx context.Context) error
}

var _ db.Storage = MockStorage{}

// Get calls GetFunc.
func (m MockStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return m.GetFunc(ctx, key)
}

// Set calls SetFunc.
func (m MockStorage) Set(ctx context.Context, key, value string) error {
	return m.SetFunc(ctx, key, value)
}

// Clear calls ClearFunc.
func (m MockStorage) Clear(ctx context.Context) error {
	return m.ClearFunc(ctx)
}
