// Package db stores key-value data so it can be retrieved after the program restarts.
package db

import (
	"context"
	"fmt"
	"time"
)

type (
	// Storage is a durable string-keyed map.
	Storage interface {
		// Get reads the value for the key.  The ok return value is false if the key has no value.
		Get(ctx context.Context, key string) (value string, ok bool, err error)
		// Set writes the value for the key, overwriting any previous value.
		Set(ctx context.Context, key, value string) error
		// Clear removes all keys.
		Clear(ctx context.Context) error
	}

	// Config contains common storage backend options.
	Config struct {
		// QueryPeriod is the amount of time that any storage action can take before it should timeout.
		QueryPeriod time.Duration
	}
)

// Validate ensures the config can be used to create a backend.
func (cfg Config) Validate() error {
	if cfg.QueryPeriod <= 0 {
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// WithTimeout runs the function with a context that is cancelled after the query period.
func (cfg Config) WithTimeout(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	return f(ctx)
}
