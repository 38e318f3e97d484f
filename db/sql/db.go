// Package sql implements storage in a SQL database.
package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/jacobpatterson1549/selene-tiles/db"
)

// Database is a SQL db.Storage with additional configuration.
// Values are stored in the tile_storage table, which is created by the setup files.
type Database struct {
	DB *sql.DB
	db.Config
}

// NewDatabase opens a database with the driver, which should be registered by the caller.
func NewDatabase(cfg db.Config, driverName, dataSourceName string) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating sql database: validation: %w", err)
	}
	sqlDB, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database %w", err)
	}
	d := Database{
		DB:     sqlDB,
		Config: cfg,
	}
	return &d, nil
}

// Setup initializes the database by reading the files and executing their contents as raw queries.
func (d Database) Setup(ctx context.Context, files []io.Reader) error {
	queries := make([]query, len(files))
	for i, f := range files {
		b, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading sql setup query %v: %w", i, err)
		}
		queries[i] = rawQuery(b)
	}
	if err := d.exec(ctx, queries...); err != nil {
		return fmt.Errorf("running setup queries %w", err)
	}
	return nil
}

// Get reads the value for the key.
func (d Database) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.WithTimeout(ctx, func(ctx context.Context) error {
		q := getQuery(key)
		row := d.DB.QueryRowContext(ctx, q.cmd(), q.args()...)
		return row.Scan(&value)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes the value for the key.
func (d Database) Set(ctx context.Context, key, value string) error {
	if err := d.exec(ctx, setQuery(key, value)); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Clear removes all values.
func (d Database) Clear(ctx context.Context) error {
	if err := d.exec(ctx, clearQuery); err != nil {
		return fmt.Errorf("clearing values: %w", err)
	}
	return nil
}

// Close releases the database connections.
func (d Database) Close() error {
	return d.DB.Close()
}

// exec evaluates multiple queries in a transaction.
func (d Database) exec(ctx context.Context, queries ...query) error {
	return d.WithTimeout(ctx, func(ctx context.Context) error {
		tx, err := d.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		for i, q := range queries {
			if _, err := tx.ExecContext(ctx, q.cmd(), q.args()...); err != nil {
				err = fmt.Errorf("executing query %v: %w", i, err)
				if err2 := tx.Rollback(); err2 != nil {
					return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
				}
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}
		return nil
	})
}
