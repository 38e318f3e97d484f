package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/jacobpatterson1549/selene-tiles/db"
	"github.com/jacobpatterson1549/selene-tiles/db/file"
	"github.com/jacobpatterson1549/selene-tiles/db/firestore"
	"github.com/jacobpatterson1549/selene-tiles/db/memory"
	"github.com/jacobpatterson1549/selene-tiles/db/mongo"
	"github.com/jacobpatterson1549/selene-tiles/db/sql"
	_ "github.com/lib/pq"           // register "postgres" database driver from package init() function
	_ "github.com/mattn/go-sqlite3" // register "sqlite3" database driver from package init() function
)

const (
	storageFile      = "file"
	storageMemory    = "memory"
	storagePostgres  = "postgres"
	storageSqlite3   = "sqlite3"
	storageMongo     = "mongo"
	storageFirestore = "firestore"
)

// storageTypes are the names of the supported storage backends.
var storageTypes = []string{
	storageFile,
	storageMemory,
	storagePostgres,
	storageSqlite3,
	storageMongo,
	storageFirestore,
}

// fileConfig is the structure of the optional TOML config file.
type fileConfig struct {
	Storage          string `toml:"storage"`
	StorageFile      string `toml:"storage_file"`
	DataSource       string `toml:"data_source"`
	FirestoreProject string `toml:"firestore_project"`
	QueryPeriod      string `toml:"query_period"`
	LogFile          string `toml:"log_file"`
}

// readFileConfig reads the config file at the path.
// A missing file is an empty config.
func readFileConfig(path string, readFileFunc func(name string) ([]byte, error)) (*fileConfig, error) {
	var fc fileConfig
	resolved, err := file.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config file path: %w", err)
	}
	b, err := readFileFunc(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &fc, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %v: %w", resolved, err)
	}
	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("parsing config file %v: validation: %w", resolved, err)
	}
	return &fc, nil
}

// validate checks the values that are not strings.
func (fc fileConfig) validate() error {
	if len(fc.QueryPeriod) != 0 {
		d, err := time.ParseDuration(fc.QueryPeriod)
		switch {
		case err != nil:
			return fmt.Errorf("query_period: %w", err)
		case d <= 0:
			return fmt.Errorf("query_period must be positive: %v", fc.QueryPeriod)
		}
	}
	return nil
}

// storage is the configured storage type, or the default.
func (fc fileConfig) storage() string {
	if len(fc.Storage) == 0 {
		return defaultStorage
	}
	return fc.Storage
}

// storageFile is the configured storage file, or the default.
func (fc fileConfig) storageFile() string {
	if len(fc.StorageFile) == 0 {
		return file.DefaultPath
	}
	return fc.StorageFile
}

// queryPeriod is the configured query period, or the default if it is missing.
// The config should be validated first.
func (fc fileConfig) queryPeriod() time.Duration {
	if len(fc.QueryPeriod) == 0 {
		return defaultQueryPeriod
	}
	d, err := time.ParseDuration(fc.QueryPeriod)
	if err != nil {
		return defaultQueryPeriod
	}
	return d
}

// newLogger creates a logger that writes to the log file.
// The terminal is used to draw tiles, so messages are discarded when there is no log file.
func (m mainFlags) newLogger() (*log.Logger, io.Closer, error) {
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile | log.Lmsgprefix
	if len(m.logFile) == 0 {
		return log.New(io.Discard, "", logFlags), io.NopCloser(nil), nil
	}
	path, err := file.ExpandPath(m.logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving log file path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return log.New(f, "", logFlags), f, nil
}

// createStorage creates the configured storage backend.
// The close function releases the connections of the backend.
func (m mainFlags) createStorage(ctx context.Context) (db.Storage, func(ctx context.Context) error, error) {
	cfg := db.Config{
		QueryPeriod: m.queryPeriod,
	}
	noClose := func(ctx context.Context) error { return nil }
	switch m.storage {
	case storageFile:
		s, err := file.NewStorage(m.storageFile)
		if err != nil {
			return nil, nil, err
		}
		return s, noClose, nil
	case storageMemory:
		return new(memory.Storage), noClose, nil
	case storagePostgres, storageSqlite3:
		if len(m.databaseURL) == 0 {
			return nil, nil, fmt.Errorf("missing data-source uri")
		}
		d, err := sql.NewDatabase(cfg, m.storage, m.databaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeFunc := func(ctx context.Context) error {
			return d.Close()
		}
		setupFiles, err := sql.SetupFiles()
		if err != nil {
			closeFunc(ctx)
			return nil, nil, fmt.Errorf("reading database setup files: %w", err)
		}
		if err := d.Setup(ctx, setupFiles); err != nil {
			closeFunc(ctx)
			return nil, nil, fmt.Errorf("setting up database: %w", err)
		}
		return d, closeFunc, nil
	case storageMongo:
		if len(m.databaseURL) == 0 {
			return nil, nil, fmt.Errorf("missing data-source uri")
		}
		s, err := mongo.NewStorage(ctx, cfg, m.databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case storageFirestore:
		s, err := firestore.NewStorage(ctx, cfg, m.firestoreProject)
		if err != nil {
			return nil, nil, err
		}
		closeFunc := func(ctx context.Context) error {
			return s.Close()
		}
		return s, closeFunc, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q, wanted one of %v", m.storage, storageTypes)
	}
}
