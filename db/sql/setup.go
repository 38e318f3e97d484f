package sql

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
)

//go:embed setup/*.sql
var setupFS embed.FS

// SetupFiles reads the queries that create the tables needed to store values.
func SetupFiles() ([]io.Reader, error) {
	names, err := fs.Glob(setupFS, "setup/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing setup files: %w", err)
	}
	files := make([]io.Reader, len(names))
	for i, name := range names {
		b, err := fs.ReadFile(setupFS, name)
		if err != nil {
			return nil, fmt.Errorf("reading setup file %v: %w", name, err)
		}
		files[i] = bytes.NewReader(b)
	}
	return files, nil
}
