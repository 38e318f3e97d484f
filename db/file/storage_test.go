package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacobpatterson1549/selene-tiles/db"
)

var _ db.Storage = new(Storage)

func TestNewStorage_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := NewStorage("")
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	want := filepath.Join(home, ".config", "selene-tiles", "storage.toml")
	if got := s.Path(); want != got {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestStorage_MissingFileIsEmpty(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	_, ok, err := s.Get(context.Background(), "version")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Errorf("wanted no value in missing file")
	}
}

func TestStorage_SetCreatesFileAndDirs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subdir", "storage.toml")
	s, err := NewStorage(path)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	if err := s.Set(ctx, "version", "1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(ctx, "used_4", "true"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	s2, err := NewStorage(path)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	got, ok, err := s2.Get(ctx, "used_4")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || got != "true" {
		t.Errorf("Get = %q (ok=%v), want %q", got, ok, "true")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "[values]") {
		t.Errorf("wanted values table in file, got:\n%s", b)
	}
}

func TestStorage_Clear(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorage(filepath.Join(t.TempDir(), "storage.toml"))
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	if err := s.Set(ctx, "sort_used", "true"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok, err := s.Get(ctx, "sort_used"); ok || err != nil {
		t.Errorf("wanted no value after clear, got ok=%v, err=%v", ok, err)
	}
}

func TestStorage_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.toml")
	if err := os.WriteFile(path, []byte("this is = = not toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := NewStorage(path)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "version"); err == nil {
		t.Errorf("wanted error reading malformed file")
	}
}

func TestStorage_WriteLeavesNoTemporaryFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStorage(filepath.Join(dir, "storage.toml"))
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	writeTests := []struct {
		name  string
		write func() error
	}{
		{"set version", func() error { return s.Set(ctx, "version", "1") }},
		{"set used", func() error { return s.Set(ctx, "used_3", "true") }},
		{"clear", func() error { return s.Clear(ctx) }},
		{"set after clear", func() error { return s.Set(ctx, "sort_used", "false") }},
	}
	for i, test := range writeTests {
		if err := test.write(); err != nil {
			t.Fatalf("Test %v (%v): unwanted error: %v", i, test.name, err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Test %v (%v): reading dir: %v", i, test.name, err)
		}
		if len(entries) != 1 || entries[0].Name() != "storage.toml" {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("Test %v (%v): wanted only storage.toml in folder, got %v", i, test.name, names)
		}
	}
}

func TestStorage_FailedReplaceRemovesTemporaryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storage.toml")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "keep"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := NewStorage(path)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	if err := s.Clear(context.Background()); err == nil {
		t.Fatalf("wanted error replacing a folder with the storage file")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "storage.toml" {
		t.Errorf("wanted temporary file to be removed, got %v entries", len(entries))
	}
}

func TestStorage_ReplacesExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.toml")
	if err := os.WriteFile(path, []byte("[values]\nversion = \"0\"\nused_1 = \"true\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := NewStorage(path)
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	if err := s.Set(ctx, "version", "1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok, err := s.Get(ctx, "used_1")
	if err != nil || !ok || got != "true" {
		t.Errorf("wanted existing value to be kept, got %q (ok=%v, err=%v)", got, ok, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if want, got := os.FileMode(0o644), info.Mode().Perm(); want != got {
		t.Errorf("wanted file mode %v, got %v", want, got)
	}
}
