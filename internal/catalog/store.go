package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trusteddatanow/catalog/internal/domain"
)

// ReadError means the catalog file could not be read or parsed.
// It is fatal for a job run: there is no partial state to fall back to.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read catalog %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError means the catalog rewrite could not be committed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write catalog %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store reads and rewrites the catalog file. The file holds a JSON array of
// resource records; each job loads it in full and replaces it in full, so
// readers only ever observe a complete catalog.
type Store struct {
	path string
}

// NewStore creates a store for the catalog file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the catalog file path.
func (s *Store) Path() string { return s.path }

// Load reads and parses the full catalog.
func (s *Store) Load() ([]*domain.Resource, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}

	var resources []*domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	return resources, nil
}

// Save rewrites the catalog atomically: the new document is written to a
// temporary file in the same directory and renamed over the old one, so a
// concurrent reader sees either the previous or the next complete catalog.
func (s *Store) Save(resources []*domain.Resource) error {
	if resources == nil {
		resources = []*domain.Resource{}
	}

	data, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}
