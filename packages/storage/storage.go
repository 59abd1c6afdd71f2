// Package storage is the file access boundary for barong. Config resolution
// only touches the disk through the Store interface, so tests can swap in an
// in-memory file system.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store reads and writes JSON documents and answers existence and glob
// queries.
type Store interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	ReadJSON(path string) (map[string]any, error)
	WriteJSON(path string, v any) error
	Glob(pattern string) ([]string, error)
}

// FS implements Store on top of an afero file system.
type FS struct {
	fs afero.Fs
}

// NewFS wraps an afero file system.
func NewFS(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// NewOsFS returns a store backed by the real disk.
func NewOsFS() *FS {
	return NewFS(afero.NewOsFs())
}

// Fs exposes the underlying file system.
func (s *FS) Fs() afero.Fs {
	return s.fs
}

// Exists reports whether path exists. Stat failures other than "not exist"
// are reported as absent.
func (s *FS) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// ReadFile returns the raw bytes at path. A missing file yields a
// *NotFoundError.
func (s *FS) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return data, nil
}

// ReadJSON parses the JSON object stored at path.
func (s *FS) ReadJSON(path string) (map[string]any, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeObject(path, data)
}

// WriteJSON writes v as indented JSON, creating parent directories and
// replacing any existing file.
func (s *FS) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// Glob returns the names matching pattern.
func (s *FS) Glob(pattern string) ([]string, error) {
	matches, err := afero.Glob(s.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return matches, nil
}

// DecodeObject parses data as a single JSON object. path is only used for
// error reporting.
func DecodeObject(path string, data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc == nil {
		return nil, &ParseError{Path: path, Err: errors.New("document is not a JSON object")}
	}
	if dec.More() {
		return nil, &ParseError{Path: path, Err: errors.New("unexpected data after top-level object")}
	}
	return doc, nil
}
