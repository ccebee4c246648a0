package protogen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Writer persists one generated file at a path relative to the output root.
// Implementations create intermediate directories as needed. The generator
// itself never touches the filesystem.
type Writer interface {
	Write(relPath string, content []byte) error
}

// WriteError reports a generated file that could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DirWriter writes generated files under a root directory.
type DirWriter struct {
	Root string
}

func (w *DirWriter) Write(relPath string, content []byte) error {
	path := filepath.Join(w.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// MapWriter collects generated files in memory, for tests and dry runs.
type MapWriter struct {
	Files map[string][]byte
}

// NewMapWriter returns an empty in-memory writer.
func NewMapWriter() *MapWriter {
	return &MapWriter{Files: make(map[string][]byte)}
}

func (w *MapWriter) Write(relPath string, content []byte) error {
	w.Files[relPath] = append([]byte(nil), content...)
	return nil
}

// Paths returns the written file paths, sorted.
func (w *MapWriter) Paths() []string {
	paths := make([]string, 0, len(w.Files))
	for p := range w.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
