// Package adapter contains the infrastructure adapters behind the augmentation
// pipeline: filesystem access, image codecs and annotation output.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "compaug.dev/pkg/compaug/internal/model"
)

// FSAdapter abstracts the filesystem operations the domain layer relies on
// when walking component trees and preparing the output directory.
type FSAdapter interface {
	// ReadDir returns the entry names of a directory in lexical order.
	ReadDir(path m.Path) ([]string, error)

	// FileInfo returns metadata for a path, following symlinks.
	FileInfo(path m.Path) (os.FileInfo, error)

	// RealPath resolves symlinks and returns an absolute, cleaned path.
	RealPath(path m.Path) (m.Path, error)

	// WorkingDir returns the process working directory.
	WorkingDir() (m.Path, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalFSAdapter implements FSAdapter on top of the os package.
type LocalFSAdapter struct{}

// NewLocalFSAdapter constructs a LocalFSAdapter instance ready to be wired
// into the workflow.
func NewLocalFSAdapter() *LocalFSAdapter {
	return &LocalFSAdapter{}
}

// ReadDir lists the names of the entries in path.
func (a *LocalFSAdapter) ReadDir(path m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// RealPath resolves symlinks so that cyclic links can be detected.
func (a *LocalFSAdapter) RealPath(path m.Path) (m.Path, error) {
	resolved, err := filepath.EvalSymlinks(string(path))
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// WorkingDir returns the current working directory.
func (a *LocalFSAdapter) WorkingDir() (m.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return m.Path(wd), nil
}

// MkdirAll creates path with all missing parents.
func (a *LocalFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// JoinPath joins path elements into a single path.
func (a *LocalFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
