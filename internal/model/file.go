// Package model defines the data structures shared by the augmentation pipeline.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// FileRef identifies a filesystem entry under traversal.
type FileRef struct {
	Path Path
	Name string
}

// NewFileRef builds a FileRef whose Name is the base name of path.
func NewFileRef(path Path) FileRef {
	return FileRef{Path: path, Name: filepath.Base(string(path))}
}

// ImageRef is a FileRef that the image probe accepted.
type ImageRef struct {
	FileRef
	// Ext is the lowercased extension without the leading dot.
	Ext string
	// Format is the decoder name reported by the probe (png, jpeg, ...).
	Format string
}

// BaseName returns Name without its extension.
func (r ImageRef) BaseName() string {
	ext := filepath.Ext(r.Name)
	if ext == "" {
		return r.Name
	}

	return strings.TrimSuffix(r.Name, ext)
}
