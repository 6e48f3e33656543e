package domain

import (
	"os"
	"path/filepath"
	"strings"

	m "compaug.dev/pkg/compaug/internal/model"
)

// DefaultExclusions are the directory names never traversed: version control
// metadata and dependency caches.
var DefaultExclusions = []string{".git", "node_modules"}

// ExclusionRegistry holds the names and absolute paths skipped while
// walking. It is filled before traversal starts and only read afterwards.
type ExclusionRegistry struct {
	baseDir string
	names   map[string]struct{}
	paths   map[string]struct{}
}

// NewExclusionRegistry creates a registry seeded with defaults. Relative
// path entries are resolved against baseDir.
func NewExclusionRegistry(baseDir m.Path, defaults ...string) *ExclusionRegistry {
	r := &ExclusionRegistry{
		baseDir: string(baseDir),
		names:   make(map[string]struct{}),
		paths:   make(map[string]struct{}),
	}
	r.Append(defaults...)

	return r
}

// Append classifies every entry as a path when it contains a path separator
// and as a bare name otherwise.
func (r *ExclusionRegistry) Append(entries ...string) {
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if isPathEntry(entry) {
			r.paths[r.resolve(entry)] = struct{}{}
			continue
		}

		r.names[entry] = struct{}{}
	}
}

// IsExcludedName reports an exact match against the excluded names.
func (r *ExclusionRegistry) IsExcludedName(name string) bool {
	_, ok := r.names[name]
	return ok
}

// IsExcludedPath reports whether path is an excluded path or lies below one.
// Matching is anchored on separator boundaries so /a/foo never excludes /a/foobar.
func (r *ExclusionRegistry) IsExcludedPath(path m.Path) bool {
	resolved := r.resolve(string(path))

	for excluded := range r.paths {
		if resolved == excluded {
			return true
		}

		prefix := excluded
		if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
			prefix += string(os.PathSeparator)
		}

		if strings.HasPrefix(resolved, prefix) {
			return true
		}
	}

	return false
}

// IsExcluded reports whether ref matches by name or by path.
func (r *ExclusionRegistry) IsExcluded(ref m.FileRef) bool {
	return r.IsExcludedName(ref.Name) || r.IsExcludedPath(ref.Path)
}

// Names returns the excluded names.
func (r *ExclusionRegistry) Names() []string {
	return setKeys(r.names)
}

// Paths returns the excluded absolute paths.
func (r *ExclusionRegistry) Paths() []m.Path {
	keys := setKeys(r.paths)

	paths := make([]m.Path, len(keys))
	for i, k := range keys {
		paths[i] = m.Path(k)
	}

	return paths
}

func (r *ExclusionRegistry) resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}

	return filepath.Clean(path)
}

func isPathEntry(entry string) bool {
	return strings.ContainsRune(entry, os.PathSeparator) || strings.Contains(entry, "/")
}
