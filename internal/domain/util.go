package domain

import (
	"path/filepath"
	"sort"
	"strings"

	m "compaug.dev/pkg/compaug/internal/model"
)

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// resolvePath makes p absolute relative to base. An empty p resolves to base.
func resolvePath(base, p m.Path) m.Path {
	if p == "" {
		return base
	}

	if filepath.IsAbs(string(p)) {
		return m.Path(filepath.Clean(string(p)))
	}

	return m.Path(filepath.Join(string(base), string(p)))
}

// isDescendant reports whether child lies strictly below parent.
func isDescendant(parent, child m.Path) bool {
	rel, err := filepath.Rel(string(parent), string(child))
	if err != nil || rel == "." {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
