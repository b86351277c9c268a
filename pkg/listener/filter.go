package listener

import (
	"path/filepath"
	"strings"
)

// Filter decides which paths are ignored. Patterns are filepath.Match globs
// tested against every path component and against the whole relative path.
type Filter struct {
	patterns   []string
	skipHidden bool
}

// NewFilter creates a filter
func NewFilter(patterns []string, skipHidden bool) *Filter {
	return &Filter{
		patterns:   append([]string(nil), patterns...),
		skipHidden: skipHidden,
	}
}

// Ignored reports whether rel, a slash or OS separated path relative to the
// watched root, should be left out
func (f *Filter) Ignored(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." {
		return false
	}

	for _, pattern := range f.patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}

	for _, part := range strings.Split(rel, "/") {
		if f.skipHidden && strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
		for _, pattern := range f.patterns {
			if ok, _ := filepath.Match(pattern, part); ok {
				return true
			}
		}
	}
	return false
}
