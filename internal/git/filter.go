package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter selects changed paths by include and exclude glob patterns.
type PathFilter struct {
	include []string
	exclude []string
}

// NewPathFilter validates the patterns and builds a filter.
func NewPathFilter(include, exclude []string) (*PathFilter, error) {
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return &PathFilter{include: include, exclude: exclude}, nil
}

// IsEmpty reports whether the filter accepts every path.
func (f *PathFilter) IsEmpty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}

// Match checks if a path matches the include/exclude filters.
func (f *PathFilter) Match(path string) bool {
	if f.IsEmpty() {
		return true
	}

	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range f.exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(f.include) == 0 {
		return true
	}

	for _, pattern := range f.include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// Apply returns the paths accepted by the filter, in order.
func (f *PathFilter) Apply(paths []string) []string {
	if f.IsEmpty() {
		return paths
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if f.Match(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
