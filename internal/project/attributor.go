package project

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/changelog-go/config"
)

// Attributor maps changed paths to the sub-projects that own them.
type Attributor struct {
	projects []config.ProjectConfig
}

// NewAttributor validates the project path patterns.
func NewAttributor(projects []config.ProjectConfig) (*Attributor, error) {
	for _, p := range projects {
		for _, pattern := range p.Paths {
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("project %q: invalid glob pattern %q", p.Name, pattern)
			}
		}
	}
	return &Attributor{projects: projects}, nil
}

// Attribute returns the names of the projects owning at least one of paths,
// in configuration order.
func (a *Attributor) Attribute(paths []string) []string {
	names := make([]string, 0)
	for _, p := range a.projects {
		if owns(p, paths) {
			names = append(names, p.Name)
		}
	}
	return names
}

// Enabled reports whether any project is configured.
func (a *Attributor) Enabled() bool {
	return len(a.projects) > 0
}

func owns(p config.ProjectConfig, paths []string) bool {
	for _, path := range paths {
		path = strings.ReplaceAll(path, "\\", "/")
		for _, pattern := range p.Paths {
			if matched, _ := doublestar.Match(pattern, path); matched {
				return true
			}
		}
	}
	return false
}
