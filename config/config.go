package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up when no path is given.
const FileName = ".changelog.json"

// YAMLFileName is the YAML alternative to FileName.
const YAMLFileName = ".changelog.yaml"

// Config is the root configuration structure.
type Config struct {
	Repository RepositoryConfig `json:"repository" yaml:"repository"`
	Git        GitConfig        `json:"git" yaml:"git"`
	Filters    FilterConfig     `json:"filters" yaml:"filters"`
	Projects   []ProjectConfig  `json:"projects" yaml:"projects"`
	Labels     []LabelConfig    `json:"labels" yaml:"labels"`
}

// RepositoryConfig holds the references changelog ranges are computed against.
type RepositoryConfig struct {
	Remote                  string   `json:"remote" yaml:"remote"`                                   // Default: "origin"
	Mainline                string   `json:"mainline" yaml:"mainline"`                               // Default: "master"
	DuplicateCheckBranches  []string `json:"duplicateCheckBranches" yaml:"duplicateCheckBranches"`   // Branches whose backports are suppressed
	NextVersionFromMetadata bool     `json:"nextVersionFromMetadata" yaml:"nextVersionFromMetadata"` // Label unreleased commits with the version file
	VersionFile             string   `json:"versionFile" yaml:"versionFile"`                         // Default: "VERSION"
}

// GitConfig holds git process options.
type GitConfig struct {
	Binary         string `json:"binary" yaml:"binary"`                 // Default: "git"
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"` // 0 disables the timeout
	Concurrency    int    `json:"concurrency" yaml:"concurrency"`       // Default: 8
}

// Timeout returns the per-invocation timeout.
func (g GitConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// FilterConfig holds changed-path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// ProjectConfig maps a sub-project to the paths it owns.
type ProjectConfig struct {
	Name  string   `json:"name" yaml:"name"`
	Paths []string `json:"paths" yaml:"paths"` // Glob patterns
}

// LabelConfig assigns a changelog label to commits whose summary matches.
type LabelConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Patterns []string `json:"patterns" yaml:"patterns"` // Regex patterns, case-insensitive
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Repository: RepositoryConfig{
			Remote:                 "origin",
			Mainline:               "master",
			DuplicateCheckBranches: []string{},
			VersionFile:            "VERSION",
		},
		Git: GitConfig{
			Binary:         "git",
			TimeoutSeconds: 0,
			Concurrency:    8,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Projects: []ProjectConfig{},
		Labels: []LabelConfig{
			{Name: "breaking", Patterns: []string{`^\w+(\([^)]*\))?!:`, `\bbreaking change\b`}},
			{Name: "feature", Patterns: []string{`^feat(\([^)]*\))?:`, `^add\b`}},
			{Name: "fix", Patterns: []string{`^fix(\([^)]*\))?:`, `\bfix(ed|es)?\b`, `\bbug\b`}},
			{Name: "docs", Patterns: []string{`^docs(\([^)]*\))?:`}},
		},
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	if c.Repository.Remote == "" {
		return fmt.Errorf("repository.remote must not be empty")
	}
	if c.Repository.Mainline == "" {
		return fmt.Errorf("repository.mainline must not be empty")
	}
	if c.Repository.NextVersionFromMetadata && c.Repository.VersionFile == "" {
		return fmt.Errorf("repository.versionFile must be set when nextVersionFromMetadata is enabled")
	}
	if c.Git.TimeoutSeconds < 0 {
		return fmt.Errorf("git.timeoutSeconds must not be negative")
	}
	if c.Git.Concurrency < 1 {
		return fmt.Errorf("git.concurrency must be at least 1")
	}
	seen := make(map[string]bool, len(c.Projects))
	for _, p := range c.Projects {
		if p.Name == "" {
			return fmt.Errorf("projects: name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("projects: duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		if len(p.Paths) == 0 {
			return fmt.Errorf("projects: %q has no paths", p.Name)
		}
	}
	for _, l := range c.Labels {
		if l.Name == "" {
			return fmt.Errorf("labels: name must not be empty")
		}
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName, YAMLFileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName), filepath.Join(home, YAMLFileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName), filepath.Join(envHome, YAMLFileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := decodeOverDefaults(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// decodeOverDefaults decodes data into cfg. Both decoders reuse the
// elements of an existing slice without zeroing them, so list fields are
// cleared first and a file that omits one gets the default list back.
func decodeOverDefaults(path string, data []byte, cfg *Config) error {
	defaults := DefaultConfig()
	cfg.Repository.DuplicateCheckBranches = nil
	cfg.Filters.Include = nil
	cfg.Filters.Exclude = nil
	cfg.Projects = nil
	cfg.Labels = nil

	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return err
	}

	if cfg.Repository.DuplicateCheckBranches == nil {
		cfg.Repository.DuplicateCheckBranches = defaults.Repository.DuplicateCheckBranches
	}
	if cfg.Filters.Include == nil {
		cfg.Filters.Include = defaults.Filters.Include
	}
	if cfg.Filters.Exclude == nil {
		cfg.Filters.Exclude = defaults.Filters.Exclude
	}
	if cfg.Projects == nil {
		cfg.Projects = defaults.Projects
	}
	if cfg.Labels == nil {
		cfg.Labels = defaults.Labels
	}
	return nil
}

// SaveConfig saves configuration to a file, as YAML when the extension asks for it.
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
