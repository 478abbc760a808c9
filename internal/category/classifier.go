package category

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/masmgr/changelog-go/config"
	"github.com/masmgr/changelog-go/internal/git"
)

// Other is the label of commits no configured label matches.
const Other = "other"

type label struct {
	name     string
	patterns []*regexp.Regexp
}

// Classifier assigns changelog labels to commits by matching their summary
// against regex patterns. Labels are tried in configuration order.
type Classifier struct {
	labels []label
}

// NewClassifier compiles the label taxonomy.
// Patterns are compiled as case-insensitive. Returns an error if any pattern fails to compile.
func NewClassifier(labels []config.LabelConfig) (*Classifier, error) {
	c := &Classifier{labels: make([]label, 0, len(labels))}
	for _, l := range labels {
		compiled := make([]*regexp.Regexp, 0, len(l.Patterns))
		for _, p := range l.Patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			// Add case-insensitive flag if not already present
			if !strings.HasPrefix(p, "(?i)") {
				p = "(?i)" + p
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", l.Name, err)
			}
			compiled = append(compiled, re)
		}
		c.labels = append(c.labels, label{name: l.Name, patterns: compiled})
	}
	return c, nil
}

// Classify returns the first label whose patterns match summary, or Other.
func (c *Classifier) Classify(summary string) string {
	for _, l := range c.labels {
		for _, re := range l.patterns {
			if re.MatchString(summary) {
				return l.name
			}
		}
	}
	return Other
}

// Group buckets records by label, keeping record order within each label.
func (c *Classifier) Group(records []git.CommitRecord) map[string][]git.CommitRecord {
	groups := make(map[string][]git.CommitRecord)
	for _, rec := range records {
		name := c.Classify(rec.Summary)
		groups[name] = append(groups[name], rec)
	}
	return groups
}

// Labels returns the configured label names in order, followed by Other.
func (c *Classifier) Labels() []string {
	names := make([]string, 0, len(c.labels)+1)
	for _, l := range c.labels {
		names = append(names, l.name)
	}
	return append(names, Other)
}
