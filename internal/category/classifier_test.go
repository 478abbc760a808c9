package category

import (
	"reflect"
	"testing"

	"github.com/masmgr/changelog-go/config"
	"github.com/masmgr/changelog-go/internal/git"
)

func TestNewClassifier_InvalidPattern(t *testing.T) {
	_, err := NewClassifier([]config.LabelConfig{{Name: "fix", Patterns: []string{`[invalid`}}})
	if err == nil {
		t.Fatal("expected error for invalid pattern, got nil")
	}
}

func TestNewClassifier_SkipsBlankPatterns(t *testing.T) {
	c, err := NewClassifier([]config.LabelConfig{{Name: "fix", Patterns: []string{"fix", "", "  "}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.labels[0].patterns) != 1 {
		t.Errorf("expected 1 compiled pattern, got %d", len(c.labels[0].patterns))
	}
}

func TestClassify_DefaultTaxonomy(t *testing.T) {
	c, err := NewClassifier(config.DefaultConfig().Labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		summary string
		want    string
	}{
		{"conventional feature", "feat(cli): add --paths flag", "feature"},
		{"plain add", "Add changed-paths resolver", "feature"},
		{"conventional fix", "fix: handle empty ranges", "fix"},
		{"backport of a fix", "Backport: fix bug", "fix"},
		{"case insensitive", "FIXED crash on merge commits", "fix"},
		{"breaking wins over feature", "feat!: drop legacy flags", "breaking"},
		{"docs", "docs: describe dedupe branches", "docs"},
		{"no match", "Bump dependencies", Other},
		{"partial word no match", "prefix fixation suffix", Other},
		{"empty summary", "", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.summary); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}

func TestGroup_PreservesOrder(t *testing.T) {
	c, err := NewClassifier([]config.LabelConfig{{Name: "fix", Patterns: []string{`\bfix\b`}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := []git.CommitRecord{
		{SHA: "c", Summary: "fix c"},
		{SHA: "b", Summary: "tidy b"},
		{SHA: "a", Summary: "fix a"},
	}
	groups := c.Group(records)

	if got := groups["fix"]; len(got) != 2 || got[0].SHA != "c" || got[1].SHA != "a" {
		t.Errorf("groups[fix] = %#v", got)
	}
	if got := groups[Other]; len(got) != 1 || got[0].SHA != "b" {
		t.Errorf("groups[other] = %#v", got)
	}
	if want := []string{"fix", Other}; !reflect.DeepEqual(c.Labels(), want) {
		t.Errorf("Labels() = %q, want %q", c.Labels(), want)
	}
}
