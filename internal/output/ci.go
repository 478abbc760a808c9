package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// CICommitWriter writes commit listings as NDJSON (one JSON object per line) for CI pipelines.
type CICommitWriter struct{}

// CICommitSummary is the first line of CI output, containing aggregate statistics.
type CICommitSummary struct {
	Type         string         `json:"type"`
	From         string         `json:"from"`
	To           string         `json:"to"`
	Version      string         `json:"version,omitempty"`
	TotalCommits int            `json:"totalCommits"`
	Labels       map[string]int `json:"labels"`
	Projects     []string       `json:"projects"`
}

// CICommitEntry represents a single commit in CI output.
type CICommitEntry struct {
	Type     string   `json:"type"`
	SHA      string   `json:"sha"`
	Date     string   `json:"date"`
	Label    string   `json:"label"`
	Summary  string   `json:"summary"`
	Projects []string `json:"projects"`
}

// CIPathEntry represents the changed paths of one commit in CI output.
type CIPathEntry struct {
	Type  string   `json:"type"`
	SHA   string   `json:"sha"`
	Paths []string `json:"paths"`
}

// Write outputs the commit listing as NDJSON.
func (w *CICommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Summary counts cover the whole range, not only the printed entries.
	labels := make(map[string]int)
	projectSet := make(map[string]bool)
	for _, e := range report.Entries {
		labels[e.Label]++
		for _, p := range e.Projects {
			projectSet[p] = true
		}
	}
	projects := make([]string, 0, len(projectSet))
	for p := range projectSet {
		projects = append(projects, p)
	}
	sort.Strings(projects)

	summary := CICommitSummary{
		Type:         "summary",
		From:         report.Range.From,
		To:           report.Range.To,
		Version:      report.Version,
		TotalCommits: len(report.Entries),
		Labels:       labels,
		Projects:     projects,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, e := range entries {
		entry := CICommitEntry{
			Type:     "commit",
			SHA:      e.Record.SHA,
			Date:     e.Record.Date,
			Label:    e.Label,
			Summary:  e.Record.Summary,
			Projects: nonNil(e.Projects),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
		if options.ShowPaths && e.Paths != nil {
			if err := writeNDJSONLine(out, CIPathEntry{Type: "paths", SHA: e.Record.SHA, Paths: e.Paths}); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
