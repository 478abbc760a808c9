package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONCommitWriter writes commit listings as JSON.
type JSONCommitWriter struct{}

// JSONCommitReport is the JSON output structure for a commit listing.
type JSONCommitReport struct {
	RepoPath               string           `json:"repo"`
	From                   string           `json:"from"`
	To                     string           `json:"to"`
	Version                string           `json:"version,omitempty"`
	DuplicateCheckBranches []string         `json:"duplicateCheckBranches"`
	GeneratedAt            string           `json:"generatedAt"`
	TotalCommits           int              `json:"totalCommits"`
	Items                  []JSONCommitItem `json:"items"`
}

// JSONCommitItem is the JSON output structure for a single commit.
type JSONCommitItem struct {
	SHA      string   `json:"sha"`
	RefName  string   `json:"ref"`
	Summary  string   `json:"summary"`
	Date     string   `json:"date"`
	Label    string   `json:"label"`
	Projects []string `json:"projects"`
	Paths    []string `json:"paths,omitempty"`
}

// JSONTagReport is the JSON output structure for a tag listing.
type JSONTagReport struct {
	Tags []string `json:"tags"`
}

// Write outputs the commit listing as JSON.
func (w *JSONCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	jsonReport := JSONCommitReport{
		RepoPath:               report.RepoPath,
		From:                   report.Range.From,
		To:                     report.Range.To,
		Version:                report.Version,
		DuplicateCheckBranches: nonNil(report.DuplicateCheckBranches),
		GeneratedAt:            report.GeneratedAt.Format(time.RFC3339),
		TotalCommits:           len(report.Entries),
		Items:                  make([]JSONCommitItem, 0, len(entries)),
	}

	for _, e := range entries {
		item := JSONCommitItem{
			SHA:      e.Record.SHA,
			RefName:  e.Record.RefName,
			Summary:  e.Record.Summary,
			Date:     e.Record.Date,
			Label:    e.Label,
			Projects: nonNil(e.Projects),
		}
		if options.ShowPaths {
			item.Paths = e.Paths
		}
		jsonReport.Items = append(jsonReport.Items, item)
	}

	return writeJSON(out, jsonReport)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
