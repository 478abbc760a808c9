package output

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCICommitWriter_Write(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "ci_output.ndjson")
	options := OutputOptions{Format: FormatCI, OutputPath: tmpFile, ShowPaths: true}

	if err := (&CICommitWriter{}).Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	// 1 summary + 3 commits + 2 path lines (the third entry has no resolved paths)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %s", len(lines), string(data))
	}

	var summary CICommitSummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.Type != "summary" {
		t.Errorf("expected type 'summary', got %q", summary.Type)
	}
	if summary.TotalCommits != 3 {
		t.Errorf("expected 3 total commits, got %d", summary.TotalCommits)
	}
	if summary.Version != "v1.1.0" {
		t.Errorf("expected version v1.1.0, got %q", summary.Version)
	}
	if summary.Labels["feature"] != 1 || summary.Labels["fix"] != 1 || summary.Labels["other"] != 1 {
		t.Errorf("unexpected label counts: %v", summary.Labels)
	}
	if strings.Join(summary.Projects, ",") != "cli,core" {
		t.Errorf("Projects = %q, expected sorted cli,core", summary.Projects)
	}

	var first CICommitEntry
	if err := json.Unmarshal([]byte(lines[1]), &first); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if first.Type != "commit" || first.SHA != "a1b2c3d" || first.Label != "feature" {
		t.Errorf("first entry = %#v", first)
	}

	var paths CIPathEntry
	if err := json.Unmarshal([]byte(lines[2]), &paths); err != nil {
		t.Fatalf("Failed to parse paths: %v", err)
	}
	if paths.Type != "paths" || paths.SHA != "a1b2c3d" {
		t.Errorf("paths entry = %#v", paths)
	}
}

func TestCICommitWriter_TopKeepsSummaryTotals(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "ci_top.ndjson")
	options := OutputOptions{Format: FormatCI, OutputPath: tmpFile, Top: 1}

	if err := (&CICommitWriter{}).Write(sampleReport(), options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, _ := readTestFile(tmpFile)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var summary CICommitSummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TotalCommits != 3 {
		t.Errorf("TotalCommits = %d, expected 3", summary.TotalCommits)
	}
}

func TestCICommitWriter_EmptyReport(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "ci_empty.ndjson")
	report := sampleReport()
	report.Entries = nil

	if err := (&CICommitWriter{}).Write(report, OutputOptions{Format: FormatCI, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, _ := readTestFile(tmpFile)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (summary only), got %d", len(lines))
	}
}
