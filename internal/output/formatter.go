package output

import (
	"time"

	"github.com/masmgr/changelog-go/internal/git"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	_ CommitReportWriter = (*ConsoleCommitWriter)(nil)
	_ CommitReportWriter = (*JSONCommitWriter)(nil)
	_ CommitReportWriter = (*CSVCommitWriter)(nil)
	_ CommitReportWriter = (*CICommitWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCI      OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	ShowPaths  bool
}

// CommitEntry is one commit of a listing with the data derived for it.
type CommitEntry struct {
	Record   git.CommitRecord
	Label    string
	Projects []string
	Paths    []string // nil when paths were not resolved
}

// CommitListReport holds the commits selected for a changelog range.
type CommitListReport struct {
	RepoPath               string
	Range                  git.Range
	Version                string // tag the range ends at, the next version, or "Unreleased"
	DuplicateCheckBranches []string
	GeneratedAt            time.Time
	Entries                []CommitEntry
}

// PathEntry holds the changed paths of one commit.
type PathEntry struct {
	SHA   string   `json:"sha"`
	Paths []string `json:"paths"`
}

// CommitReportWriter writes commit listings.
type CommitReportWriter interface {
	Write(report *CommitListReport, options OutputOptions) error
}

// NewCommitReportWriter creates a commit report writer for the specified format.
func NewCommitReportWriter(format OutputFormat) CommitReportWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	case FormatCI:
		return &CICommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}
