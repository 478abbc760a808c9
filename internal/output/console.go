package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleCommitWriter writes commit listings to the console.
type ConsoleCommitWriter struct{}

// Write outputs the commit listing as an aligned table.
func (w *ConsoleCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Fprintln(out, "Changelog Commits")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Range: %s\n", rangeLabel(report.Range))
	if report.Version != "" {
		fmt.Fprintf(out, "Version: %s\n", report.Version)
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "Generated: %s\n", report.GeneratedAt.Format(reportDateTimeLayout))
	}
	if len(report.DuplicateCheckBranches) > 0 {
		fmt.Fprintf(out, "Duplicates checked against: %s\n", joinOrDash(report.DuplicateCheckBranches))
	}
	fmt.Fprintf(out, "Total commits: %d\n\n", len(report.Entries))

	if len(entries) == 0 {
		yellow.Fprintln(out, "No commits in range.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCommit\tDate\tLabel\tProjects\tSummary")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			e.Record.SHA,
			e.Record.Date,
			e.Label,
			joinOrDash(e.Projects),
			truncateMessage(e.Record.Summary, 72),
		)
		if options.ShowPaths {
			for _, p := range e.Paths {
				fmt.Fprintf(tw, "\t\t\t\t\t  %s\n", p)
			}
		}
	}
	return tw.Flush()
}

// WriteTags prints tag names, one per line, or a JSON document.
func WriteTags(tags []string, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if options.Format == FormatJSON {
		if tags == nil {
			tags = []string{}
		}
		return writeJSON(out, JSONTagReport{Tags: tags})
	}
	for _, t := range tags {
		if _, err := fmt.Fprintln(out, t); err != nil {
			return err
		}
	}
	return nil
}

// WritePaths prints the changed paths of each commit.
func WritePaths(entries []PathEntry, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	switch options.Format {
	case FormatJSON:
		if entries == nil {
			entries = []PathEntry{}
		}
		return writeJSON(out, entries)
	case FormatCSV:
		return writePathsCSV(out, entries)
	case FormatCI:
		for _, e := range entries {
			if err := writeNDJSONLine(out, CIPathEntry{Type: "paths", SHA: e.SHA, Paths: nonNil(e.Paths)}); err != nil {
				return err
			}
		}
		return nil
	}

	yellow := color.New(color.FgYellow)
	for _, e := range entries {
		yellow.Fprintln(out, e.SHA)
		for _, p := range e.Paths {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
