package output

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// CSVCommitWriter writes commit listings as CSV.
type CSVCommitWriter struct{}

// Write outputs the commit listing as CSV.
func (w *CSVCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"SHA", "Date", "Ref", "Label", "Projects", "Summary"}
	if options.ShowPaths {
		headers = append(headers, "Paths")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Record.SHA,
			e.Record.Date,
			e.Record.RefName,
			e.Label,
			strings.Join(e.Projects, ";"),
			e.Record.Summary,
		}
		if options.ShowPaths {
			row = append(row, strings.Join(e.Paths, ";"))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writePathsCSV(out io.Writer, entries []PathEntry) error {
	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"SHA", "Path"}); err != nil {
		return err
	}
	for _, e := range entries {
		for _, p := range e.Paths {
			if err := writer.Write([]string{e.SHA, p}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
