package output

import (
	"io"
	"os"
	"strings"

	"github.com/masmgr/changelog-go/internal/git"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// rangeLabel renders a range for humans, naming the open ends.
func rangeLabel(rng git.Range) string {
	from, to := rng.From, rng.To
	if from == "" {
		from = "(root)"
	}
	if to == "" {
		to = "HEAD"
	}
	return from + ".." + to
}

// truncateMessage shortens msg to maxLen runes, ending in "...".
func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
