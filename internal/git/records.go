package git

import (
	"fmt"
	"regexp"
	"strings"
)

// commitLogFormat is the pretty format read back by ParseCommitLine.
// It must be used together with --date=short.
const commitLogFormat = "hash<%h> ref<%D> message<%s> date<%cd>"

// commitLinePattern matches one commitLogFormat line. The summary is greedy so
// that a summary containing '>' still binds to the final date marker.
var commitLinePattern = regexp.MustCompile(`^hash<([^<>\s]+)> ref<(.*?)> message<(.*)> date<(\d{4}-\d{2}-\d{2})>$`)

// CommitRecord is one commit of a history range.
type CommitRecord struct {
	SHA     string `json:"sha"`
	RefName string `json:"refName"`
	Summary string `json:"summary"`
	Date    string `json:"date"` // YYYY-MM-DD
}

// String serializes the record in the structured log format.
func (c CommitRecord) String() string {
	return fmt.Sprintf("hash<%s> ref<%s> message<%s> date<%s>", c.SHA, c.RefName, c.Summary, c.Date)
}

// ParseCommitLine parses one structured log line.
// It reports false for any line that does not match the full format.
func ParseCommitLine(line string) (CommitRecord, bool) {
	m := commitLinePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return CommitRecord{}, false
	}
	return CommitRecord{
		SHA:     m[1],
		RefName: m[2],
		Summary: m[3],
		Date:    m[4],
	}, true
}

// ParseCommitLog parses git log output in the structured format, one record
// per line. Non-conforming lines are skipped; dropped counts the non-blank
// lines that were skipped.
func ParseCommitLog(out string) (records []CommitRecord, dropped int) {
	records = make([]CommitRecord, 0)
	for _, line := range splitLines(out) {
		rec, ok := ParseCommitLine(line)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

// splitLines splits command output into lines, omitting blank ones.
func splitLines(out string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	return lines
}

// validateRef rejects references that git would parse as an option.
func validateRef(ref string) error {
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	if strings.ContainsAny(ref, " \t\n\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return nil
}
