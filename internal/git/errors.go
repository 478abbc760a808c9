package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGitNotFound is returned when the git executable cannot be located.
	ErrGitNotFound = errors.New("git executable not found")
	// ErrNotRepository is matched by command errors raised outside a git working tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoTagReachable is returned when describe finds no tag behind the given position.
	ErrNoTagReachable = errors.New("no tag reachable")
	// ErrInvalidReference is returned for reference names that cannot be passed to git safely.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidRange is returned when a range argument cannot be parsed.
	ErrInvalidRange = errors.New("invalid range")
)

// CommandError describes a git invocation that exited unsuccessfully.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		return msg + ": " + e.Stderr
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports whether the failure corresponds to one of the package sentinels
// that git only signals through its stderr text.
func (e *CommandError) Is(target error) bool {
	lower := strings.ToLower(e.Stderr)
	switch target {
	case ErrNotRepository:
		return strings.Contains(lower, "not a git repository")
	case ErrNoTagReachable:
		return strings.Contains(lower, "no names found") ||
			strings.Contains(lower, "no tags can describe") ||
			strings.Contains(lower, "cannot describe")
	}
	return false
}
