package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes git commands against a single repository root.
type Runner struct {
	// Binary is the git executable; defaults to "git" resolved through PATH.
	Binary string
	// Dir is the working tree every command runs in.
	Dir string
	// Timeout bounds each invocation. Zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewRunner creates a runner rooted at dir.
func NewRunner(dir string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Binary: "git", Dir: dir, Logger: logger}
}

// Run executes git with args and returns stdout with trailing whitespace trimmed.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	cmdArgs := append([]string{"-c", "core.quotePath=false"}, args...)
	cmd := exec.CommandContext(ctx, binary, cmdArgs...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.Logger.Debug("git command",
		slog.String("dir", r.Dir),
		slog.Any("args", args),
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrGitNotFound, binary)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), ctxErr)
		}
		cmdErr := &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return "", cmdErr
	}

	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}

// Go runs the command asynchronously.
func (r *Runner) Go(ctx context.Context, args ...string) *Future[string] {
	return Async(func() (string, error) {
		return r.Run(ctx, args...)
	})
}

// Compile-time interface conformance check.
var _ Commander = (*Runner)(nil)
