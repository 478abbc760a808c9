package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/masmgr/changelog-go/config"
	"github.com/masmgr/changelog-go/internal/git"
	"github.com/masmgr/changelog-go/internal/logging"
	"github.com/masmgr/changelog-go/internal/output"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config *config.Config
	Logger *slog.Logger
	Repo   *git.Repository
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration and opens the repository every query runs against.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Git.Timeout()
	if c.IsSet("timeout") {
		timeout = c.Duration("timeout")
	}

	logger := logging.NewLogger(os.Stderr, logging.LevelFromString(c.String("log-level")))

	repo, err := git.Open(c.Context, git.OpenOptions{
		Path:        c.String("repo"),
		Remote:      cfg.Repository.Remote,
		Mainline:    cfg.Repository.Mainline,
		GitBinary:   cfg.Git.Binary,
		Timeout:     timeout,
		Concurrency: cfg.Git.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	logger.Debug("repository opened", "root", repo.Root, "remote", repo.Remote, "mainline", repo.Mainline)

	return &CommandContext{
		Config: cfg,
		Logger: logger,
		Repo:   repo,
	}, nil
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		ShowPaths:  c.Bool("paths"),
	}
}

// executeWithContext wraps the common setup pattern for commands.
func executeWithContext(c *cli.Context, fn func(*CommandContext, *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return fn(ctx, c)
}
