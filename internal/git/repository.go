package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"github.com/masmgr/changelog-go/internal/logging"
)

const (
	DefaultRemote      = "origin"
	DefaultMainline    = "master"
	DefaultConcurrency = 8
)

// OpenOptions configures how a repository context is built.
type OpenOptions struct {
	// Path is any directory inside the working tree.
	Path        string
	Remote      string
	Mainline    string
	GitBinary   string
	Timeout     time.Duration
	Concurrency int
	Logger      *slog.Logger
}

// Repository is the explicit context every query runs against: the working
// tree root, the remote used for duplicate checks, and the mainline branch
// on that remote.
type Repository struct {
	Root     string
	Remote   string
	Mainline string

	cmd         Commander
	concurrency int
	logger      *slog.Logger
}

// Open locates the working tree containing opts.Path and binds a git runner to its root.
func Open(ctx context.Context, opts OpenOptions) (*Repository, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve repository path: %w", err)
	}

	root, err := worktreeRoot(abs)
	if err != nil {
		return nil, err
	}

	runner := NewRunner(root, opts.Logger)
	if opts.GitBinary != "" {
		runner.Binary = opts.GitBinary
	}
	runner.Timeout = opts.Timeout

	opts.Path = root
	return OpenWithCommander(runner, opts), nil
}

// OpenWithCommander builds a repository context over an arbitrary commander.
// No validation of opts.Path is performed.
func OpenWithCommander(cmd Commander, opts OpenOptions) *Repository {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	repo := &Repository{
		Root:        opts.Path,
		Remote:      opts.Remote,
		Mainline:    opts.Mainline,
		cmd:         cmd,
		concurrency: opts.Concurrency,
		logger:      logger,
	}
	if repo.Remote == "" {
		repo.Remote = DefaultRemote
	}
	if repo.Mainline == "" {
		repo.Mainline = DefaultMainline
	}
	if repo.concurrency <= 0 {
		repo.concurrency = DefaultConcurrency
	}
	return repo
}

// Tags returns the tag repository bound to this context.
func (r *Repository) Tags() *TagRepository {
	return NewTagRepository(r.cmd)
}

// History returns the commit history reader bound to this context.
func (r *Repository) History() *HistoryReader {
	return NewHistoryReader(r.cmd, r.Tags(), HistoryOptions{
		Remote:   r.Remote,
		Mainline: r.Mainline,
		Logger:   r.logger,
	})
}

// Paths returns a changed-paths resolver bound to this context.
// Each call creates a resolver with its own concurrency budget.
func (r *Repository) Paths() *PathResolver {
	return NewPathResolver(r.cmd, r.concurrency)
}

func worktreeRoot(path string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("open %s: %w", path, ErrNotRepository)
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	return wt.Filesystem.Root(), nil
}
