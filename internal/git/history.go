package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/masmgr/changelog-go/internal/logging"
)

// HistoryOptions configures the history reader.
type HistoryOptions struct {
	Remote   string
	Mainline string
	Logger   *slog.Logger
}

// ListOptions selects the commits returned by ListCommits.
type ListOptions struct {
	From string
	// To is the upper bound; empty means the current position.
	To string
	// DuplicateCheckBranches are remote branches whose own commits, relative
	// to the mainline, are suppressed from the result by summary text.
	// Distinct commits sharing a summary are suppressed too.
	DuplicateCheckBranches []string
}

// HistoryReader reads commit records for a range.
type HistoryReader struct {
	cmd  Commander
	tags *TagRepository
	opts HistoryOptions
}

// NewHistoryReader creates a history reader over cmd.
func NewHistoryReader(cmd Commander, tags *TagRepository, opts HistoryOptions) *HistoryReader {
	if opts.Remote == "" {
		opts.Remote = DefaultRemote
	}
	if opts.Mainline == "" {
		opts.Mainline = DefaultMainline
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if tags == nil {
		tags = NewTagRepository(cmd)
	}
	return &HistoryReader{cmd: cmd, tags: tags, opts: opts}
}

// ListCommits fetches the remote, then returns the commits of opts.From..opts.To
// newest first, without those whose summary also appears on one of the
// duplicate-check branches.
func (r *HistoryReader) ListCommits(ctx context.Context, opts ListOptions) ([]CommitRecord, error) {
	rng := Range{From: opts.From, To: opts.To}
	if err := rng.validate(); err != nil {
		return nil, err
	}
	for _, branch := range opts.DuplicateCheckBranches {
		if err := validateRef(branch); err != nil {
			return nil, err
		}
	}

	if _, err := r.cmd.Run(ctx, "fetch", r.opts.Remote); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.opts.Remote, err)
	}

	excluded, err := r.duplicateSummaries(ctx, opts.DuplicateCheckBranches)
	if err != nil {
		return nil, err
	}

	out, err := r.cmd.Run(ctx, "log", "--no-color", "--date=short", "--pretty=format:"+commitLogFormat, rng.Revision(), "--")
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", rng.Revision(), err)
	}

	records, dropped := ParseCommitLog(out)
	if dropped > 0 {
		r.opts.Logger.Debug("dropped malformed log lines",
			slog.String("range", rng.Revision()),
			slog.Int("count", dropped),
		)
	}

	if len(excluded) == 0 {
		return records, nil
	}

	kept := records[:0]
	for _, rec := range records {
		if _, dup := excluded[rec.Summary]; dup {
			continue
		}
		kept = append(kept, rec)
	}
	if n := len(records) - len(kept); n > 0 {
		r.opts.Logger.Info("suppressed duplicate commits",
			slog.String("range", rng.Revision()),
			slog.Int("count", n),
		)
	}
	return kept, nil
}

// duplicateSummaries collects the summaries of commits on each
// <remote>/<branch> that are not on <remote>/<mainline>.
func (r *HistoryReader) duplicateSummaries(ctx context.Context, branches []string) (map[string]struct{}, error) {
	summaries := make(map[string]struct{})
	for _, branch := range branches {
		rev := fmt.Sprintf("%s/%s..%s/%s", r.opts.Remote, r.opts.Mainline, r.opts.Remote, branch)
		out, err := r.cmd.Run(ctx, "log", "--no-color", "--format=%s", rev, "--")
		if err != nil {
			return nil, fmt.Errorf("log %s: %w", rev, err)
		}
		for _, line := range splitLines(out) {
			summaries[line] = struct{}{}
		}
	}
	return summaries, nil
}

// ReleaseRange returns the unreleased range: from the latest reachable tag
// to the current position.
func (r *HistoryReader) ReleaseRange(ctx context.Context) (Range, error) {
	last, err := r.tags.LastTag(ctx)
	if err != nil {
		return Range{}, err
	}
	return Range{From: last}, nil
}

// LatestReleaseRange returns the range of the latest tagged release: from the
// tag before it to the latest tag, or the whole history up to the latest tag
// when it is the first one.
func (r *HistoryReader) LatestReleaseRange(ctx context.Context) (Range, error) {
	last, err := r.tags.LastTag(ctx)
	if err != nil {
		return Range{}, err
	}

	prev, err := r.tags.TagBefore(ctx, last)
	if err != nil {
		if errors.Is(err, ErrNoTagReachable) {
			return Range{To: last}, nil
		}
		return Range{}, err
	}
	return Range{From: prev, To: last}, nil
}
