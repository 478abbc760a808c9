package git

import (
	"context"
	"errors"
	"fmt"
)

// TagRepository answers tag queries for a repository.
type TagRepository struct {
	cmd Commander
}

// NewTagRepository creates a tag repository over cmd.
func NewTagRepository(cmd Commander) *TagRepository {
	return &TagRepository{cmd: cmd}
}

// ListTagNames returns every tag in the order git enumerates them.
func (t *TagRepository) ListTagNames(ctx context.Context) ([]string, error) {
	out, err := t.cmd.Run(ctx, "tag")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return splitLines(out), nil
}

// LastTag returns the nearest tag reachable from HEAD.
func (t *TagRepository) LastTag(ctx context.Context) (string, error) {
	return t.describe(ctx, "HEAD")
}

// TagBefore returns the nearest tag reachable from the first parent of ref,
// i.e. the release boundary preceding ref. ErrNoTagReachable is returned
// when ref is a root commit or no older tag exists.
func (t *TagRepository) TagBefore(ctx context.Context, ref string) (string, error) {
	if err := validateRef(ref); err != nil {
		return "", err
	}
	if _, err := t.cmd.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}"); err != nil {
		return "", fmt.Errorf("resolve %s: %w: %w", ref, ErrInvalidReference, err)
	}
	if _, err := t.cmd.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^1"); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return "", fmt.Errorf("describe %s^: %w", ref, ErrNoTagReachable)
		}
		return "", fmt.Errorf("resolve %s^: %w", ref, err)
	}
	return t.describe(ctx, ref+"^1")
}

func (t *TagRepository) describe(ctx context.Context, rev string) (string, error) {
	out, err := t.cmd.Run(ctx, "describe", "--tags", "--abbrev=0", rev)
	if err != nil {
		// CommandError matches ErrNoTagReachable when git reports no names.
		return "", fmt.Errorf("describe %s: %w", rev, err)
	}
	if out == "" {
		return "", fmt.Errorf("describe %s: %w", rev, ErrNoTagReachable)
	}
	return out, nil
}
