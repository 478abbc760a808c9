package git

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// PathResolver resolves the files touched by a commit. Resolutions run on
// their own goroutines, at most limit git processes at a time.
type PathResolver struct {
	cmd   Commander
	limit int
	sem   *semaphore.Weighted
}

// NewPathResolver creates a resolver running at most limit concurrent git processes.
func NewPathResolver(cmd Commander, limit int) *PathResolver {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &PathResolver{cmd: cmd, limit: limit, sem: semaphore.NewWeighted(int64(limit))}
}

// ChangedPaths starts resolving the paths modified by sha and returns immediately.
// For a merge commit the result includes every path that differs from any
// of its parents. Futures issued concurrently complete in no particular order.
func (p *PathResolver) ChangedPaths(ctx context.Context, sha string) *Future[[]string] {
	if err := validateRef(sha); err != nil {
		return Resolved[[]string](nil, err)
	}
	return Async(func() ([]string, error) {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("changed paths %s: %w", sha, err)
		}
		defer p.sem.Release(1)
		return p.changedPaths(ctx, sha)
	})
}

func (p *PathResolver) changedPaths(ctx context.Context, sha string) ([]string, error) {
	// -m shows the diff against each parent in turn; the union is the set of
	// paths that differ from any parent.
	out, err := p.cmd.Run(ctx, "show", "-m", "--no-color", "--name-only", "--pretty=format:", sha, "--")
	if err != nil {
		return nil, fmt.Errorf("changed paths %s: %w", sha, err)
	}

	lines := splitLines(out)
	seen := make(map[string]struct{}, len(lines))
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		paths = append(paths, line)
	}
	return paths, nil
}

// ResolveAll resolves the changed paths of every sha concurrently and
// returns them keyed by sha. The first failure cancels the remaining work.
func (p *PathResolver) ResolveAll(ctx context.Context, shas []string) (map[string][]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	var mu sync.Mutex
	results := make(map[string][]string, len(shas))

	for _, sha := range shas {
		g.Go(func() error {
			paths, err := p.ChangedPaths(gctx, sha).Wait()
			if err != nil {
				return err
			}
			mu.Lock()
			results[sha] = paths
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
