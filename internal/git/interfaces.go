package git

import "context"

// Commander runs a single git invocation and returns its trimmed stdout.
// This abstraction allows the components to be exercised against scripted output.
type Commander interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// TagLister exposes tag queries.
type TagLister interface {
	ListTagNames(ctx context.Context) ([]string, error)
	LastTag(ctx context.Context) (string, error)
}

// CommitLister reads commit records for a range.
type CommitLister interface {
	ListCommits(ctx context.Context, opts ListOptions) ([]CommitRecord, error)
}

// ChangedPathsResolver resolves the paths touched by a commit without blocking the caller.
type ChangedPathsResolver interface {
	ChangedPaths(ctx context.Context, sha string) *Future[[]string]
}

// Compile-time interface conformance checks.
var (
	_ TagLister            = (*TagRepository)(nil)
	_ CommitLister         = (*HistoryReader)(nil)
	_ ChangedPathsResolver = (*PathResolver)(nil)
)
