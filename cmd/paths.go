package cmd

import (
	"context"
	"fmt"

	"github.com/masmgr/changelog-go/internal/git"
	"github.com/masmgr/changelog-go/internal/output"
	"github.com/urfave/cli/v2"
)

// PathsCmd returns the paths command.
func PathsCmd() *cli.Command {
	return &cli.Command{
		Name:      "paths",
		Usage:     "List the paths changed by each commit",
		ArgsUsage: "<sha>...",
		Flags:     append(outputFlags(), concurrencyFlag()),
		Action:    pathsAction,
	}
}

func pathsAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one commit is required")
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		entries, err := changedPathsInOrder(c.Context, ctx.Repo.Paths(), c.Args().Slice())
		if err != nil {
			return err
		}
		return output.WritePaths(entries, OutputOptions(c))
	})
}

// changedPathsInOrder starts every lookup before waiting on any, then
// collects results in argument order.
func changedPathsInOrder(ctx context.Context, resolver git.ChangedPathsResolver, shas []string) ([]output.PathEntry, error) {
	futures := make([]*git.Future[[]string], len(shas))
	for i, sha := range shas {
		futures[i] = resolver.ChangedPaths(ctx, sha)
	}

	entries := make([]output.PathEntry, 0, len(shas))
	for i, f := range futures {
		paths, err := f.Wait()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve changed paths of %s: %w", shas[i], err)
		}
		entries = append(entries, output.PathEntry{SHA: shas[i], Paths: paths})
	}
	return entries, nil
}
