package cmd

import (
	"errors"
	"fmt"

	"github.com/masmgr/changelog-go/internal/git"
	"github.com/masmgr/changelog-go/internal/output"
	"github.com/urfave/cli/v2"
)

// TagsCmd returns the tags command.
func TagsCmd() *cli.Command {
	flags := append(outputFlags(),
		&cli.BoolFlag{
			Name:  "semver",
			Usage: "Sort by semantic version, newest first",
		},
	)

	return &cli.Command{
		Name:   "tags",
		Usage:  "List all tag names",
		Flags:  flags,
		Action: tagsAction,
	}
}

// LastTagCmd returns the last-tag command.
func LastTagCmd() *cli.Command {
	return &cli.Command{
		Name:   "last-tag",
		Usage:  "Print the nearest tag reachable from HEAD",
		Action: lastTagAction,
	}
}

func tagsAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		tags, err := ctx.Repo.Tags().ListTagNames(c.Context)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if c.Bool("semver") {
			tags = git.SortTagsBySemver(tags)
		}
		return output.WriteTags(tags, OutputOptions(c))
	})
}

func lastTagAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		tag, err := ctx.Repo.Tags().LastTag(c.Context)
		if errors.Is(err, git.ErrNoTagReachable) {
			return fmt.Errorf("no tag is reachable from HEAD: %w", err)
		}
		if err != nil {
			return fmt.Errorf("failed to find last tag: %w", err)
		}
		fmt.Fprintln(c.App.Writer, tag)
		return nil
	})
}
