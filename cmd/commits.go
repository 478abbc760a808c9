package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/masmgr/changelog-go/config"
	"github.com/masmgr/changelog-go/internal/category"
	"github.com/masmgr/changelog-go/internal/git"
	"github.com/masmgr/changelog-go/internal/output"
	"github.com/masmgr/changelog-go/internal/project"
	"github.com/urfave/cli/v2"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	flags := append(outputFlags(),
		&cli.StringFlag{
			Name:  "from",
			Usage: "Exclusive start of the range (default: derived from tags)",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Inclusive end of the range (default: HEAD)",
		},
		&cli.StringSliceFlag{
			Name:  "dedupe-branch",
			Usage: "Remote branch whose commit summaries are suppressed (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "next-version-from-metadata",
			Usage: "Label unreleased commits with the version read from the version file",
		},
		&cli.BoolFlag{
			Name:  "latest-release",
			Usage: "List the latest tagged release (previous tag to latest tag) instead of unreleased commits",
		},
		&cli.BoolFlag{
			Name:  "paths",
			Usage: "Resolve changed paths, attribute projects and drop commits touching only ignored paths",
		},
		&cli.BoolFlag{
			Name:  "group",
			Usage: "Order commits by label",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of commits to show (0 shows all)",
		},
		concurrencyFlag(),
	)

	return &cli.Command{
		Name:      "commits",
		Usage:     "List the commits of a release range",
		ArgsUsage: "[<from>..<to>]",
		Flags:     flags,
		Action:    commitsAction,
	}
}

// releaseRanger derives the default ranges from the repository tags.
type releaseRanger interface {
	ReleaseRange(ctx context.Context) (git.Range, error)
	LatestReleaseRange(ctx context.Context) (git.Range, error)
}

// resolveRange picks the range from a positional argument, the --from/--to
// flags, or the repository tags, in that order.
func resolveRange(ctx context.Context, arg, from, to string, latestRelease bool, tags releaseRanger) (git.Range, error) {
	if arg != "" {
		if from != "" || to != "" {
			return git.Range{}, fmt.Errorf("range argument %q cannot be combined with --from or --to", arg)
		}
		return git.ParseRange(arg)
	}
	if from != "" || to != "" {
		return git.Range{From: from, To: to}, nil
	}

	var rng git.Range
	var err error
	if latestRelease {
		rng, err = tags.LatestReleaseRange(ctx)
	} else {
		rng, err = tags.ReleaseRange(ctx)
	}
	if err != nil {
		return git.Range{}, fmt.Errorf("failed to derive release range: %w", err)
	}
	return rng, nil
}

// Unreleased is the version label of commits after the latest tag.
const Unreleased = "Unreleased"

// releaseVersion names the version a range belongs to. A range ending at a
// reference is that reference; an open range is unreleased unless the next
// version is read from the version file.
func releaseVersion(root string, rng git.Range, repo config.RepositoryConfig) (string, error) {
	if rng.To != "" && rng.To != "HEAD" {
		return rng.To, nil
	}
	if !repo.NextVersionFromMetadata {
		return Unreleased, nil
	}

	path := repo.VersionFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read next version: %w", err)
	}
	version := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	if version == "" {
		return "", fmt.Errorf("version file %s is empty", path)
	}
	return version, nil
}

func commitsAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("expected at most one range argument, got %d", c.NArg())
	}
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		cfg := ctx.Config
		history := ctx.Repo.History()

		rng, err := resolveRange(c.Context, c.Args().First(), c.String("from"), c.String("to"),
			c.Bool("latest-release"), history)
		if err != nil {
			return err
		}
		version, err := releaseVersion(ctx.Repo.Root, rng, cfg.Repository)
		if err != nil {
			return err
		}
		ctx.Logger.Info("listing commits", "range", rng.String(), "dedupe", cfg.Repository.DuplicateCheckBranches)

		records, err := history.ListCommits(c.Context, git.ListOptions{
			From:                   rng.From,
			To:                     rng.To,
			DuplicateCheckBranches: cfg.Repository.DuplicateCheckBranches,
		})
		if err != nil {
			return fmt.Errorf("failed to list commits: %w", err)
		}

		classifier, err := category.NewClassifier(cfg.Labels)
		if err != nil {
			return fmt.Errorf("invalid label config: %w", err)
		}
		if c.Bool("group") {
			records = groupByLabel(classifier, records)
		}

		entries := make([]output.CommitEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, output.CommitEntry{
				Record: rec,
				Label:  classifier.Classify(rec.Summary),
			})
		}

		if c.Bool("paths") {
			resolved, err := ctx.Repo.Paths().ResolveAll(c.Context, shasOf(records))
			if err != nil {
				return fmt.Errorf("failed to resolve changed paths: %w", err)
			}
			entries, err = attachPaths(cfg, entries, resolved)
			if err != nil {
				return err
			}
		}

		report := &output.CommitListReport{
			RepoPath:               ctx.Repo.Root,
			Range:                  rng,
			Version:                version,
			DuplicateCheckBranches: cfg.Repository.DuplicateCheckBranches,
			GeneratedAt:            time.Now(),
			Entries:                entries,
		}
		return writeCommitReport(c, report)
	})
}

func groupByLabel(classifier *category.Classifier, records []git.CommitRecord) []git.CommitRecord {
	groups := classifier.Group(records)
	ordered := make([]git.CommitRecord, 0, len(records))
	for _, name := range classifier.Labels() {
		ordered = append(ordered, groups[name]...)
	}
	return ordered
}

// attachPaths filters each entry's changed paths and attributes projects.
// Commits whose every changed path is ignored are dropped; commits that
// change nothing (empty commits) are kept.
func attachPaths(cfg *config.Config, entries []output.CommitEntry, resolved map[string][]string) ([]output.CommitEntry, error) {
	filter, err := git.NewPathFilter(cfg.Filters.Include, cfg.Filters.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid path filter: %w", err)
	}
	attributor, err := project.NewAttributor(cfg.Projects)
	if err != nil {
		return nil, fmt.Errorf("invalid project config: %w", err)
	}

	kept := entries[:0]
	for _, e := range entries {
		raw := resolved[e.Record.SHA]
		paths := filter.Apply(raw)
		if len(raw) > 0 && len(paths) == 0 {
			continue
		}
		if paths == nil {
			paths = []string{}
		}
		e.Paths = paths
		if attributor.Enabled() {
			e.Projects = attributor.Attribute(paths)
		}
		kept = append(kept, e)
	}
	return kept, nil
}

func shasOf(records []git.CommitRecord) []string {
	shas := make([]string, len(records))
	for i, rec := range records {
		shas[i] = rec.SHA
	}
	return shas
}
