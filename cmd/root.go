package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/masmgr/changelog-go/config"
	"github.com/masmgr/changelog-go/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "changelog",
		Usage:   "Extract release commit history from Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			TagsCmd(),
			LastTagCmd(),
			CommitsCmd(),
			PathsCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to Git repository",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for each git invocation (0 disables)",
			},
		},
	}
}

// Output flags shared across commands
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

func concurrencyFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "concurrency",
		Usage: "Maximum number of concurrent git processes for changed paths",
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if n := c.Int("concurrency"); n > 0 {
		cfg.Git.Concurrency = n
	}
	if c.Bool("next-version-from-metadata") {
		cfg.Repository.NextVersionFromMetadata = true
	}
	cfg.Repository.DuplicateCheckBranches = mergeBranches(
		cfg.Repository.DuplicateCheckBranches,
		c.StringSlice("dedupe-branch"),
	)

	return cfg, nil
}

// mergeBranches appends extra to base, dropping blanks and repeats.
func mergeBranches(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, b := range append(append([]string{}, base...), extra...) {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		merged = append(merged, b)
	}
	return merged
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
