package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/changelog-go/internal/output"
)

func writeCommitReport(c *cli.Context, report *output.CommitListReport) error {
	opts := OutputOptions(c)
	writer := output.NewCommitReportWriter(opts.Format)
	return writer.Write(report, opts)
}
