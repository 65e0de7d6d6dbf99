package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wealthdash/date"
	"github.com/etnz/wealthdash/renderer"
	"github.com/google/subcommands"
)

type changesCmd struct {
	period string
}

func (*changesCmd) Name() string     { return "changes" }
func (*changesCmd) Synopsis() string { return "display the P&L change per period" }
func (*changesCmd) Usage() string {
	return `wdash changes [-period <period>]

  Buckets the portfolio history into calendar periods and displays the P&L
  change over each of them.
`
}

func (c *changesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", date.Monthly.String(), "Predefined period (day, week, month, quarter, year)")
}

func (c *changesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	return report("changes", renderer.Params{Period: period})
}
