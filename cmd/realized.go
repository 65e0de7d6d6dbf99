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

type realizedCmd struct {
	from string
}

func (*realizedCmd) Name() string     { return "realized" }
func (*realizedCmd) Synopsis() string { return "display the realized P&L of closed positions" }
func (*realizedCmd) Usage() string {
	return `wdash realized [-from <date>]

  Replays the buys and sells of every account and displays the positions
  closed since a date, most recent first, with a summary.
`
}

func (c *realizedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "only positions closed on or after this date (YYYY-MM-DD)")
}

func (c *realizedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var from date.Date
	if c.from != "" {
		var err error
		if from, err = date.Parse(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return report("realized", renderer.Params{From: from})
}
