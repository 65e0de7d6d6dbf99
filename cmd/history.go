package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wealthdash/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	weekdays bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily portfolio value and P&L" }
func (*historyCmd) Usage() string {
	return `wdash history [-weekdays]

  Displays the portfolio value of every day, with the running deposits and
  the P&L over them.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.weekdays, "weekdays", false, "skip Saturdays and Sundays")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report("history", renderer.Params{Weekdays: c.weekdays})
}

// report computes the dashboard and prints the named report.
func report(name string, params renderer.Params) subcommands.ExitStatus {
	d, err := ComputeDashboard(Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not compute dashboard: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := renderer.Render(name, d, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
