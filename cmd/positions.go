package cmd

import (
	"context"
	"flag"

	"github.com/etnz/wealthdash/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the current positions and their history" }
func (*positionsCmd) Usage() string {
	return `wdash positions

  Displays the current holdings with their unrealized P&L, followed by the
  transactions of each symbol.
`
}

func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (*positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report("positions", renderer.Params{})
}

type cashflowsCmd struct{}

func (*cashflowsCmd) Name() string     { return "cashflows" }
func (*cashflowsCmd) Synopsis() string { return "display the daily cash flows" }
func (*cashflowsCmd) Usage() string {
	return `wdash cashflows

  Displays the cash flows of every day, converted to CAD.
`
}

func (*cashflowsCmd) SetFlags(f *flag.FlagSet) {}

func (*cashflowsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report("cashflows", renderer.Params{})
}
