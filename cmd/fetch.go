package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "downloads the payloads from the host API" }
func (*fetchCmd) Usage() string {
	return `wdash fetch

Downloads the currency rates, portfolio history, transactions, institutions
and positions from the host API and writes them into the data directory.

The API is configured with the --api-url and --api-token flags or the
WDASH_API_URL and WDASH_API_TOKEN environment variables. Responses are cached
for the day in the user cache directory.
`
}

func (*fetchCmd) SetFlags(f *flag.FlagSet) {}

func (*fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := Logger()
	client, err := SourceClient(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dir := DataDir()
	if err := client.Save(ctx, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch payloads: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully saved payloads to %s\n", dir)
	return subcommands.ExitSuccess
}
