package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
	live bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves the dashboard over a local HTTP API" }
func (*serveCmd) Usage() string {
	return `wdash serve [-addr <addr>] [-live]

  Computes the dashboard and serves it as JSON under /api and as HTML
  reports under /report/{name}. POST /api/reload recomputes it.

  With -live, payloads are downloaded from the host API on every reload
  instead of being read from the data directory.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8080", "address to listen on")
	f.BoolVar(&c.live, "live", false, "fetch payloads from the host API on reload")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := Logger()

	load := func(context.Context) (*wealthdash.Inputs, error) { return LoadInputs() }
	if c.live {
		client, err := SourceClient(log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		load = client.Fetch
	}

	srv := server.New(server.Config{Addr: c.addr, Load: load, Filter: Filter(), Log: log})
	if err := srv.Reload(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	fmt.Printf("Serving dashboard on http://%s\n", c.addr)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
