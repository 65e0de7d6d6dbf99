// Command wdash computes portfolio analytics from brokerage payloads.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/wealthdash/cmd"
	"github.com/etnz/wealthdash/date"
	"github.com/etnz/wealthdash/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	completion(commander).Complete(path.Base(os.Args[0]))

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion builds the shell completion tree from the registered commands.
func completion(commander *subcommands.Commander) *complete.Command {
	predictors := map[string]complete.Predictor{
		"data-dir":  predict.Dirs("*"),
		"layout":    predict.Files("*.json"),
		"log-level": predict.Set{"debug", "info", "warn", "error"},
		"period":    predict.Set{"day", "week", "month", "quarter", "year"},
		"from":      predict.Set{date.Today().String()},
	}
	flags := func(visit func(func(*flag.Flag))) map[string]complete.Predictor {
		res := make(map[string]complete.Predictor)
		visit(func(f *flag.Flag) {
			switch p, ok := predictors[f.Name]; {
			case ok:
				res[f.Name] = p
			case isBool(f):
				res[f.Name] = predict.Nothing
			default:
				res[f.Name] = predict.Something
			}
		})
		return res
	}

	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine.VisitAll),
	}
	var names predict.Set
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs.VisitAll)}
		names = append(names, c.Name())
	})
	root.Sub["help"].Args = names
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return root
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
