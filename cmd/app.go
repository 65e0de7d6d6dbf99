// Package cmd implements the wdash command line application.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/source"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables read when the matching global flag is not set.
const (
	EnvDataDir      = "WDASH_DATA_DIR"
	EnvAPIURL       = "WDASH_API_URL"
	EnvAPIToken     = "WDASH_API_TOKEN"
	EnvLogLevel     = "WDASH_LOG_LEVEL"
	EnvGroups       = "WDASH_GROUPS"
	EnvInstitutions = "WDASH_INSTITUTIONS"
	EnvLayout       = "WDASH_LAYOUT"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir      = flag.String("data-dir", "", "Directory holding the payload files. Defaults to $"+EnvDataDir+" or \"data\".")
	apiURL       = flag.String("api-url", "", "Base URL of the host API. Defaults to $"+EnvAPIURL+".")
	apiToken     = flag.String("api-token", "", "Bearer token for the host API. Defaults to $"+EnvAPIToken+".")
	logLevel     = flag.String("log-level", "", "Log level (debug, info, warn, error). Defaults to $"+EnvLogLevel+" or \"warn\".")
	groups       = flag.String("groups", "", "Comma separated institution groups to keep. Defaults to $"+EnvGroups+".")
	institutions = flag.String("institutions", "", "Comma separated institution ids to keep. Defaults to $"+EnvInstitutions+".")
	layoutFile   = flag.String("layout", "", "JSON file holding the JSONPath of each payload in its file. Defaults to $"+EnvLayout+".")
	raw          = flag.Bool("raw", false, "Print reports as raw markdown.")
)

// Commands lists the subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"reports": {
		&historyCmd{},
		&changesCmd{},
		&realizedCmd{},
		&positionsCmd{},
		&cashflowsCmd{},
	},
	"data": {
		&fetchCmd{},
		&serveCmd{},
	},
	"help": {
		&topicCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// LoadEnv loads an optional .env file of the working directory into the
// environment. Variables already set are kept.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setting returns the flag value, or the environment variable, or the default.
func setting(flagValue, env, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func list(s string) []string {
	var res []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}

// DataDir returns the configured data directory.
func DataDir() string { return setting(*dataDir, EnvDataDir, "data") }

// Filter returns the configured account filter.
func Filter() wealthdash.Filter {
	return wealthdash.Filter{
		Groups:       list(setting(*groups, EnvGroups, "")),
		Institutions: list(setting(*institutions, EnvInstitutions, "")),
	}
}

// Layout returns the configured payload layout, bare files by default.
func Layout() (wealthdash.Layout, error) {
	var layout wealthdash.Layout
	file := setting(*layoutFile, EnvLayout, "")
	if file == "" {
		return layout, nil
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return layout, fmt.Errorf("could not read layout file: %w", err)
	}
	if err := json.Unmarshal(content, &layout); err != nil {
		return layout, fmt.Errorf("could not decode layout file %q: %w", file, err)
	}
	return layout, nil
}

// Logger returns the process logger, writing to stderr.
func Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(setting(*logLevel, EnvLogLevel, "warn"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SourceClient returns a host API client with a daily cache.
func SourceClient(log zerolog.Logger) (*source.Client, error) {
	opts := source.Options{
		BaseURL: setting(*apiURL, EnvAPIURL, ""),
		Token:   setting(*apiToken, EnvAPIToken, ""),
		Log:     log,
	}
	if dir, err := os.UserCacheDir(); err == nil {
		opts.CacheDir = filepath.Join(dir, "wealthdash")
	}
	return source.New(opts)
}

// LoadInputs reads the payloads of the data directory with the configured
// layout and filter.
func LoadInputs() (*wealthdash.Inputs, error) {
	layout, err := Layout()
	if err != nil {
		return nil, err
	}
	in, err := wealthdash.LoadInputs(DataDir(), layout)
	if err != nil {
		return nil, err
	}
	in.Filter = Filter()
	return in, nil
}

// ComputeDashboard loads the payloads and runs the pipeline.
func ComputeDashboard(log zerolog.Logger) (*wealthdash.Dashboard, error) {
	in, err := LoadInputs()
	if err != nil {
		return nil, err
	}
	return wealthdash.Compute(in, wealthdash.Options{Log: log})
}

// printMarkdown prints markdown to stdout, styled for the terminal unless -raw is set.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
