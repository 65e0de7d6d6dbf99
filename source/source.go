// Package source downloads the raw payloads from the host application API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// API paths of the payloads, relative to the base URL.
const (
	RatesPath        = "/currencies/usd/history"
	PortfolioPath    = "/portfolio"
	TransactionsPath = "/transactions"
	InstitutionsPath = "/institutions"
	PositionsPath    = "/positions"
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	Token    string        // sent as a bearer token when not empty
	CacheDir string        // daily response cache, disabled when empty
	Timeout  time.Duration // per request, defaults to 30s
	Log      zerolog.Logger
}

// Client fetches payloads from the host API.
type Client struct {
	base    *url.URL
	token   string
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("missing API base URL")
	}
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", opts.BaseURL, err)
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	log := opts.Log.With().Str("component", "source").Logger()

	client := &http.Client{Timeout: opts.Timeout}
	if opts.CacheDir != "" {
		client.Transport = &diskCache{base: http.DefaultTransport, dir: opts.CacheDir, today: date.Today, log: log}
	}
	return &Client{
		base:    base,
		token:   opts.Token,
		http:    client,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		log:     log,
	}, nil
}

// Fetch downloads every payload. Institutions and positions are optional, a
// 404 leaves them empty.
func (c *Client) Fetch(ctx context.Context) (*wealthdash.Inputs, error) {
	in := new(wealthdash.Inputs)
	g, ctx := errgroup.WithContext(ctx)
	get := func(path string, dst any, optional bool) {
		g.Go(func() error {
			err := c.get(ctx, path, dst)
			if optional && isNotFound(err) {
				c.log.Info().Str("path", path).Msg("optional payload not available")
				return nil
			}
			return err
		})
	}
	get(RatesPath, &in.Rates, false)
	get(PortfolioPath, &in.Portfolio, false)
	get(TransactionsPath, &in.Transactions, false)
	get(InstitutionsPath, &in.Institutions, true)
	get(PositionsPath, &in.Positions, true)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// Save fetches every payload and writes them into a data directory.
func (c *Client) Save(ctx context.Context, dir string) error {
	in, err := c.Fetch(ctx)
	if err != nil {
		return err
	}
	return wealthdash.SaveInputs(dir, in)
}

// StatusError is returned when the API answers with a non 2xx status.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot GET %s: %d %s", e.Path, e.Status, http.StatusText(e.Status))
}

func isNotFound(err error) bool {
	se, ok := err.(*StatusError)
	return ok && se.Status == http.StatusNotFound
}

// get performs a GET request and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, path string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.JoinPath(path).String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Path: path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("cannot decode %s: %w", path, err)
	}
	return nil
}
