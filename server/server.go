// Package server serves the dashboard entities over a local HTTP API.
package server

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/wealthdash"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// LoadFunc provides the raw payloads of a pipeline run.
type LoadFunc func(ctx context.Context) (*wealthdash.Inputs, error)

// Config holds server configuration.
type Config struct {
	Addr   string
	Load   LoadFunc
	Filter wealthdash.Filter
	Log    zerolog.Logger
}

// Server serves the latest computed Dashboard.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	load   LoadFunc
	filter wealthdash.Filter

	reload sync.Mutex // one reload at a time

	mu          sync.RWMutex
	dashboard   *wealthdash.Dashboard
	fingerprint string
	loadedAt    time.Time

	cache *cache.Cache // dashboards and rendered reports, by fingerprint
}

// ErrNotLoaded is returned while no dashboard has been computed yet.
var ErrNotLoaded = errors.New("dashboard not loaded")

// New creates a Server. It does not load anything, see Reload.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		load:   cfg.Load,
		filter: cfg.Filter,
		cache:  cache.New(30*time.Minute, time.Hour),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/snapshots", s.handleSnapshots)
		r.Get("/changes", s.handleChanges)
		r.Get("/realized", s.handleRealized)
		r.Get("/summary", s.handleSummary)
		r.Get("/holdings", s.handleHoldings)
		r.Get("/cashflows", s.handleCashFlows)
		r.Get("/rates", s.handleRates)
		r.Post("/reload", s.handleReload)
	})

	s.router.Get("/report/{name}", s.handleReport)
}

// Handler returns the server routes.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens and serves until Shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Reload loads the payloads and computes a new dashboard.
//
// Reloads are serialized. When the payloads did not change since a previous
// run the cached dashboard is reused. A failed reload keeps the previous
// dashboard.
func (s *Server) Reload(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	in, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("could not load payloads: %w", err)
	}
	in.Filter = s.filter
	fingerprint, err := fingerprintOf(in)
	if err != nil {
		return err
	}

	var d *wealthdash.Dashboard
	if cached, ok := s.cache.Get(fingerprint); ok {
		d = cached.(*wealthdash.Dashboard)
		s.log.Debug().Str("fingerprint", fingerprint).Msg("dashboard cache hit")
	} else {
		start := time.Now()
		d, err = wealthdash.Compute(in, wealthdash.Options{Log: s.log})
		if err != nil {
			return fmt.Errorf("could not compute dashboard: %w", err)
		}
		s.cache.Set(fingerprint, d, cache.DefaultExpiration)
		s.log.Info().
			Str("fingerprint", fingerprint).
			Int("snapshots", len(d.Snapshots)).
			Int("closed", len(d.Closed)).
			Dur("duration", time.Since(start)).
			Msg("dashboard computed")
	}

	s.mu.Lock()
	s.dashboard, s.fingerprint, s.loadedAt = d, fingerprint, time.Now()
	s.mu.Unlock()
	return nil
}

// current returns the latest dashboard and its fingerprint.
func (s *Server) current() (*wealthdash.Dashboard, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dashboard == nil {
		return nil, "", ErrNotLoaded
	}
	return s.dashboard, s.fingerprint, nil
}

func fingerprintOf(in *wealthdash.Inputs) (string, error) {
	content, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("could not fingerprint payloads: %w", err)
	}
	return fmt.Sprintf("%x", sha1.Sum(content)), nil
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
