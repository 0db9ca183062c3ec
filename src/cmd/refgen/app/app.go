// Package app is the environment shared by the refgen subcommands: settings,
// logger, HTTP clients and the history store.
package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"refgen/src/internal/clipboard"
	"refgen/src/internal/config"
	"refgen/src/internal/crossref"
	"refgen/src/internal/enrich"
	"refgen/src/internal/googlebooks"
	"refgen/src/internal/history"
	"refgen/src/internal/httpx"
	"refgen/src/internal/logging"
	"refgen/src/internal/openlibrary"
	"refgen/src/internal/unpaywall"
	"refgen/src/internal/webfetch"
)

// Set from the root command's persistent flags.
var (
	ConfigPath string
	LogLevel   string
)

// indirections for testability
var (
	Transport http.RoundTripper
	Stderr    io.Writer = os.Stderr
	Now                 = time.Now
	Copy                = clipboard.Copy
)

// App carries what a command run needs.
type App struct {
	Config config.Config
	Log    *log.Logger

	limiter *rate.Limiter
}

// Load reads .env, the config file and the environment, and builds the logger.
func Load() (*App, error) {
	_ = godotenv.Load()
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, err
	}
	if LogLevel != "" {
		cfg.LogLevel = LogLevel
	}
	logger, err := logging.New(cfg.LogLevel, Stderr)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:  cfg,
		Log:     logger,
		limiter: httpx.NewLimiter(cfg.RequestsPerSecond, 1),
	}, nil
}

// Context returns the command's context, or a background one when the
// command was not started through Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (a *App) transportOptions() []httpx.Option {
	opts := []httpx.Option{httpx.WithLimiter(a.limiter)}
	if Transport != nil {
		opts = append(opts, httpx.WithTransport(Transport))
	}
	return opts
}

func (a *App) apiOptions() []httpx.Option {
	opts := a.transportOptions()
	if a.Config.UserAgent != "" {
		opts = append(opts, httpx.WithUserAgent(a.Config.UserAgent))
	}
	return opts
}

// Enricher wires every enrichment API client into one lookup service.
func (a *App) Enricher() *enrich.Service {
	opts := a.apiOptions()
	return enrich.New(enrich.Providers{
		CrossRef:    crossref.New(opts...),
		Unpaywall:   unpaywall.New(a.Config.UnpaywallEmail, opts...),
		GoogleBooks: googlebooks.New(opts...),
		OpenLibrary: openlibrary.New(opts...),
	}, enrich.WithLogger(a.Log), enrich.WithTimeout(a.Config.Timeout))
}

// Fetcher returns the page client. Pages keep the browser User-Agent.
func (a *App) Fetcher() *webfetch.Client {
	return webfetch.New(a.transportOptions()...)
}

// History opens the configured history store. Callers close it.
func (a *App) History() (*history.Store, error) {
	return history.Open(a.Config.HistoryPath, a.Config.HistoryLimit)
}
