// Package app provides the application context and dependency management
// for the litmap CLI: configuration, logging and the lazily created
// catalog client shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/cmd/application"
	"github.com/agentstation/litmap/internal/cmd/output"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

// App represents the litmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client litmap.Client
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format, detecting one from
// the terminal when none was set.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Client returns the catalog client, creating it lazily if needed.
func (a *App) Client() (litmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := litmap.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	c.OnSnapshotPublished(func(info catalogs.SnapshotInfo) {
		event := a.logger.Debug()
		if !info.Complete {
			event = a.logger.Warn().Str("error", info.Error)
		}
		event.Str("build_id", info.ID).
			Int("works", info.Works).
			Int("pages", info.Pages).
			Bool("complete", info.Complete).
			Msg("Catalog snapshot published")
	})

	a.client = c
	return c, nil
}

// Shutdown performs graceful shutdown of the application. The client runs
// no background work, so there is nothing to stop.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()

	if c != nil {
		if snap := c.Current(); snap != nil {
			a.logger.Debug().Str("build_id", snap.ID()).Int("works", snap.Len()).Msg("Shutting down")
		}
	}
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []litmap.Option {
	c := a.config
	return []litmap.Option{
		litmap.WithBaseURL(c.BaseURL),
		litmap.WithCollection(c.Collection),
		litmap.WithUserAgent(c.UserAgent + "/" + a.version),
		litmap.WithHTTPTimeout(c.HTTPTimeout),
		litmap.WithRequestsPerSecond(c.RequestsPerSecond),
		litmap.WithMaxPages(c.MaxPages),
		litmap.WithSearchPageSize(c.SearchPageSize),
		litmap.WithLanguagePageSize(c.LanguagePageSize),
		litmap.WithAuthorSearchPageSize(c.AuthorPageSize),
		litmap.WithWorkCacheTTL(c.WorkCacheTTL),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c litmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
