// Package app provides the application context and dependency management
// for the fieldguide CLI. It centralizes configuration, logging, and the
// lookup pipeline behind a single App value.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aviaryworks/fieldguide/internal/config"
	"github.com/aviaryworks/fieldguide/internal/explain"
	"github.com/aviaryworks/fieldguide/internal/pipeline"
	"github.com/aviaryworks/fieldguide/internal/reconcile"
	"github.com/aviaryworks/fieldguide/internal/sources"
	"github.com/aviaryworks/fieldguide/internal/sources/gbif"
	"github.com/aviaryworks/fieldguide/internal/sources/inat"
	"github.com/aviaryworks/fieldguide/internal/sources/unesco"
)

// App represents the fieldguide application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *config.Config

	// Logger
	logger *zerolog.Logger

	// Pipeline instance (lazy-initialized, singleton)
	mu       sync.RWMutex
	pipeline *pipeline.Pipeline
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
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
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Pipeline returns the lookup pipeline, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Pipeline() *pipeline.Pipeline {
	a.mu.RLock()
	if a.pipeline != nil {
		p := a.pipeline
		a.mu.RUnlock()
		return p
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.pipeline != nil {
		return a.pipeline
	}

	a.pipeline = a.buildPipeline()
	return a.pipeline
}

// buildPipeline wires the source adapters, cache, reconciler, and explainer
// from the app configuration.
func (a *App) buildPipeline() *pipeline.Pipeline {
	var gbifOpts []gbif.Option
	if a.config.GBIFBaseURL != "" {
		gbifOpts = append(gbifOpts, gbif.WithBaseURL(a.config.GBIFBaseURL))
	}
	var inatOpts []inat.Option
	if a.config.INatBaseURL != "" {
		inatOpts = append(inatOpts, inat.WithBaseURL(a.config.INatBaseURL))
	}
	var unescoOpts []unesco.Option
	if a.config.UNESCOBaseURL != "" {
		unescoOpts = append(unescoOpts, unesco.WithBaseURL(a.config.UNESCOBaseURL))
	}

	store := sources.NewStore()
	srcs := []sources.Source{
		sources.WithCache(gbif.New(gbifOpts...), store, a.config.CacheTTL),
		sources.WithCache(inat.New(inatOpts...), store, a.config.CacheTTL),
		sources.WithCache(unesco.New(unescoOpts...), store, a.config.CacheTTL),
	}

	explainer := explain.New(explain.WithModel(a.config.GenerationModel))

	return pipeline.New(srcs, reconcile.New(), explainer)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.config = cfg
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

// WithPipeline sets a custom pipeline instance (useful for testing).
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(a *App) error {
		a.pipeline = p
		return nil
	}
}
