// Package app provides the application context and dependency management
// for the foodsync CLI. It centralizes configuration, dependency injection,
// and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/internal/appcontext"
	"github.com/agentstation/foodsync/internal/pipeline"
	"github.com/agentstation/foodsync/pkg/ledger"
	"github.com/agentstation/foodsync/pkg/logging"
)

// App represents the foodsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Runner (lazy-initialized, singleton)
	mu     sync.Mutex
	runner *pipeline.Runner
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
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
		config, err := LoadConfig("")
		if err != nil {
			return nil, err
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		logging.SetDefault(logger)
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

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Schedule returns the configured cron expression.
func (a *App) Schedule() string {
	return a.config.Schedule
}

// LedgerStore returns the store of the configured ledger document.
func (a *App) LedgerStore() *ledger.Store {
	return ledger.NewStore(a.config.LedgerPath)
}

// Suppliers returns the names of the configured suppliers.
func (a *App) Suppliers() []string {
	names := make([]string, 0, len(a.config.Suppliers))
	for _, s := range a.config.Suppliers {
		names = append(names, s.Name)
	}
	return names
}

// RunOptions returns run options for supplier built from the global run
// settings and the supplier's own section, if any.
func (a *App) RunOptions(supplier string) *pipeline.Options {
	c := a.config
	opts := pipeline.Defaults().Apply(
		pipeline.WithSupplier(supplier, 0),
		pipeline.WithOutputDir(c.OutputDir),
		pipeline.WithLedgerPath(c.LedgerPath),
		pipeline.WithCompareFields(c.CompareFields...),
		pipeline.WithCategoryPinning(c.PinCategories),
		pipeline.WithIgnoredCategories(c.IgnoreCategories...),
		pipeline.WithXLSX(c.XLSX),
		pipeline.WithTimeout(c.RunTimeout),
	)

	if s, ok := c.Supplier(supplier); ok {
		opts.Apply(
			pipeline.WithSupplier(s.Name, s.ID),
			pipeline.WithInput(s.Input),
		)
		if len(s.IgnoreCategories) > 0 {
			opts.Apply(pipeline.WithIgnoredCategories(append(append([]string{}, c.IgnoreCategories...), s.IgnoreCategories...)...))
		}
	}
	return opts
}

// Runner returns the pipeline runner, creating it lazily.
func (a *App) Runner() *pipeline.Runner {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.runner == nil {
		a.runner = pipeline.NewRunner(a.config.Foodsoft, pipeline.WithLogger(a.logger))
	}
	return a.runner
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
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

// WithRunner sets a custom runner (useful for testing).
func WithRunner(runner *pipeline.Runner) Option {
	return func(a *App) error {
		a.runner = runner
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
