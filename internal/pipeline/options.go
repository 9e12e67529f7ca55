// Package pipeline runs one synchronization of a supplier catalog: read the
// supplier's articles, reconcile them with manual changes, make names
// unique, validate, write the export and compose the operator message.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/internal/foodsoft"
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/constants"
)

// Options controls one run.
type Options struct {
	// Supplier is the supplier name, used as ledger key and file prefix.
	Supplier string `validate:"required"`

	// SupplierID is the supplier's numeric ID on the platform. Zero
	// disables fetching platform articles.
	SupplierID int `validate:"gte=0"`

	// Input is the supplier catalog, CSV or XLSX.
	Input string `validate:"required"`

	// OutputDir is the root of the export directories.
	OutputDir string `validate:"required"`

	// LedgerPath is the configuration document holding the ledgers.
	LedgerPath string `validate:"required"`

	// CompareFields names the fields compared for manual changes. Empty
	// means the default set.
	CompareFields []string

	// PinCategories keeps categories under platform control.
	PinCategories bool

	// IgnoreCategories lists categories whose articles are not exported.
	IgnoreCategories []string

	// XLSX also writes a spreadsheet copy of the export.
	XLSX bool

	// Timeout bounds the run; zero means no limit.
	Timeout time.Duration `validate:"gte=0"`
}

// Defaults returns the default run options.
func Defaults() *Options {
	return &Options{
		OutputDir:     constants.DefaultOutputDir,
		LedgerPath:    constants.DefaultLedgerPath,
		PinCategories: true,
		Timeout:       constants.RunTimeout,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures Options.
type Option func(*Options)

// WithSupplier sets the supplier name and platform ID.
func WithSupplier(name string, id int) Option {
	return func(o *Options) {
		o.Supplier = name
		o.SupplierID = id
	}
}

// WithInput sets the supplier catalog file.
func WithInput(path string) Option {
	return func(o *Options) {
		o.Input = path
	}
}

// WithOutputDir sets the export root.
func WithOutputDir(dir string) Option {
	return func(o *Options) {
		o.OutputDir = dir
	}
}

// WithLedgerPath sets the configuration document path.
func WithLedgerPath(path string) Option {
	return func(o *Options) {
		o.LedgerPath = path
	}
}

// WithCompareFields sets the compared field names.
func WithCompareFields(names ...string) Option {
	return func(o *Options) {
		o.CompareFields = names
	}
}

// WithCategoryPinning enables or disables category pinning.
func WithCategoryPinning(enabled bool) Option {
	return func(o *Options) {
		o.PinCategories = enabled
	}
}

// WithIgnoredCategories sets categories excluded from the export.
func WithIgnoredCategories(categories ...string) Option {
	return func(o *Options) {
		o.IgnoreCategories = categories
	}
}

// WithXLSX enables the spreadsheet copy.
func WithXLSX(enabled bool) Option {
	return func(o *Options) {
		o.XLSX = enabled
	}
}

// WithTimeout bounds the run.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// PlatformSource provides the current articles of a supplier on the
// ordering platform.
type PlatformSource interface {
	Articles(ctx context.Context, supplierID int) ([]articles.Article, error)
}

// Runner executes runs. It holds the platform connection and is safe to
// reuse across runs, but not for concurrent runs of the same supplier.
type Runner struct {
	platformCfg foodsoft.Config
	platform    PlatformSource
	now         func() time.Time
	newID       func() string
	logger      *zerolog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPlatform replaces the Foodsoft client, e.g. with a fake in tests.
func WithPlatform(source PlatformSource) RunnerOption {
	return func(r *Runner) {
		r.platform = source
	}
}

// WithClock sets the time source used for export names and run stamps.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// WithRunIDs sets the run identifier generator.
func WithRunIDs(newID func() string) RunnerOption {
	return func(r *Runner) {
		r.newID = newID
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}
