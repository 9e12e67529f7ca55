// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/internal/pipeline"
	"github.com/agentstation/foodsync/pkg/ledger"
)

// Interface defines the application context that commands need.
type Interface interface {
	// RunOptions returns run options for a supplier, prefilled from the
	// configuration. Every call returns a fresh copy that commands may
	// modify.
	RunOptions(supplier string) *pipeline.Options

	// Suppliers returns the names of the configured suppliers.
	Suppliers() []string

	// Runner returns the pipeline runner, connected to the configured
	// Foodsoft instance if any.
	Runner() *pipeline.Runner

	// Schedule returns the configured cron expression.
	Schedule() string

	// LedgerStore returns the store of the configuration document.
	LedgerStore() *ledger.Store

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
