// Package constants provides shared constants used throughout the foodsync codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the ordering platform
	DefaultHTTPTimeout = 30 * time.Second

	// RunTimeout bounds a single synchronization run
	RunTimeout = 15 * time.Minute

	// ShutdownTimeout is how long the scheduler waits for a running job on shutdown
	ShutdownTimeout = 1 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for platform requests
	MaxRetries = 3

	// MaxFieldLength is the longest string the ordering platform stores in an article field
	MaxFieldLength = 255

	// TruncationMarker is appended to shortened field values
	TruncationMarker = "..."
)

// Default values
const (
	// DefaultCoopName is used when the platform URL carries no cooperative name
	DefaultCoopName = "unnamed foodcoop"

	// DefaultSchedule is the cron expression used by the schedule command
	DefaultSchedule = "0 3 * * *"
)

// Path constants
const (
	// DefaultConfigPath is the default path of the CLI configuration file
	DefaultConfigPath = "~/.foodsync.yaml"

	// DefaultLedgerPath is the default path of the manual-change ledger document
	DefaultLedgerPath = "config.json"

	// DefaultOutputDir is the root directory of generated exports
	DefaultOutputDir = "output"
)

// Format constants
const (
	// TimeFormatFilename is the date format used in export file names
	TimeFormatFilename = "2006-01-02"

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)

// Environment variables
const (
	// EnvFoodsoftURL holds the base URL of the Foodsoft instance
	EnvFoodsoftURL = "TR_FOODSOFT_URL"

	// EnvFoodsoftUser holds the login name used for the platform
	EnvFoodsoftUser = "TR_FOODSOFT_USER"

	// EnvFoodsoftPass holds the password used for the platform
	EnvFoodsoftPass = "TR_FOODSOFT_PASS"
)
