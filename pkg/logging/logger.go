// Package logging provides the zerolog loggers of foodsync.
//
// Until the CLI installs its configured logger with SetDefault, the default
// logger follows LOG_LEVEL and LOG_FORMAT. Runs carry their logger in the
// context, tagged with the supplier and the run identifier:
//
//	ctx = logging.WithLogger(ctx, logger)
//	ctx = logging.WithSupplier(ctx, "Biohof")
//	logging.FromContext(ctx).Info().Msg("Read supplier catalog")
package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(configFromEnv())
	defaultLogger.Store(&logger)
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger. Components created
// afterwards without an explicit logger use it.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
