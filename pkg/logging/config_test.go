package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerFromConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodsync.log")

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: logging.FormatJSON,
		Output: path,
	})
	logger.Info().Msg("read catalog")
	logger.Warn().Str("supplier", "Bio").Msg("platform unavailable")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "read catalog")
	assert.Contains(t, string(content), `"supplier":"Bio"`)
	assert.Contains(t, string(content), `"level":"warn"`)
}

func TestNewLoggerFromConfigCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodsync.log")

	logger := logging.NewLoggerFromConfig(&logging.Config{Format: logging.FormatJSON, Output: path, Caller: true})
	logger.Info().Msg("hello")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"caller":`)
}

func TestNewLoggerFromConfigDefaults(t *testing.T) {
	logger := logging.NewLoggerFromConfig(nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	discard := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Output: "discard"})
	assert.Equal(t, zerolog.DebugLevel, discard.GetLevel())
}
