package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/pkg/constants"
)

// Output formats.
const (
	FormatAuto    = "auto" // console on a terminal, JSON otherwise
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes where and how foodsync logs.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error or off.
	Level string

	// Format is one of FormatAuto, FormatConsole or FormatJSON.
	Format string

	// Output is stderr, stdout, discard or a file the log is appended to.
	Output string

	NoColor bool

	// Caller adds file:line to every entry.
	Caller bool
}

// NewLoggerFromConfig builds a logger. A nil config logs info and above to
// stderr. An output file that cannot be opened falls back to stderr.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	level := ParseLevel(cfg.Level)
	if level < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
	}
	logger := zerolog.New(writer(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.Caller {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func writer(cfg *Config) io.Writer {
	var out io.Writer
	terminal := false

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
		terminal = isatty.IsTerminal(os.Stderr.Fd())
	case "stdout":
		out = os.Stdout
		terminal = isatty.IsTerminal(os.Stdout.Fd())
	case "discard", "none":
		return io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out = os.Stderr
			terminal = isatty.IsTerminal(os.Stderr.Fd())
		} else {
			out = f
		}
	}

	switch strings.ToLower(cfg.Format) {
	case FormatConsole:
	case FormatJSON:
		return out
	default:
		if !terminal {
			return out
		}
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    cfg.NoColor,
	}
}

// configFromEnv reads LOG_LEVEL, LOG_FORMAT and NO_COLOR.
func configFromEnv() *Config {
	return &Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}
