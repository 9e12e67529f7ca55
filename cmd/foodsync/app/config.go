package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/foodsync/internal/foodsoft"
	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Foodsoft instance
	Foodsoft foodsoft.Config

	// Run settings
	OutputDir        string
	LedgerPath       string
	CompareFields    []string
	PinCategories    bool
	XLSX             bool
	IgnoreCategories []string
	RunTimeout       time.Duration
	Schedule         string
	Suppliers        []SupplierConfig

	// Logging configuration
	LogFormat string
	LogOutput string
}

// SupplierConfig holds the settings of one configured supplier.
type SupplierConfig struct {
	Name             string   `mapstructure:"name"`
	ID               int      `mapstructure:"id"`
	Input            string   `mapstructure:"input"`
	IgnoreCategories []string `mapstructure:"ignore_categories"`
}

// Supplier returns the configuration of the named supplier.
func (c *Config) Supplier(name string) (SupplierConfig, bool) {
	for _, s := range c.Suppliers {
		if s.Name == name {
			return s, true
		}
	}
	return SupplierConfig{}, false
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or ~/.foodsync.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("FOODSYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)
	bindFoodsoftEnv(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".foodsync")

		// A missing config file means defaults
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.NewConfigError("config", "cannot read config file", err)
			}
		}
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		Foodsoft: foodsoft.Config{
			URL:      v.GetString("foodsoft.url"),
			User:     v.GetString("foodsoft.user"),
			Password: v.GetString("foodsoft.password"),
		},

		OutputDir:        v.GetString("output_dir"),
		LedgerPath:       v.GetString("ledger_path"),
		CompareFields:    v.GetStringSlice("compare_fields"),
		PinCategories:    v.GetBool("pin_categories"),
		XLSX:             v.GetBool("xlsx"),
		IgnoreCategories: v.GetStringSlice("ignore_categories"),
		RunTimeout:       v.GetDuration("run_timeout"),
		Schedule:         v.GetString("schedule"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := v.UnmarshalKey("suppliers", &config.Suppliers); err != nil {
		return nil, errors.NewConfigError("config", "invalid suppliers section", err)
	}
	// Missing credentials only degrade runs; a malformed URL is fatal.
	if config.Foodsoft.Configured() {
		if err := config.Foodsoft.Validate(); errors.IsConfigError(err) {
			return nil, err
		}
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("ledger_path", constants.DefaultLedgerPath)
	v.SetDefault("pin_categories", true)
	v.SetDefault("run_timeout", constants.RunTimeout)
	v.SetDefault("schedule", constants.DefaultSchedule)
}

// bindFoodsoftEnv binds the Foodsoft connection settings to the
// environment variables shared with the other foodcoop tools.
func bindFoodsoftEnv(v *viper.Viper) {
	_ = v.BindEnv("foodsoft.url", constants.EnvFoodsoftURL, "FOODSYNC_FOODSOFT_URL")
	_ = v.BindEnv("foodsoft.user", constants.EnvFoodsoftUser, "FOODSYNC_FOODSOFT_USER")
	_ = v.BindEnv("foodsoft.password", constants.EnvFoodsoftPass, "FOODSYNC_FOODSOFT_PASSWORD")
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
