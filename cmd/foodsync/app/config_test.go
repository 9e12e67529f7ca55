package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
)

// isolate keeps the developer's own config and environment out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{constants.EnvFoodsoftURL, constants.EnvFoodsoftUser, constants.EnvFoodsoftPass, "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "foodsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestLoadConfigDefaults verifies the defaults without any config file.
func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.OutputDir != constants.DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", config.OutputDir, constants.DefaultOutputDir)
	}
	if config.LedgerPath != constants.DefaultLedgerPath {
		t.Errorf("LedgerPath = %q, want %q", config.LedgerPath, constants.DefaultLedgerPath)
	}
	if !config.PinCategories {
		t.Error("PinCategories should default to true")
	}
	if config.RunTimeout != constants.RunTimeout {
		t.Errorf("RunTimeout = %v, want %v", config.RunTimeout, constants.RunTimeout)
	}
	if config.Schedule != constants.DefaultSchedule {
		t.Errorf("Schedule = %q, want %q", config.Schedule, constants.DefaultSchedule)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestLoadConfigFile verifies reading an explicit config file.
func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `
output_dir: /srv/exports
xlsx: true
run_timeout: 2m
compare_fields: [name, price_net]
ignore_categories: [Leergut]
foodsoft:
  url: https://app.foodcoops.net/demo/
  user: ordering
suppliers:
  - name: Bio
    id: 7
    input: /srv/in/bio.csv
    ignore_categories: [Pfand]
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.OutputDir != "/srv/exports" {
		t.Errorf("OutputDir = %q", config.OutputDir)
	}
	if !config.XLSX {
		t.Error("XLSX not loaded")
	}
	if config.RunTimeout != 2*time.Minute {
		t.Errorf("RunTimeout = %v, want 2m", config.RunTimeout)
	}
	if len(config.CompareFields) != 2 {
		t.Errorf("CompareFields = %v", config.CompareFields)
	}
	if config.Foodsoft.URL != "https://app.foodcoops.net/demo/" || config.Foodsoft.User != "ordering" {
		t.Errorf("Foodsoft = %+v", config.Foodsoft)
	}

	s, ok := config.Supplier("Bio")
	if !ok {
		t.Fatal("supplier Bio not loaded")
	}
	if s.ID != 7 || s.Input != "/srv/in/bio.csv" {
		t.Errorf("supplier = %+v", s)
	}
	if _, ok := config.Supplier("bio"); ok {
		t.Error("supplier names must be matched exactly")
	}
}

// TestLoadConfigEnvironment verifies the Foodsoft environment variables.
func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(constants.EnvFoodsoftURL, "https://app.foodcoops.net/demo")
	t.Setenv(constants.EnvFoodsoftUser, "ordering")
	t.Setenv(constants.EnvFoodsoftPass, "secret")
	t.Setenv("FOODSYNC_OUTPUT_DIR", "/tmp/exports")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Foodsoft.HasCredentials() {
		t.Error("credentials not loaded from the environment")
	}
	if config.Foodsoft.CoopName() != "demo" {
		t.Errorf("CoopName() = %q, want demo", config.Foodsoft.CoopName())
	}
	if config.OutputDir != "/tmp/exports" {
		t.Errorf("OutputDir = %q, want /tmp/exports", config.OutputDir)
	}
}

// TestLoadConfigInvalidURL verifies that a malformed platform URL is fatal.
func TestLoadConfigInvalidURL(t *testing.T) {
	isolate(t)
	t.Setenv(constants.EnvFoodsoftURL, "not a url")

	_, err := LoadConfig("")
	if !errors.IsConfigError(err) {
		t.Errorf("LoadConfig() error = %v, want config error", err)
	}
}

// TestLoadConfigMissingFile verifies that an explicit config file must exist.
func TestLoadConfigMissingFile(t *testing.T) {
	home := isolate(t)

	_, err := LoadConfig(filepath.Join(home, "missing.yaml"))
	if !errors.IsConfigError(err) {
		t.Errorf("LoadConfig() error = %v, want config error", err)
	}
}

// TestUpdateFromFlags verifies flag precedence over loaded values.
func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml"}

	config.UpdateFromFlags(true, false, true, "", "debug")
	if !config.Verbose || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %q, an empty flag must not override", config.Format)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}

	config.UpdateFromFlags(false, false, false, "json", "")
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
}
