package foodsoft

import (
	"net/url"
	"os"
	"strings"

	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Config locates a Foodsoft instance and the account used to log in.
type Config struct {
	// URL is the base URL of the cooperative, e.g. https://app.foodcoops.net/demo/
	URL      string `yaml:"url" json:"url" validate:"omitempty,url"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"-" json:"-"`
}

// ConfigFromEnv reads TR_FOODSOFT_URL, TR_FOODSOFT_USER and TR_FOODSOFT_PASS.
// Credentials are only taken when both user and password are set.
func ConfigFromEnv() Config {
	cfg := Config{URL: os.Getenv(constants.EnvFoodsoftURL)}
	user, hasUser := os.LookupEnv(constants.EnvFoodsoftUser)
	pass, hasPass := os.LookupEnv(constants.EnvFoodsoftPass)
	if hasUser && hasPass {
		cfg.User = user
		cfg.Password = pass
	}
	return cfg
}

// Configured reports whether a platform URL is set.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.URL) != ""
}

// HasCredentials reports whether user and password are set.
func (c Config) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}

// BaseURL returns the URL with a trailing slash.
func (c Config) BaseURL() string {
	u := strings.TrimSpace(c.URL)
	if u != "" && !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// CoopName returns the cooperative's name, taken from the last path
// segment of the URL. Without one, constants.DefaultCoopName is returned.
func (c Config) CoopName() string {
	if !c.Configured() {
		return constants.DefaultCoopName
	}
	u, err := url.Parse(c.BaseURL())
	if err != nil {
		return constants.DefaultCoopName
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if name := segments[len(segments)-1]; name != "" {
		return name
	}
	return constants.DefaultCoopName
}

// Validate checks that the configuration can be used to log in.
func (c Config) Validate() error {
	if !c.Configured() {
		return errors.NewConfigError("foodsoft", constants.EnvFoodsoftURL+" is not set", nil)
	}
	u, err := url.Parse(c.BaseURL())
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewConfigError("foodsoft", "invalid platform URL "+c.URL, err)
	}
	if !c.HasCredentials() {
		return errors.NewAuthenticationError(platformName, "", "platform credentials are not set", nil)
	}
	return nil
}
