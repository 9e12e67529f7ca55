// Package foodsoft connects to a Foodsoft instance, the ordering platform
// of the cooperative, and downloads a supplier's current article list.
package foodsoft

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/articles/csvcodec"
	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/logging"
)

const platformName = "foodsoft"

// DefaultArticlesPath is the export path of a supplier's articles,
// relative to the base URL.
const DefaultArticlesPath = "suppliers/%d/articles.csv"

// Client is a logged-in session with a Foodsoft instance. The session
// cookie is kept in the client's cookie jar.
type Client struct {
	cfg          Config
	http         *resty.Client
	articlesPath string
	logger       *zerolog.Logger

	mu       sync.Mutex
	loggedIn bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout of every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithRetries sets how often a failed request is repeated and the
// backoff between attempts. A count of zero disables retries.
func WithRetries(count int, wait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.
			SetRetryCount(count).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(maxWait)
	}
}

// WithArticlesPath overrides the article export path. The path must
// contain one %d verb for the supplier ID.
func WithArticlesPath(path string) Option {
	return func(c *Client) {
		c.articlesPath = path
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a client for the given configuration. No request is
// made until Login or Articles is called.
func NewClient(cfg Config, opts ...Option) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.BaseURL()).
		SetHeader("User-Agent", "foodsync").
		SetTimeout(constants.DefaultHTTPTimeout).
		SetRetryCount(constants.MaxRetries).
		SetRetryWaitTime(constants.RetryBackoff).
		SetRetryMaxWaitTime(constants.MaxRetryBackoff).
		AddRetryCondition(retryable)

	c := &Client{
		cfg:          cfg,
		http:         restyClient,
		articlesPath: DefaultArticlesPath,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryable repeats transport failures and server-side errors. Client
// errors such as a missing supplier are final.
func retryable(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
}

// Login opens a session: it fetches the login page for the CSRF token and
// posts the credentials.
func (c *Client) Login(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loggedIn {
		return nil
	}

	page, err := c.http.R().SetContext(ctx).Get("login")
	if err != nil {
		return errors.WrapAPI(platformName, 0, fmt.Errorf("fetch login page: %w", err))
	}
	if page.StatusCode() >= http.StatusBadRequest {
		return errors.NewAPIError(platformName, page.StatusCode(), "login page unavailable")
	}

	token, ok := csrfToken(bytes.NewReader(page.Body()))
	if !ok {
		return errors.NewAPIError(platformName, page.StatusCode(), "login page carries no CSRF token")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"authenticity_token": token,
			"nick":               c.cfg.User,
			"password":           c.cfg.Password,
		}).
		Post("sessions")
	if err != nil {
		return errors.WrapAPI(platformName, 0, fmt.Errorf("post credentials: %w", err))
	}
	if resp.StatusCode() >= http.StatusBadRequest || hasLoginForm(bytes.NewReader(resp.Body())) {
		return errors.NewAuthenticationError(platformName, c.cfg.User, "login rejected", nil)
	}

	c.loggedIn = true
	c.logger.Debug().Str("user", c.cfg.User).Msg("Logged in to Foodsoft")
	return nil
}

// ArticlesCSV downloads the raw article export of a supplier.
func (c *Client) ArticlesCSV(ctx context.Context, supplierID int) ([]byte, error) {
	if err := c.Login(ctx); err != nil {
		return nil, err
	}

	path := fmt.Sprintf(c.articlesPath, supplierID)
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, errors.WrapAPI(platformName, 0, fmt.Errorf("download articles: %w", err))
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errors.NewNotFoundError("supplier", fmt.Sprint(supplierID))
	case resp.StatusCode() >= http.StatusBadRequest:
		apiErr := errors.NewAPIError(platformName, resp.StatusCode(), "article download failed")
		apiErr.Endpoint = path
		return nil, apiErr
	case hasLoginForm(bytes.NewReader(resp.Body())):
		return nil, errors.NewAuthenticationError(platformName, c.cfg.User, "session expired", nil)
	}

	return resp.Body(), nil
}

// Articles downloads and decodes the article list of a supplier.
func (c *Client) Articles(ctx context.Context, supplierID int) ([]articles.Article, error) {
	body, err := c.ArticlesCSV(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	list, err := csvcodec.Read(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decoding articles of supplier %d: %w", supplierID, err)
	}

	c.logger.Debug().Int("supplier_id", supplierID).Int("articles", len(list)).Msg("Fetched platform articles")
	return list, nil
}
