package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"equity-intel/internal/api"
)

const (
	// DefaultBaseURL is the base URL for the Finnhub API.
	DefaultBaseURL = "https://finnhub.io/api/v1"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the free-tier friendly request rate.
	DefaultRateLimit = 1

	dateLayout = "2006-01-02"
)

// Client is a Finnhub API client.
type Client struct {
	apiKey    string
	baseURL   string
	timeout   time.Duration
	rateLimit int
	retry     *api.RetryConfig
	hc        *http.Client
	rest      *api.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRateLimit sets the request rate; zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.rateLimit = requestsPerSecond
	}
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(cfg *api.RetryConfig) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient creates a new Finnhub API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		rateLimit: DefaultRateLimit,
		retry:     api.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}

	httpOpts := []api.ClientOption{
		api.WithBaseURL(c.baseURL),
		api.WithHeader("Accept", "application/json"),
		api.WithRateLimit(c.rateLimit),
		api.WithLogging(true),
	}
	if c.hc != nil {
		httpOpts = append(httpOpts, api.WithHTTPClient(c.hc))
	} else {
		httpOpts = append(httpOpts, api.WithTimeout(c.timeout))
	}
	if c.retry == nil {
		c.retry = api.DefaultRetryConfig()
	}
	c.rest = api.NewClient(httpOpts...)

	return c
}

// get performs a GET request against endpoint and decodes the JSON body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("token", c.apiKey)

	req := api.NewRequest(http.MethodGet, endpoint).WithContext(ctx).WithQuery(params)
	resp, err := c.rest.DoWithRetry(req, c.retry)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusTooManyRequests {
				return &RateLimitError{Endpoint: endpoint, Attempts: c.retry.MaxAttempts}
			}
			return &APIError{StatusCode: httpErr.StatusCode, Message: httpErr.Body, Endpoint: endpoint}
		}
		return fmt.Errorf("finnhub %s: %w", endpoint, err)
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func dateRange(symbol string, from, to time.Time) url.Values {
	return url.Values{
		"symbol": {symbol},
		"from":   {from.Format(dateLayout)},
		"to":     {to.Format(dateLayout)},
	}
}

// GetCompanyNews retrieves company news published between from and to.
func (c *Client) GetCompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]CompanyNews, error) {
	var result []CompanyNews
	if err := c.get(ctx, "/company-news", dateRange(symbol, from, to), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetEarningsCalendar retrieves earnings calendar rows between from and to.
func (c *Client) GetEarningsCalendar(ctx context.Context, symbol string, from, to time.Time) ([]EarningsCalendarEntry, error) {
	var result earningsCalendarResponse
	if err := c.get(ctx, "/calendar/earnings", dateRange(symbol, from, to), &result); err != nil {
		return nil, err
	}
	return result.EarningsCalendar, nil
}
