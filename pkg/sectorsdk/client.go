package sectorsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 10 * time.Second

// Client is a client for the sector API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token, when set, is sent as a bearer token on every request.
	Token string

	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The client is used as
// given; WithTimeout does not change it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = strings.TrimSpace(token) }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.timeout}
	}
	return c
}
