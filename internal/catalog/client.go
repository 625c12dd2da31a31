// Package catalog provides a client for the game catalog backend API.
package catalog

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gamecatalog/web/internal/cache"
)

const (
	defaultBaseURL  = "http://localhost:3001"
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 5 * time.Minute
)

// ErrEmptyID is returned by GetGameByID when called without an id.
var ErrEmptyID = errors.New("catalog: empty game id")

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the catalog backend.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	limiter    *rate.Limiter
	cache      cache.Store
	cacheTTL   time.Duration
	log        zerolog.Logger
}

// NewClient creates a new catalog API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		cacheTTL:   defaultCacheTTL,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h HTTPDoer) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimit caps outbound requests per second; burst equals the rate.
// A non-positive rps disables limiting.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
}

// WithCache stores successful responses in s for ttl.
func WithCache(s cache.Store, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = s
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}
