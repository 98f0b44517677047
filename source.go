package countryexplorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the restcountries endpoint returning every country.
const DefaultURL = "https://restcountries.com/v3.1/all"

// defaultTimeout bounds a whole fetch, body included.
const defaultTimeout = 30 * time.Second

// maxBodySize caps the response body. The full v3.1 list is well under 2MB.
const maxBodySize = 32 << 20

// Load error kinds. Both surface to the state machine as a Failed phase.
var (
	ErrNetworkFailure   = errors.New("network failure")
	ErrMalformedPayload = errors.New("malformed payload")
)

// DataSource fetches the country list once.
type DataSource interface {
	Fetch(ctx context.Context) ([]Country, error)
}

// DataSourceFunc adapts a function to a DataSource.
type DataSourceFunc func(ctx context.Context) ([]Country, error)

// Fetch calls f.
func (f DataSourceFunc) Fetch(ctx context.Context) ([]Country, error) {
	return f(ctx)
}

// SourceConfig contains configuration options for HTTPSource.
type SourceConfig struct {
	URL       string        // Endpoint (default: DefaultURL)
	Timeout   time.Duration // Whole-request timeout (default: 30s)
	UserAgent string        // Optional User-Agent header
	Client    *http.Client  // Optional client; its Timeout is left untouched
}

// SourceOption is a functional option for configuring HTTPSource.
type SourceOption func(*SourceConfig)

// WithURL sets the endpoint URL.
func WithURL(u string) SourceOption {
	return func(c *SourceConfig) {
		c.URL = u
	}
}

// WithTimeout sets the whole-request timeout. Zero or negative keeps the default.
func WithTimeout(d time.Duration) SourceOption {
	return func(c *SourceConfig) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with the request.
func WithUserAgent(ua string) SourceOption {
	return func(c *SourceConfig) {
		c.UserAgent = ua
	}
}

// WithHTTPClient sets the HTTP client used for the request.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(c *SourceConfig) {
		c.Client = client
	}
}

func defaultSourceConfig() *SourceConfig {
	return &SourceConfig{
		URL:     DefaultURL,
		Timeout: defaultTimeout,
	}
}

// HTTPSource fetches the country list with one HTTP GET.
type HTTPSource struct {
	config *SourceConfig
	client *http.Client
}

// NewHTTPSource creates an HTTPSource.
//
//	src := NewHTTPSource(WithTimeout(10 * time.Second))
//	countries, err := src.Fetch(ctx)
func NewHTTPSource(opts ...SourceOption) *HTTPSource {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPSource{config: cfg, client: client}
}

// URL returns the endpoint the source fetches from.
func (s *HTTPSource) URL() string {
	return s.config.URL
}

// Fetch performs the GET request and decodes the body.
// Transport errors and non-2xx statuses wrap ErrNetworkFailure; a body that is
// not a JSON array wraps ErrMalformedPayload.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Country, error) {
	url := s.config.URL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", ErrNetworkFailure, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTP GET %s: %w", ErrNetworkFailure, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP GET %s: status %d", ErrNetworkFailure, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %w", ErrNetworkFailure, url, err)
	}
	return DecodeCountries(body)
}
