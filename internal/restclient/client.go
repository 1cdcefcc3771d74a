// Package restclient is the HTTP transport for the projeto API.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single request when no client is supplied.
const DefaultTimeout = 30 * time.Second

// Client sends JSON requests to the projeto API. It keeps no state between
// calls beyond its configuration.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	token      string
	metrics    *Metrics
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. A client supplied through
// WithHTTPClient is copied first and left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithMetrics records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger enables debug logging of requests.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL
// (e.g. "http://localhost:3000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get sends a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, operation, path string, out any) error {
	return c.do(ctx, operation, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPut, path, body, out)
}

// Delete sends a DELETE request and decodes the response into out.
func (c *Client) Delete(ctx context.Context, operation, path string, out any) error {
	return c.do(ctx, operation, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) (err error) {
	url := c.baseURL + path
	started := time.Now()
	defer func() {
		c.metrics.observe(operation, method, started, err)
	}()

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &Error{Operation: operation, Method: method, URL: url, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &Error{Operation: operation, Method: method, URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if c.logger != nil {
		c.logger.Debug("projeto api request", "operation", operation, "method", method, "url", url, "request_id", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Operation: operation, Method: method, URL: url, Err: fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Operation: operation, Method: method, URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf("reading response: %w", err)}
	}

	if c.logger != nil {
		c.logger.Debug("projeto api response", "operation", operation, "status", resp.StatusCode, "request_id", requestID, "bytes", len(data))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(operation, method, url, resp.StatusCode, resp.Status, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Operation: operation, Method: method, URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Body: data, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
