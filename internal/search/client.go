package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tagsight/internal/logging"
)

const defaultTimeout = 10 * time.Second

// userAgent is sent on every backend request.
const userAgent = "TagSight/1.0"

// Client talks to the configured order backend. It is safe for concurrent
// use once constructed.
type Client struct {
	baseURL    string
	dialect    Dialect
	apiKey     string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithBasicAuth attaches username/password credentials to every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = strings.TrimSpace(username)
		c.password = password
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a backend client. The dialect is detected from the base URL.
// Operators paste tokens with or without the "Bearer " prefix, so the key
// is normalized to the bare token here.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("backend base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		dialect:    DetectDialect(baseURL),
		apiKey:     normalizeToken(apiKey),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "search")
	return client, nil
}

// Dialect returns the detected backend dialect.
func (c *Client) Dialect() Dialect {
	return c.dialect
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func normalizeToken(key string) string {
	key = strings.TrimSpace(key)
	if rest, ok := strings.CutPrefix(key, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return key
}

// newRequest builds a request against the backend with auth headers
// applied. path is joined to the base URL and must start with "/".
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		// Meilisearch deployments behind older proxies read this header
		// instead of Authorization.
		req.Header.Set("X-Meilisearch-API-Key", c.apiKey)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

// do executes the request and decodes a JSON response into out when out is
// non-nil. It returns the HTTP status code for callers that treat some
// error statuses as signal rather than failure.
func (c *Client) do(req *http.Request, out any) (int, error) {
	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return 0, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// Mutation endpoints answer a bare 200 with no body; that is not a
		// decode failure.
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
