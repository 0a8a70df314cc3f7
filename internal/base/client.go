// Package base provides shared HTTP client infrastructure for the D&D 5e API client.
package base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when no user agent is configured
	DefaultUserAgent = "dnd5e-mcp-server/1.0"

	// maxBodySize caps how much of a response body is read
	maxBodySize = 10 << 20
)

// Client provides common HTTP client infrastructure: a base URL, a user agent,
// and a pooled HTTP client whose idle connections are released on Close.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	BaseURL    string
	UserAgent  string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithBaseURL sets the host every request path is resolved against
func WithBaseURL(u string) ClientOption {
	return func(client *Client) {
		client.BaseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		client.UserAgent = ua
	}
}

// WithTimeout replaces the HTTP client with a pooled one using the given timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(d)
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
		UserAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases idle connections held by the client. It is safe to call more than once.
func (c *Client) Close() {
	if c.HTTPClient != nil {
		c.HTTPClient.CloseIdleConnections()
	}
}

// URL resolves a request path against the base URL
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

// DoRequest performs a single GET request against path. There is no retry:
// the returned error is non-nil only when no response was received.
// Non-2xx responses return their body and status for the caller to handle.
func (c *Client) DoRequest(ctx context.Context, path string) ([]byte, int, error) {
	reqURL := c.URL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("API request failed", "url", reqURL, "error", err)
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.Logger.Debug("API request completed", "url", reqURL, "status", resp.StatusCode, "bytes", len(body))
	return body, resp.StatusCode, nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
