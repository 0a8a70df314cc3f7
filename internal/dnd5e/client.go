// Package dnd5e is a typed client for the D&D 5th edition REST API
// (https://www.dnd5eapi.co). It covers the character-data endpoints the
// actions need: ability scores and backgrounds.
package dnd5e

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/olgasafonova/dnd5e-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/dnd5e-mcp-server/internal/errors"
	"github.com/olgasafonova/dnd5e-mcp-server/metrics"
	"github.com/olgasafonova/dnd5e-mcp-server/tracing"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultHost is the public API instance
	DefaultHost = "https://www.dnd5eapi.co"

	// DefaultUserAgent is the default user agent for D&D 5e API requests
	DefaultUserAgent = "dnd5e-mcp-server/1.0 (github.com/olgasafonova/dnd5e-mcp-server)"
)

// Client provides access to the D&D 5e API
type Client struct {
	*base.Client
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHost sets the API host, e.g. "https://www.dnd5eapi.co"
func WithHost(host string) ClientOption {
	return base.WithBaseURL(host)
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return base.WithUserAgent(ua)
}

// WithTimeout sets the HTTP request timeout
func WithTimeout(d time.Duration) ClientOption {
	return base.WithTimeout(d)
}

// NewClient creates a new D&D 5e API client
func NewClient(opts ...ClientOption) *Client {
	defaults := []ClientOption{
		base.WithBaseURL(DefaultHost),
		base.WithUserAgent(DefaultUserAgent),
	}
	return &Client{
		Client: base.NewClient(append(defaults, opts...)...),
	}
}

// GetAbilityScore retrieves one ability score by index (str, dex, con, int, wis, cha)
func (c *Client) GetAbilityScore(ctx context.Context, index string) (*AbilityScore, error) {
	const op = "GetAbilityScore"
	if index == "" {
		return nil, apierrors.Wrap(op, "index is required", nil)
	}

	var score AbilityScore
	if err := c.doRequest(ctx, op, "/api/ability-scores/"+url.PathEscape(index), &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// ListBackgrounds lists all backgrounds as summary references
func (c *Client) ListBackgrounds(ctx context.Context) (*APIReferenceList, error) {
	const op = "ListBackgrounds"

	var list APIReferenceList
	if err := c.doRequest(ctx, op, "/api/backgrounds", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetBackground retrieves the full details of one background by index
func (c *Client) GetBackground(ctx context.Context, index string) (*Background, error) {
	const op = "GetBackground"
	if index == "" {
		return nil, apierrors.Wrap(op, "index is required", nil)
	}

	var background Background
	if err := c.doRequest(ctx, op, "/api/backgrounds/"+url.PathEscape(index), &background); err != nil {
		return nil, err
	}
	return &background, nil
}

// doRequest performs one traced, metered GET and decodes the JSON body into result.
// Every failure is returned as an *apierrors.APIError.
func (c *Client) doRequest(ctx context.Context, op, path string, result any) (err error) {
	ctx, span := tracing.StartSpan(ctx, "dnd5e.api."+op)
	defer span.End()
	tracing.AddAPIAttributes(span, op, path)

	start := time.Now()
	errorCode := ""
	defer func() {
		metrics.RecordAPICall(op, time.Since(start).Seconds(), err == nil, errorCode)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		span.SetStatus(codes.Ok, "")
	}()

	body, statusCode, err := c.Client.DoRequest(ctx, path)
	if err != nil {
		errorCode = "transport"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			errorCode = "canceled"
		}
		return apierrors.Wrap(op, "request failed", err)
	}

	if statusCode < 200 || statusCode >= 300 {
		errorCode = strconv.Itoa(statusCode)
		return apierrors.NewStatusError(op, statusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		errorCode = "decode"
		return apierrors.Wrap(op, "failed to parse response", err)
	}

	return nil
}
