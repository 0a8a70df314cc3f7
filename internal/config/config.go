// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for the API client, logging, and the MCP transport.
type Config struct {
	APIHost     string        `env:"DND5E_API_HOST"     envDefault:"https://www.dnd5eapi.co"`
	HTTPTimeout time.Duration `env:"DND5E_HTTP_TIMEOUT" envDefault:"30s"`
	UserAgent   string        `env:"DND5E_USER_AGENT"   envDefault:"dnd5e-mcp-server/1.0 (github.com/olgasafonova/dnd5e-mcp-server)"`
	LogLevel    string        `env:"LOG_LEVEL"          envDefault:"info"`

	// HTTPAddr switches the MCP server from stdio to streamable HTTP when set.
	HTTPAddr string `env:"MCP_HTTP_ADDR"`

	// RateLimit is requests per minute per client IP in HTTP mode; 0 disables it.
	RateLimit    int   `env:"MCP_RATE_LIMIT"     envDefault:"60"`
	MaxBodyBytes int64 `env:"MCP_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the host URL, timeout, log level, and HTTP limits.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIHost)
	if err != nil {
		return fmt.Errorf("invalid DND5E_API_HOST %q: %w", c.APIHost, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid DND5E_API_HOST %q: must be an absolute http(s) URL", c.APIHost)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid DND5E_HTTP_TIMEOUT %v: must be positive", c.HTTPTimeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid MCP_RATE_LIMIT %d: must not be negative", c.RateLimit)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid MCP_MAX_BODY_BYTES %d: must be positive", c.MaxBodyBytes)
	}
	return nil
}

// SlogLevel returns the configured log level, falling back to info.
func (c Config) SlogLevel() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: want debug, info, warn or error", s)
	}
}
