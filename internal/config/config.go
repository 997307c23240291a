// Package config loads blockcheck settings from BLOCKCHECK_* environment
// variables. Command-line flags override these values where a binary
// exposes them.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/blockcheck/blockcheck/client"
)

// Prefix is the environment variable prefix, e.g. BLOCKCHECK_API_URL.
const Prefix = "BLOCKCHECK"

// Config holds client, CLI and MCP server settings.
type Config struct {
	// Backend root; the /v1 prefix is added by the client.
	APIURL string `envconfig:"API_URL" default:"http://localhost:8080"`
	// Previously issued token to seed the session with.
	Token string `envconfig:"TOKEN" default:""`

	Debug    bool   `envconfig:"DEBUG" default:"false"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// 0 means no client timeout.
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	RetryAttempts int           `envconfig:"RETRY_ATTEMPTS" default:"1"`
	// Requests per second; 0 disables client-side rate limiting.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"0"`
	RateBurst int     `envconfig:"RATE_BURST" default:"1"`

	// MCP server
	MCPName         string        `envconfig:"MCP_NAME" default:"blockcheck-mcp"`
	MCPVersion      string        `envconfig:"MCP_VERSION" default:"0.1.0"`
	MCPAddr         string        `envconfig:"MCP_ADDR" default:":11546"`
	MCPTransport    string        `envconfig:"MCP_TRANSPORT" default:"auto"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// New reads the environment and validates the result.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the environment without validating, so callers can layer flag
// overrides on top before calling Validate. A BLOCKCHECK_* variable that is
// set but empty counts as unset.
func Load() (*Config, error) {
	clearEmpty()
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// clearEmpty unsets empty prefixed variables; envconfig would otherwise try
// to parse "" into typed fields.
func clearEmpty() {
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if value == "" && strings.HasPrefix(key, Prefix+"_") {
			_ = os.Unsetenv(key)
		}
	}
}

// Validate checks value ranges and normalizes enumerations.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_URL %q: must be an absolute URL", c.APIURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be >= 0")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be >= 1")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must be >= 0")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	c.MCPTransport = strings.ToLower(c.MCPTransport)
	switch c.MCPTransport {
	case "auto", "stdio", "http":
	default:
		return fmt.Errorf("unsupported MCP_TRANSPORT: %s", c.MCPTransport)
	}
	return nil
}

// Level returns the configured log level; Debug forces debug.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ClientOptions translates the settings into client options. The session is
// supplied by the caller so that binaries control its lifetime.
func (c *Config) ClientOptions(sess *client.Session) []client.Option {
	opts := []client.Option{client.WithSession(sess)}
	if c.Token != "" {
		opts = append(opts, client.WithToken(c.Token))
	}
	if c.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.RetryAttempts > 1 {
		opts = append(opts, client.WithRetry(c.RetryAttempts))
	}
	if c.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(c.RateLimit, c.RateBurst))
	}
	if c.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	return opts
}

// NewClient builds a client for APIURL with a fresh session.
func (c *Config) NewClient() (*client.Client, error) {
	return client.New(c.APIURL, c.ClientOptions(client.NewSession())...)
}
