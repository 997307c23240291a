package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/blockcheck/blockcheck/client/internal/api"
)

// Option configures a Client during construction in New.
//
// Options apply in order; WithHTTPClient replaces the *http.Client, so put it
// before options that adjust the client's transport or timeout.
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for custom transports,
// TLS settings or tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// By default there is none and requests run until the caller's context ends.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped to the debug log when enabled is true. The Authorization header is
// redacted from dumps.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		if _, already := c.http.Transport.(*debugTransport); already {
			return nil
		}
		transport := c.http.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: transport}
		return nil
	}
}

// WithSession makes the client read and write tokens through s. Clients that
// share a session share its token.
func WithSession(s *Session) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("nil session")
		}
		c.session = s
		return nil
	}
}

// WithToken seeds the client's session with a previously issued token. The
// token lands in the final session regardless of where WithSession appears.
func WithToken(token string) Option {
	return func(c *Client) error {
		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}
		c.seedToken = token
		return nil
	}
}

// WithRetry enables retrying recoverable failures (transport errors, 408,
// 429 and 5xx) up to attempts total tries with exponential backoff.
// Client errors and malformed bodies are never retried. attempts of 1
// disables retrying, which is the default.
func WithRetry(attempts int) Option {
	return func(c *Client) error {
		if attempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		c.retry = api.DefaultRetryPolicy(attempts)
		return nil
	}
}

// WithRateLimit paces outgoing requests to rps per second with the given
// burst. Every attempt, including retries, takes a token.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			return fmt.Errorf("rate limit must be > 0")
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithLimiter installs a custom limiter in place of WithRateLimit's token bucket.
func WithLimiter(l Limiter) Option {
	return func(c *Client) error {
		if l == nil {
			return fmt.Errorf("nil limiter")
		}
		c.limiter = l
		return nil
	}
}
