package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blockcheck/blockcheck/client/internal/api"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the blockcheck backend. Every request carries the bearer
// token held by the client's Session once one has been issued.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	limiter Limiter
	retry   api.RetryPolicy

	// seedToken is set by WithToken and stored once all options have run.
	seedToken string
}

// New constructs a Client for the backend at baseURL (scheme and host, e.g.
// http://localhost:8080; the /v1 prefix is added per request).
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: NewSession(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.seedToken != "" {
		c.session.SetToken(c.seedToken)
	}
	return c, nil
}

// Session returns the session whose token this client sends.
func (c *Client) Session() *Session { return c.session }

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) conn() api.Conn {
	return api.Conn{
		HTTP:    c.http,
		BaseURL: c.baseURL,
		Limiter: c.limiter,
		Retry:   c.retry,
	}
}

// --------------------------------------------------------------------
// Operations - delegated to internal/api
// --------------------------------------------------------------------

// GenerateToken requests a new token (POST /token with an empty object) and
// stores it in the client's session. On failure the session is unchanged.
func (c *Client) GenerateToken(ctx context.Context) (*TokenResponse, error) {
	start := time.Now()
	tr, err := api.GenerateToken(ctx, c.conn(), c.session)
	observe("token", start, err)
	return tr, err
}

// ValidateAddress asks the backend whether address is a valid Ethereum
// address (GET /validate/{address}). Surrounding whitespace is trimmed.
func (c *Client) ValidateAddress(ctx context.Context, address string) (*ValidateResponse, error) {
	start := time.Now()
	vr, err := api.ValidateAddress(ctx, c.conn(), c.session, address)
	observe("validate", start, err)
	return vr, err
}

// ResolveENS resolves an ENS name (GET /resolveEns/{name}).
func (c *Client) ResolveENS(ctx context.Context, name string) (*ResolveResponse, error) {
	start := time.Now()
	rr, err := api.ResolveENS(ctx, c.conn(), c.session, name)
	observe("resolve", start, err)
	return rr, err
}

// IsContract reports whether address holds contract code (GET /isContract/{address}).
func (c *Client) IsContract(ctx context.Context, address string) (*ContractResponse, error) {
	start := time.Now()
	cr, err := api.IsContract(ctx, c.conn(), c.session, address)
	observe("contract", start, err)
	return cr, err
}

// Health checks GET /health on the backend root.
func (c *Client) Health(ctx context.Context) error {
	start := time.Now()
	err := api.Health(ctx, c.conn())
	observe("health", start, err)
	return err
}
