package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	clienterrors "github.com/blockcheck/blockcheck/client/internal/errors"
	"github.com/blockcheck/blockcheck/client/internal/types"
)

const (
	// BasePath prefixes every versioned endpoint.
	BasePath = "/v1"
	// RequestIDHeader carries a per-attempt correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Conn bundles what every call needs to reach the backend.
type Conn struct {
	HTTP    types.HTTPClient
	BaseURL string
	Limiter types.Limiter // optional
	Retry   RetryPolicy
}

// Request describes one backend call. The method is always explicit;
// Payload is JSON-encoded as the body when non-nil.
type Request struct {
	Operation   string
	Method      string
	Path        string
	Payload     any
	Unversioned bool // Path is relative to the server root, not BasePath
}

func (c Conn) url(r Request) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if r.Unversioned {
		return base + r.Path
	}
	return base + BasePath + r.Path
}

// Do performs r and decodes a 2xx JSON body into out (skipped when out is nil).
// The bearer header is attached when tokens holds a token.
func Do(ctx context.Context, conn Conn, tokens types.TokenSource, r Request, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body []byte
	if r.Payload != nil {
		b, err := json.Marshal(r.Payload)
		if err != nil {
			return err
		}
		body = b
	}
	return withRetry(ctx, conn.Retry, r.Operation, func(attempt int) error {
		return doOnce(ctx, conn, tokens, r, body, out, attempt)
	})
}

func doOnce(ctx context.Context, conn Conn, tokens types.TokenSource, r Request, body []byte, out any, attempt int) error {
	if conn.Limiter != nil {
		if err := conn.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, conn.url(r), rdr)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	authorized := false
	if tokens != nil {
		if tok, ok := tokens.Token(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
			authorized = true
		}
	}

	log.Debug().
		Str("op", r.Operation).
		Str("method", r.Method).
		Str("path", httpReq.URL.EscapedPath()).
		Str("request_id", requestID).
		Bool("authorized", authorized).
		Int("attempt", attempt).
		Msg("making request")

	start := time.Now()
	resp, err := conn.HTTP.Do(httpReq)
	if err != nil {
		log.Debug().Err(err).Str("op", r.Operation).Str("request_id", requestID).Msg("request failed")
		return clienterrors.NewNetworkError(r.Operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return clienterrors.NewNetworkError(r.Operation, err)
	}

	log.Debug().
		Str("op", r.Operation).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("raw response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return clienterrors.NewHTTPError(resp.StatusCode, string(raw), r.Operation)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return clienterrors.NewDecodeError(r.Operation, resp.StatusCode, string(raw), err)
	}
	return nil
}
