package types

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token for a request. ok is false until a
// token has been issued.
type TokenSource interface {
	Token() (token string, ok bool)
}

// TokenSink stores a freshly issued token.
type TokenSink interface {
	SetToken(token string)
}

// Session is read by every request and written by token issuance.
type Session interface {
	TokenSource
	TokenSink
}

// Limiter paces outgoing requests.
type Limiter interface {
	Wait(ctx context.Context) error
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrEmptyInput is returned when a required address or name is blank after trimming.
var ErrEmptyInput = errors.New("empty input")

// TrimInput strips surrounding whitespace from user input and rejects empty
// values. No other validation is applied; the server is the authority.
func TrimInput(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", ErrEmptyInput
	}
	return v, nil
}
