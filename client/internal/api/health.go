package api

import (
	"context"
	"net/http"
)

// Health checks the unversioned /health endpoint. Any 2xx is healthy; the
// plain-text body is not parsed.
func Health(ctx context.Context, conn Conn) error {
	return Do(ctx, conn, nil, Request{
		Operation:   "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Unversioned: true,
	}, nil)
}
