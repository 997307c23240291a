package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/blockcheck/blockcheck/client/internal/types"
)

// ResolveENS resolves an ENS name to an address through the backend.
func ResolveENS(ctx context.Context, conn Conn, tokens types.TokenSource, name string) (*types.ResolveResponse, error) {
	n, err := types.TrimInput(name)
	if err != nil {
		return nil, err
	}
	var rr types.ResolveResponse
	if err := Do(ctx, conn, tokens, Request{
		Operation: "resolve",
		Method:    http.MethodGet,
		Path:      "/resolveEns/" + url.PathEscape(n),
	}, &rr); err != nil {
		return nil, err
	}
	return &rr, nil
}
