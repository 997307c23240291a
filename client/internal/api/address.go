package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/blockcheck/blockcheck/client/internal/types"
)

// ValidateAddress asks the backend whether address is a valid Ethereum address.
func ValidateAddress(ctx context.Context, conn Conn, tokens types.TokenSource, address string) (*types.ValidateResponse, error) {
	addr, err := types.TrimInput(address)
	if err != nil {
		return nil, err
	}
	var vr types.ValidateResponse
	if err := Do(ctx, conn, tokens, Request{
		Operation: "validate",
		Method:    http.MethodGet,
		Path:      "/validate/" + url.PathEscape(addr),
	}, &vr); err != nil {
		return nil, err
	}
	return &vr, nil
}

// IsContract asks the backend whether address holds contract code.
func IsContract(ctx context.Context, conn Conn, tokens types.TokenSource, address string) (*types.ContractResponse, error) {
	addr, err := types.TrimInput(address)
	if err != nil {
		return nil, err
	}
	var cr types.ContractResponse
	if err := Do(ctx, conn, tokens, Request{
		Operation: "contract",
		Method:    http.MethodGet,
		Path:      "/isContract/" + url.PathEscape(addr),
	}, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}
