package client

import "github.com/blockcheck/blockcheck/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Responses
	TokenResponse    = types.TokenResponse
	ValidateResponse = types.ValidateResponse
	ResolveResponse  = types.ResolveResponse
	ContractResponse = types.ContractResponse

	// Limiter paces outgoing requests; *rate.Limiter satisfies it.
	Limiter = types.Limiter
)
