package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/display"
)

// AddressHandler exposes validate_address and is_contract tools.
type AddressHandler struct {
	client *client.Client
}

// NewAddressHandler returns a new handler.
func NewAddressHandler(c *client.Client) *AddressHandler {
	return &AddressHandler{client: c}
}

// RegisterTools registers address tools with the MCP server.
func (ah *AddressHandler) RegisterTools(s *server.MCPServer) error {
	validate := mcp.NewTool("validate_address",
		mcp.WithDescription("Check whether an Ethereum address is valid, including its EIP-55 checksum"),
		mcp.WithString("address", mcp.Required(), mcp.Description("0x-prefixed Ethereum address")),
	)
	s.AddTool(validate, ah.handleValidate)

	isContract := mcp.NewTool("is_contract",
		mcp.WithDescription("Check whether an Ethereum address holds contract code"),
		mcp.WithString("address", mcp.Required(), mcp.Description("0x-prefixed Ethereum address")),
	)
	s.AddTool(isContract, ah.handleIsContract)

	return nil
}

func (ah *AddressHandler) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := requireToken(ah.client); res != nil {
		return res, nil
	}
	raw, _ := req.RequireString("address")
	address := strings.TrimSpace(raw)

	log.Debug().Str("address", address).Msg("handling validate_address request")

	start := time.Now()
	r, err := ah.client.ValidateAddress(ctx, address)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("address", address).Dur("elapsed", elapsed).Msg("validate_address failed")
	} else {
		log.Debug().Str("address", address).Bool("is_valid", r.IsValid).Dur("elapsed", elapsed).Msg("validate_address completed")
	}
	return toResult(display.Validation(address, r, err)), nil
}

func (ah *AddressHandler) handleIsContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := requireToken(ah.client); res != nil {
		return res, nil
	}
	raw, _ := req.RequireString("address")
	address := strings.TrimSpace(raw)

	log.Debug().Str("address", address).Msg("handling is_contract request")

	start := time.Now()
	r, err := ah.client.IsContract(ctx, address)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("address", address).Dur("elapsed", elapsed).Msg("is_contract failed")
	} else {
		log.Debug().Str("address", address).Bool("is_contract", r.IsContract).Dur("elapsed", elapsed).Msg("is_contract completed")
	}
	return toResult(display.Contract(address, r, err)), nil
}
