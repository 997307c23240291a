package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/display"
)

// TokenHandler exposes the generate_token tool. The token is kept in the
// client's session and never returned to the caller.
type TokenHandler struct {
	client *client.Client
}

// NewTokenHandler returns a new handler.
func NewTokenHandler(c *client.Client) *TokenHandler {
	return &TokenHandler{client: c}
}

// RegisterTools registers token tools with the MCP server.
func (th *TokenHandler) RegisterTools(s *server.MCPServer) error {
	gen := mcp.NewTool("generate_token",
		mcp.WithDescription("Request a new API token; required before any lookup tool can be used"),
	)
	s.AddTool(gen, th.handleGenerateToken)
	return nil
}

func (th *TokenHandler) handleGenerateToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("handling generate_token request")

	start := time.Now()
	tr, err := th.client.GenerateToken(ctx)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("generate_token failed")
	} else {
		log.Debug().Dur("elapsed", elapsed).Msg("generate_token completed")
	}
	return toResult(display.Token(tr, err)), nil
}

// toResult converts a rendered outcome into a tool result.
func toResult(o display.Outcome) *mcp.CallToolResult {
	if o.IsError {
		return mcp.NewToolResultError(o.Message)
	}
	return mcp.NewToolResultText(o.Message)
}

// requireToken returns an error result when the session holds no token yet.
func requireToken(c *client.Client) *mcp.CallToolResult {
	if c.Session().HasToken() {
		return nil
	}
	return mcp.NewToolResultError(display.MsgNeedToken)
}
