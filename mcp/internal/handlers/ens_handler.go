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

// ENSHandler exposes the resolve_ens tool.
type ENSHandler struct {
	client *client.Client
}

// NewENSHandler returns a new handler.
func NewENSHandler(c *client.Client) *ENSHandler {
	return &ENSHandler{client: c}
}

// RegisterTools registers ENS tools with the MCP server.
func (eh *ENSHandler) RegisterTools(s *server.MCPServer) error {
	resolve := mcp.NewTool("resolve_ens",
		mcp.WithDescription("Resolve an ENS name such as vitalik.eth to its Ethereum address"),
		mcp.WithString("name", mcp.Required(), mcp.Description("ENS name")),
	)
	s.AddTool(resolve, eh.handleResolve)
	return nil
}

func (eh *ENSHandler) handleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := requireToken(eh.client); res != nil {
		return res, nil
	}
	name, _ := req.RequireString("name")

	log.Debug().Str("name", name).Msg("handling resolve_ens request")

	start := time.Now()
	r, err := eh.client.ResolveENS(ctx, name)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("name", name).Dur("elapsed", elapsed).Msg("resolve_ens failed")
	} else {
		log.Debug().Str("name", name).Str("address", r.Address).Dur("elapsed", elapsed).Msg("resolve_ens completed")
	}
	return toResult(display.Resolution(r, err)), nil
}
