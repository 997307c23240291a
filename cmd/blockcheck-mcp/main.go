package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/blockcheck/blockcheck/internal/config"
	"github.com/blockcheck/blockcheck/mcp"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mcp.Run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("MCP server exited with error")
		stop()
		os.Exit(1)
	}
}
