// Package mcp serves the blockcheck operations as Model Context Protocol
// tools over stdio or streamable HTTP.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/config"
	"github.com/blockcheck/blockcheck/mcp/internal/handlers"
)

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/mcp"

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server whose tools share sdk and its session.
func NewServer(cfg *config.Config, sdk *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		cfg.MCPName,
		cfg.MCPVersion,
		server.WithToolCapabilities(true),
	)

	for name, h := range map[string]toolRegisterer{
		"token":   handlers.NewTokenHandler(sdk),
		"address": handlers.NewAddressHandler(sdk),
		"ens":     handlers.NewENSHandler(sdk),
	} {
		if err := h.RegisterTools(s); err != nil {
			log.Error().Err(err).Str("handler", name).Msg("failed to register tools")
			return nil, err
		}
	}
	return s, nil
}

// newHTTPHandler routes the MCP endpoint and Prometheus metrics.
func newHTTPHandler(stream *server.StreamableHTTPServer) http.Handler {
	r := mux.NewRouter()
	r.Handle(EndpointPath, stream)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Run starts the server on the configured transport and blocks until ctx
// is canceled or the transport fails.
func Run(ctx context.Context, cfg *config.Config) error {
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.With().Caller().Logger()

	log.Info().Str("api_url", cfg.APIURL).Msg("creating blockcheck client")
	sdk, err := cfg.NewClient()
	if err != nil {
		log.Error().Err(err).Msg("failed to create client")
		return err
	}

	s, err := NewServer(cfg, sdk)
	if err != nil {
		return err
	}

	if useStdio(cfg.MCPTransport) {
		log.Info().Msg("starting blockcheck MCP server (stdio transport)")
		err := server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
	return serveHTTP(ctx, cfg, s)
}

func serveHTTP(ctx context.Context, cfg *config.Config, s *server.MCPServer) error {
	stream := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(EndpointPath),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:        cfg.MCPAddr,
		Handler:     newHTTPHandler(stream),
		ReadTimeout: 5 * time.Second,
		// No write deadline; SSE responses stay open.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.MCPAddr).Msg("starting blockcheck MCP server (streamable HTTP)")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during HTTP server shutdown")
	}
	log.Info().Msg("shutting down MCP streamable server")
	if err := stream.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during MCP server shutdown")
	}
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// useStdio resolves "auto" by checking whether stdin is a terminal; a
// process launched by an MCP host gets a pipe.
func useStdio(transport string) bool {
	switch transport {
	case "stdio":
		return true
	case "http":
		return false
	}
	if fi, err := os.Stdin.Stat(); err == nil {
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
