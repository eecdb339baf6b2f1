package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/config"
	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/mcpadapter"
	"github.com/kopischke/mdsearch/internal/query"
)

func main() {
	// Setup logging; stdout belongs to the MCP transport.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	roots, _, err := config.LoadScopes(cfg.ScopesFile)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load scopes")
		os.Exit(1)
	}

	eng, err := engine.NewWithBackoff(ctx, cfg.DB, roots, 5)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to metadata index")
		os.Exit(1)
	}
	defer eng.Close()

	executor := query.NewExecutor(eng, &logger)
	server := createMCPServer(executor)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(executor *query.Executor) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mdsearch",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find",
		Description: "Search indexed file metadata with a Spotlight-style predicate, with optional scopes, attribute selection and cascading sort",
	}, mcpadapter.NewFindHandler(executor))

	return server
}
