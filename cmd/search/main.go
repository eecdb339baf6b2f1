package main

import (
	"context"
	"fmt"
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/api"
	"github.com/kopischke/mdsearch/internal/config"
	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/logger"
	"github.com/kopischke/mdsearch/internal/query"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()
	cfg := config.FromEnv()
	log.Logger = logger.NewConsole(cfg.LogLevel)

	roots, _, err := config.LoadScopes(cfg.ScopesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scopes")
	}

	// Connect to the metadata index
	eng, err := engine.NewWithBackoff(ctx, cfg.DB, roots, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to metadata index")
	}
	defer eng.Close()

	log.Info().Bool("can_release", eng.CanRelease()).Msg("Metadata index connected")

	// Wire components
	executor := query.NewExecutor(eng, &log.Logger)
	handler := api.NewHandler(executor, eng)

	// Setup routes
	container := restful.NewContainer()
	api.RegisterRoutes(container, handler)
	api.RegisterOpenAPI(container)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info().Str("address", addr).Msg("Starting Search API")

	server := http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(container),
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
