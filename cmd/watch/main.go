package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/config"
	setuplog "github.com/kopischke/mdsearch/internal/logger"
	"github.com/kopischke/mdsearch/internal/stream"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	// Structured JSON output; watch is meant to run as a service.
	logger := setuplog.New(cfg.LogLevel)
	log.Logger = logger
	if cfg.Stream.RedisAddr == "" {
		logger.Fatal().Msg("MDSEARCH_REDIS_ADDR is required for watch")
	}

	consumer, err := stream.NewConsumer(ctx, &cfg.Stream, logEvent(&logger), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect index event stream")
	}
	defer consumer.Stop()

	if err := consumer.Setup(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Consumer stopped")
		os.Exit(1)
	}
}

func logEvent(logger *zerolog.Logger) stream.Handler {
	return func(_ context.Context, event stream.IndexEvent) error {
		logger.Info().
			Str("event", event.Event).
			Str("path", event.Path).
			Str("content_type", event.ContentType).
			Msg("Index event")
		return nil
	}
}
