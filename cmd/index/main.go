package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/config"
	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/ingest"
	"github.com/kopischke/mdsearch/internal/stream"
)

func main() {
	scopeName := flag.String("scope", "home", "Scope to index: computer, home or network")
	rootOverride := flag.String("root", "", "Index this path instead of the scope root")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	if err := run(*scopeName, *rootOverride); err != nil {
		log.Error().Err(err).Msg("Index run failed")
		os.Exit(1)
	}
}

func run(scopeName, rootOverride string) error {
	ctx := context.Background()
	cfg := config.FromEnv()

	roots, excludes, err := config.LoadScopes(cfg.ScopesFile)
	if err != nil {
		return err
	}

	scope, ok := config.ScopeByName(scopeName)
	if !ok {
		log.Fatal().Str("scope", scopeName).Msg("Unknown scope name")
	}

	root := rootOverride
	if root == "" {
		root, ok = roots[scope]
		if !ok {
			log.Fatal().Str("scope", scopeName).Msg("No root configured for scope")
		}
	}

	eng, err := engine.NewWithBackoff(ctx, cfg.DB, roots, 5)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.EnsureSchema(ctx); err != nil {
		return err
	}

	// The event stream is optional; without an address the pipeline
	// indexes silently.
	var publisher stream.Publisher
	if cfg.Stream.RedisAddr != "" {
		publisher, err = stream.NewPublisher(ctx, &cfg.Stream, &log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("Index event stream unavailable, continuing without it")
		} else {
			defer publisher.Close()
		}
	}

	walker := ingest.NewWalker(excludes[scope], &log.Logger)
	pipeline := ingest.NewPipeline(walker, eng, publisher, &log.Logger)

	stats, err := pipeline.IndexRoot(ctx, root)
	if err != nil {
		return err
	}

	total, err := eng.Count(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Int("indexed", stats.Indexed).
		Int("removed", stats.Removed).
		Int64("total", total).
		Msg("Done")
	return nil
}
