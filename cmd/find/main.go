package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/config"
	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/query"
)

func main() {
	scopes := flag.String("scopes", "", "Comma-separated scope constants (default: everything indexed)")
	attrs := flag.String("attrs", "", "Comma-separated attribute keys to return (default: kMDItemPath)")
	sortKeys := flag.String("sort", "", "Comma-separated sort attribute keys")
	max := flag.Int("max", 0, "Result cap; 0 or negative means no cap")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: find [flags] '<predicate>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	_ = godotenv.Load()

	if err := run(flag.Arg(0), *scopes, *attrs, *sortKeys, *max); err != nil {
		log.Error().Err(err).Msg("find failed")
		os.Exit(1)
	}
}

func run(predicate, scopes, attrs, sortKeys string, max int) error {
	ctx := context.Background()
	cfg := config.FromEnv()

	roots, _, err := config.LoadScopes(cfg.ScopesFile)
	if err != nil {
		return err
	}

	eng, err := engine.New(ctx, cfg.DB, roots)
	if err != nil {
		return err
	}
	defer eng.Close()

	var scopeList []engine.Scope
	for _, s := range splitList(scopes) {
		scopeList = append(scopeList, engine.Scope(s))
	}

	executor := query.NewExecutor(eng, &log.Logger)
	items, err := executor.Find(ctx, query.Request{
		Predicate:      predicate,
		Scopes:         scopeList,
		Attributes:     splitList(attrs),
		SortAttributes: splitList(sortKeys),
		MaxResults:     max,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
