package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kopischke/mdsearch/internal/attr"
	"github.com/kopischke/mdsearch/internal/stream"
)

// Store is the index write surface the pipeline needs.
type Store interface {
	Upsert(ctx context.Context, path string, attrs map[string]any) error
	DeleteVanished(ctx context.Context, root string, seen []string) ([]string, error)
}

type Stats struct {
	Indexed int
	Removed int
}

type Pipeline struct {
	walker    *Walker
	store     Store
	publisher stream.Publisher // nil when no stream is configured
	logger    *zerolog.Logger
}

func NewPipeline(walker *Walker, store Store, publisher stream.Publisher, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		walker:    walker,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// IndexRoot walks root, upserts every file's metadata, then prunes index
// rows for files that no longer exist under it.
func (p *Pipeline) IndexRoot(ctx context.Context, root string) (Stats, error) {
	p.logger.Info().Str("root", root).Msg("Starting index run")

	var stats Stats
	var seen []string

	err := p.walker.Walk(root, func(path string, attrs map[string]any) error {
		if err := p.store.Upsert(ctx, path, attrs); err != nil {
			return err
		}
		seen = append(seen, path)
		stats.Indexed++

		p.notify(ctx, stream.IndexEvent{
			Event:       stream.EventIndexed,
			Path:        path,
			ContentType: stringAttr(attrs, attr.ContentType),
		})
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("index run under %s failed: %w", root, err)
	}

	removed, err := p.store.DeleteVanished(ctx, root, seen)
	if err != nil {
		return stats, err
	}
	stats.Removed = len(removed)

	for _, path := range removed {
		p.notify(ctx, stream.IndexEvent{
			Event: stream.EventRemoved,
			Path:  path,
		})
	}

	p.logger.Info().
		Str("root", root).
		Int("indexed", stats.Indexed).
		Int("removed", stats.Removed).
		Msg("Index run complete")

	return stats, nil
}

// notify is fire-and-forget: a dead stream must not fail the index run.
func (p *Pipeline) notify(ctx context.Context, event stream.IndexEvent) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.logger.Warn().Err(err).Str("path", event.Path).Msg("Failed to publish index event")
	}
}

func stringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}
