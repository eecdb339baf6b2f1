// Package stream publishes and consumes index change events, so other
// systems can follow what the indexer touches.
package stream

import "context"

// IndexEvent describes one index mutation.
type IndexEvent struct {
	Event       string `json:"event"` // "indexed" or "removed"
	Path        string `json:"path"`
	ContentType string `json:"content_type,omitempty"`
}

const (
	EventIndexed = "indexed"
	EventRemoved = "removed"
)

type Publisher interface {
	Publish(ctx context.Context, event IndexEvent) error
	Close() error
}

type Consumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one consumed event.
type Handler func(ctx context.Context, event IndexEvent) error

type Config struct {
	Provider      string // redis today; kafka, sqs, etc. later
	RedisAddr     string
	RedisPassword string
	Stream        string
	Group         string
	ConsumerName  string
}
