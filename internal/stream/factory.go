package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// NewPublisher connects the configured provider and returns a publisher
// for index events.
func NewPublisher(ctx context.Context, cfg *Config, logger *zerolog.Logger) (Publisher, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		client, err := connectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
		if err != nil {
			return nil, err
		}
		return newRedisPublisher(client, cfg.Stream, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}

// NewConsumer connects the configured provider and returns a consumer
// delivering events to handler.
func NewConsumer(ctx context.Context, cfg *Config, handler Handler, logger *zerolog.Logger) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		client, err := connectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
		if err != nil {
			return nil, err
		}
		return newRedisConsumer(client, cfg.Stream, cfg.Group, cfg.ConsumerName, handler, logger), nil

	// Future providers:
	// case "kafka":
	//     ...

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
