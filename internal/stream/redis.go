package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func connectRedis(ctx context.Context, addr string, password string, maxRetries int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := range maxRetries {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			time.Sleep(backoff)
		}

		err = client.Ping(ctx).Err()
		if err == nil {
			return client, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}

type redisPublisher struct {
	client *redis.Client
	stream string
	logger *zerolog.Logger
}

func newRedisPublisher(client *redis.Client, stream string, logger *zerolog.Logger) *redisPublisher {
	return &redisPublisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, event IndexEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode index event: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"payload": string(payload)},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish index event: %w", err)
	}

	p.logger.Debug().Str("id", id).Str("path", event.Path).Str("event", event.Event).Msg("Index event published")
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

type redisConsumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	handler      Handler
	logger       *zerolog.Logger
}

func newRedisConsumer(client *redis.Client, stream, groupID, consumerName string, handler Handler, logger *zerolog.Logger) *redisConsumer {
	return &redisConsumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		handler:      handler,
		logger:       logger,
	}
}

func (c *redisConsumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *redisConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *redisConsumer) Stop() error {
	return c.client.Close()
}

func (c *redisConsumer) process(ctx context.Context, msg redis.XMessage) {
	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var event IndexEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message — ACK to skip it
		return
	}

	if err := c.handler(ctx, event); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Str("path", event.Path).Msg("Handler failed")
		// Leave the message pending for redelivery.
		return
	}

	c.ack(ctx, msg.ID)
}

func (c *redisConsumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
