package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Publisher interface {
	Publish(ctx context.Context, message interface{}) error
	Close() error
}

type redisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(addr, channel string) Publisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &redisPublisher{
		client:  client,
		channel: channel,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal notification message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", p.channel, err)
	}

	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}
