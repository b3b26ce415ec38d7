package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// MessageHandler processes a single channel message. The payload is the raw
// JSON as published; messageType is the decoded envelope discriminator.
type MessageHandler interface {
	HandleNotificationMessage(ctx context.Context, messageType string, payload []byte)
}

type Subscriber interface {
	Listen(ctx context.Context, handler MessageHandler) error
	Close() error
}

type redisSubscriber struct {
	client  *redis.Client
	channel string
}

func NewRedisSubscriber(addr, channel string) Subscriber {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &redisSubscriber{
		client:  client,
		channel: channel,
	}
}

func (s *redisSubscriber) Listen(ctx context.Context, handler MessageHandler) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Confirm the subscription before reporting the listener as started.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", s.channel, err)
	}

	log.Printf("Listening for messages on channel %s", s.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription to channel %s closed", s.channel)
			}

			payload := []byte(msg.Payload)

			var envelope Envelope
			if err := json.Unmarshal(payload, &envelope); err != nil {
				log.Printf("Failed to unmarshal channel message: %v", err)
				continue
			}

			log.Printf("Received message: %s", envelope.Type)

			// Each message is handled in its own goroutine so a slow
			// handler never blocks reception of the next message.
			go handler.HandleNotificationMessage(ctx, envelope.Type, payload)
		}
	}
}

func (s *redisSubscriber) Close() error {
	return s.client.Close()
}
