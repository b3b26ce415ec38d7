package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/RangaDM/Cloud-Native-project/internal/notification/models"
)

type NotificationRepository interface {
	Prepend(ctx context.Context, notification *models.Notification) error
	FindAll(ctx context.Context) ([]models.Notification, error)
	DeleteByID(ctx context.Context, notificationID string) (*models.Notification, error)
	Clear(ctx context.Context) error
	Close() error
}

// redisNotificationRepository keeps the notification history in a Redis
// list, most recent first. Entries are stored as JSON; unreadable entries
// are skipped on reads rather than failing the whole listing.
type redisNotificationRepository struct {
	client *redis.Client
	key    string
}

func NewRedisNotificationRepository(addr, key string) NotificationRepository {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &redisNotificationRepository{
		client: client,
		key:    key,
	}
}

func (r *redisNotificationRepository) Prepend(ctx context.Context, notification *models.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := r.client.LPush(ctx, r.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	return nil
}

func (r *redisNotificationRepository) FindAll(ctx context.Context) ([]models.Notification, error) {
	entries, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	notifications := make([]models.Notification, 0, len(entries))
	for _, entry := range entries {
		var n models.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			log.Printf("Skipping unreadable notification entry: %v", err)
			continue
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// DeleteByID removes the first stored entry with the given id and returns
// it.
func (r *redisNotificationRepository) DeleteByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	entries, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	for _, entry := range entries {
		var n models.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			continue
		}
		if n.NotificationID != notificationID {
			continue
		}

		if err := r.client.LRem(ctx, r.key, 1, entry).Err(); err != nil {
			return nil, fmt.Errorf("failed to delete notification: %w", err)
		}
		return &n, nil
	}

	return nil, fmt.Errorf("notification %s: %w", notificationID, models.ErrNotificationNotFound)
}

func (r *redisNotificationRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

func (r *redisNotificationRepository) Close() error {
	return r.client.Close()
}
