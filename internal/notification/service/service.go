package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/models"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/repository"
)

// AdminRecipient receives stock alerts.
const AdminRecipient = "admin@company.com"

type NotificationService interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	ListNotificationsByType(ctx context.Context, notificationType string) ([]models.Notification, error)
	GetNotification(ctx context.Context, notificationID string) (*models.Notification, error)
	CreateTestNotification(ctx context.Context, message, recipient string) (*models.Notification, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	DeleteNotification(ctx context.Context, notificationID string) (*models.Notification, error)
	ClearNotifications(ctx context.Context) error

	// HandleNotificationMessage implements messaging.MessageHandler.
	HandleNotificationMessage(ctx context.Context, messageType string, payload []byte)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{
		repo: repo,
	}
}

// HandleNotificationMessage renders a channel message into a stored
// notification. All failures are logged and swallowed; the dispatch path
// must never propagate errors back to publishers.
func (s *notificationService) HandleNotificationMessage(ctx context.Context, messageType string, payload []byte) {
	switch messageType {
	case messaging.TypeOrderConfirmation:
		var msg messaging.OrderConfirmation
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("Failed to unmarshal order confirmation: %v", err)
			return
		}
		text := fmt.Sprintf("Order %s confirmed! Total: $%.2f", msg.OrderID, msg.TotalAmount)
		s.store(ctx, messaging.TypeOrderConfirmation, text, msg.UserID)

	case messaging.TypeLowStockAlert:
		var msg messaging.LowStockAlert
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("Failed to unmarshal low stock alert: %v", err)
			return
		}
		text := fmt.Sprintf("Low stock alert: %s (%s) - Only %d units remaining", msg.ProductName, msg.ProductID, msg.CurrentStock)
		s.store(ctx, messaging.TypeLowStockAlert, text, AdminRecipient)

	case messaging.TypeOutOfStockAlert:
		var msg messaging.OutOfStockAlert
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("Failed to unmarshal out of stock alert: %v", err)
			return
		}
		text := fmt.Sprintf("Out of stock alert: %s (%s) - No units remaining", msg.ProductName, msg.ProductID)
		s.store(ctx, messaging.TypeOutOfStockAlert, text, AdminRecipient)

	default:
		log.Printf("Unknown notification type: %s", messageType)
	}
}

func (s *notificationService) store(ctx context.Context, notificationType, message, recipient string) {
	notification := newNotification(notificationType, message, recipient)
	if err := s.repo.Prepend(ctx, notification); err != nil {
		log.Printf("Failed to store %s notification: %v", notificationType, err)
		return
	}
	log.Printf("Notification sent to %s: %s", recipient, message)
}

func newNotification(notificationType, message, recipient string) *models.Notification {
	return &models.Notification{
		NotificationID: uuid.New().String(),
		Type:           notificationType,
		Message:        message,
		Recipient:      recipient,
		Timestamp:      time.Now(),
		Status:         models.StatusSent,
	}
}

func (s *notificationService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.repo.FindAll(ctx)
}

func (s *notificationService) ListNotificationsByType(ctx context.Context, notificationType string) ([]models.Notification, error) {
	notifications, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Notification, 0)
	for _, n := range notifications {
		if n.Type == notificationType {
			filtered = append(filtered, n)
		}
	}

	return filtered, nil
}

func (s *notificationService) GetNotification(ctx context.Context, notificationID string) (*models.Notification, error) {
	notifications, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, n := range notifications {
		if n.NotificationID == notificationID {
			return &n, nil
		}
	}

	return nil, fmt.Errorf("notification %s: %w", notificationID, models.ErrNotificationNotFound)
}

func (s *notificationService) CreateTestNotification(ctx context.Context, message, recipient string) (*models.Notification, error) {
	notification := newNotification(models.TypeTest, message, recipient)
	if err := s.repo.Prepend(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *notificationService) GetStats(ctx context.Context) (*models.Stats, error) {
	notifications, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalNotifications:  len(notifications),
		NotificationsByType: make(map[string]int),
	}
	for _, n := range notifications {
		stats.NotificationsByType[n.Type]++
	}
	if len(notifications) > 0 {
		stats.LastNotification = &notifications[0]
	}

	return stats, nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, notificationID string) (*models.Notification, error) {
	return s.repo.DeleteByID(ctx, notificationID)
}

func (s *notificationService) ClearNotifications(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
