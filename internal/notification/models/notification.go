package models

import (
	"errors"
	"time"
)

const (
	StatusSent = "sent"
	TypeTest   = "test"
)

type Notification struct {
	NotificationID string    `json:"notification_id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	Recipient      string    `json:"recipient"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}

type TestNotificationRequest struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
}

type Stats struct {
	TotalNotifications  int            `json:"total_notifications"`
	NotificationsByType map[string]int `json:"notifications_by_type"`
	LastNotification    *Notification  `json:"last_notification"`
}

var ErrNotificationNotFound = errors.New("notification not found")

func (r *TestNotificationRequest) Validate() error {
	if r.Message == "" {
		return errors.New("message is required")
	}
	if r.Recipient == "" {
		return errors.New("recipient is required")
	}
	return nil
}
