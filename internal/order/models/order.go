package models

import (
	"errors"
	"time"
)

const StatusConfirmed = "confirmed"

type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
}

type Order struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	Items       []OrderItem `json:"items"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderStatus struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrOrderNotFound = errors.New("order not found")

func (r *CreateOrderRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	if len(r.Items) == 0 {
		return errors.New("items cannot be empty")
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			return errors.New("product_id is required for every item")
		}
		if item.Quantity <= 0 {
			return errors.New("quantity must be positive")
		}
	}
	return nil
}
