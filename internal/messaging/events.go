package messaging

import "time"

// Message types carried on the notifications channel.
const (
	TypeOrderConfirmation = "order_confirmation"
	TypeLowStockAlert     = "low_stock_alert"
	TypeOutOfStockAlert   = "out_of_stock_alert"
)

// Envelope is the minimal shape every channel message shares. Subscribers
// decode it first to pick the concrete payload type.
type Envelope struct {
	Type string `json:"type"`
}

type OrderConfirmation struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

type LowStockAlert struct {
	Type         string    `json:"type"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	Timestamp    time.Time `json:"timestamp"`
}

type OutOfStockAlert struct {
	Type        string    `json:"type"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Timestamp   time.Time `json:"timestamp"`
}
