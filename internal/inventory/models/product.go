package models

import (
	"errors"
	"time"
)

type Product struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
}

// UpdateStockRequest carries a signed stock delta. Quantity is a pointer so
// a body that omits the field is rejected rather than read as delta 0.
type UpdateStockRequest struct {
	Quantity *int `json:"quantity"`
}

// StockUpdate is the response body for a stock adjustment.
type StockUpdate struct {
	ProductID     string    `json:"product_id"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProductStock struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stock       int       `json:"stock"`
	LastUpdated time.Time `json:"last_updated"`
}

// StockChange reports a committed stock delta back to the service layer.
type StockChange struct {
	Product       Product
	PreviousStock int
	NewStock      int
}

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("product already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

func (p *Product) Validate() error {
	if p.ProductID == "" {
		return errors.New("product_id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	if p.Category == "" {
		return errors.New("category is required")
	}
	return nil
}
