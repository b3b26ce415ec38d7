package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/RangaDM/Cloud-Native-project/internal/order/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindAll(ctx context.Context) []models.Order
}

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; ok {
		return fmt.Errorf("order %s already exists", order.OrderID)
	}

	r.orders[order.OrderID] = *order
	return nil
}

func (r *memoryOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, models.ErrOrderNotFound)
	}

	return &order, nil
}

func (r *memoryOrderRepository) FindAll(ctx context.Context) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	return orders
}
