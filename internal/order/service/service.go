package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
	"github.com/RangaDM/Cloud-Native-project/internal/order/inventoryclient"
	"github.com/RangaDM/Cloud-Native-project/internal/order/models"
	"github.com/RangaDM/Cloud-Native-project/internal/order/repository"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetOrderStatus(ctx context.Context, orderID string) (*models.OrderStatus, error)
	ListOrders(ctx context.Context) []models.Order
}

type orderService struct {
	repo      repository.OrderRepository
	inventory inventoryclient.Client
	publisher messaging.Publisher
}

func NewOrderService(repo repository.OrderRepository, inventory inventoryclient.Client, publisher messaging.Publisher) OrderService {
	return &orderService{
		repo:      repo,
		inventory: inventory,
		publisher: publisher,
	}
}

// CreateOrder runs the fulfillment sequence: availability pass over every
// item, stock reservation per item, pricing pass, persist, publish
// confirmation. Reservation failures after a partial apply trigger
// compensating releases before the error surfaces.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	log.Printf("Creating order for user %s", req.UserID)

	// Every item must exist and have enough stock before any mutation.
	for _, item := range req.Items {
		product, err := s.inventory.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, inventoryclient.ErrInsufficientStock)
		}
	}

	applied := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if err := s.inventory.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.releaseStock(ctx, applied)
			return nil, fmt.Errorf("failed to reserve stock for product %s: %w", item.ProductID, err)
		}
		applied = append(applied, item)
	}

	// Second read pass: totals use the ledger's prices at reservation time,
	// not values cached from the availability check.
	var totalAmount float64
	for _, item := range req.Items {
		product, err := s.inventory.GetProduct(ctx, item.ProductID)
		if err != nil {
			s.releaseStock(ctx, applied)
			return nil, fmt.Errorf("failed to price product %s: %w", item.ProductID, err)
		}
		totalAmount += float64(item.Quantity) * product.Price
	}

	order := &models.Order{
		OrderID:     uuid.New().String(),
		UserID:      req.UserID,
		Items:       req.Items,
		Status:      models.StatusConfirmed,
		TotalAmount: totalAmount,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.releaseStock(ctx, applied)
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	confirmation := messaging.OrderConfirmation{
		Type:        messaging.TypeOrderConfirmation,
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Timestamp:   order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, confirmation); err != nil {
		// The order is already committed; confirmation loss is tolerated.
		log.Printf("Failed to publish order confirmation for %s: %v", order.OrderID, err)
	}

	log.Printf("Order %s created for user %s, total %.2f", order.OrderID, order.UserID, order.TotalAmount)

	return order, nil
}

// releaseStock returns already-reserved quantities after a later step
// failed. Best effort: release failures are logged, not surfaced.
func (s *orderService) releaseStock(ctx context.Context, applied []models.OrderItem) {
	for _, item := range applied {
		if err := s.inventory.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("Failed to release stock for product %s: %v", item.ProductID, err)
		}
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *orderService) GetOrderStatus(ctx context.Context, orderID string) (*models.OrderStatus, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &models.OrderStatus{
		OrderID:   order.OrderID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context) []models.Order {
	return s.repo.FindAll(ctx)
}
