package service

import (
	"context"
	"log"
	"time"

	"github.com/RangaDM/Cloud-Native-project/internal/inventory/models"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/repository"
	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
)

// LowStockThreshold is the stock level at or below which a low stock alert
// is published (exclusive of zero, which is out of stock).
const LowStockThreshold = 10

type InventoryService interface {
	ListProducts(ctx context.Context) []models.Product
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) []models.Product
	GetProductStock(ctx context.Context, productID string) (*models.ProductStock, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, productID string) (*models.Product, error)
	UpdateStock(ctx context.Context, productID string, delta int) (*models.StockUpdate, error)
}

type inventoryService struct {
	repo      repository.ProductRepository
	publisher messaging.Publisher
}

func NewInventoryService(repo repository.ProductRepository, publisher messaging.Publisher) InventoryService {
	return &inventoryService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *inventoryService) ListProducts(ctx context.Context) []models.Product {
	return s.repo.FindAll(ctx)
}

func (s *inventoryService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	return s.repo.FindByID(ctx, productID)
}

func (s *inventoryService) GetProductsByCategory(ctx context.Context, category string) []models.Product {
	return s.repo.FindByCategory(ctx, category)
}

func (s *inventoryService) GetProductStock(ctx context.Context, productID string) (*models.ProductStock, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &models.ProductStock{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Stock:       product.Stock,
		LastUpdated: time.Now(),
	}, nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	return s.repo.Create(ctx, product)
}

func (s *inventoryService) DeleteProduct(ctx context.Context, productID string) (*models.Product, error) {
	return s.repo.Delete(ctx, productID)
}

func (s *inventoryService) UpdateStock(ctx context.Context, productID string, delta int) (*models.StockUpdate, error) {
	change, err := s.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, err
	}

	log.Printf("Updated stock for %s: %d units", productID, change.NewStock)

	s.publishStockAlert(ctx, change)

	return &models.StockUpdate{
		ProductID:     productID,
		PreviousStock: change.PreviousStock,
		NewStock:      change.NewStock,
		UpdatedAt:     time.Now(),
	}, nil
}

// publishStockAlert classifies the committed post-delta stock value and
// publishes the matching alert. Publish failures never fail the stock
// mutation.
func (s *inventoryService) publishStockAlert(ctx context.Context, change *models.StockChange) {
	switch {
	case change.NewStock == 0:
		alert := messaging.OutOfStockAlert{
			Type:        messaging.TypeOutOfStockAlert,
			ProductID:   change.Product.ProductID,
			ProductName: change.Product.Name,
			Timestamp:   time.Now(),
		}
		if err := s.publisher.Publish(ctx, alert); err != nil {
			log.Printf("Failed to publish out of stock alert for %s: %v", change.Product.ProductID, err)
		}
	case change.NewStock <= LowStockThreshold:
		alert := messaging.LowStockAlert{
			Type:         messaging.TypeLowStockAlert,
			ProductID:    change.Product.ProductID,
			ProductName:  change.Product.Name,
			CurrentStock: change.NewStock,
			Timestamp:    time.Now(),
		}
		if err := s.publisher.Publish(ctx, alert); err != nil {
			log.Printf("Failed to publish low stock alert for %s: %v", change.Product.ProductID, err)
		}
	}
}
