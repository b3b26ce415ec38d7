package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/RangaDM/Cloud-Native-project/internal/inventory/models"
)

type ProductRepository interface {
	FindAll(ctx context.Context) []models.Product
	FindByID(ctx context.Context, productID string) (*models.Product, error)
	FindByCategory(ctx context.Context, category string) []models.Product
	Create(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID string) (*models.Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) (*models.StockChange, error)
}

// memoryProductRepository keeps the product table in process memory. The
// mutex makes AdjustStock an atomic read-modify-write, which is the single
// point where the non-negative stock invariant is enforced.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryProductRepository(seed ...models.Product) ProductRepository {
	products := make(map[string]models.Product, len(seed))
	for _, p := range seed {
		products[p.ProductID] = p
	}

	return &memoryProductRepository{products: products}
}

// DefaultCatalog is the product set every fresh inventory instance starts
// with.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{ProductID: "prod001", Name: "Laptop", Price: 999.99, Stock: 50, Category: "Electronics"},
		{ProductID: "prod002", Name: "Mouse", Price: 29.99, Stock: 100, Category: "Electronics"},
		{ProductID: "prod003", Name: "Keyboard", Price: 79.99, Stock: 75, Category: "Electronics"},
		{ProductID: "prod004", Name: "NoteBook", Price: 15, Stock: 1, Category: "Books"},
	}
}

func (r *memoryProductRepository) FindAll(ctx context.Context) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sortByID(products)

	return products
}

func (r *memoryProductRepository) FindByID(ctx context.Context, productID string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductNotFound)
	}

	return &product, nil
}

func (r *memoryProductRepository) FindByCategory(ctx context.Context, category string) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			products = append(products, p)
		}
	}
	sortByID(products)

	return products
}

func (r *memoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ProductID]; ok {
		return fmt.Errorf("product %s: %w", product.ProductID, models.ErrProductExists)
	}

	r.products[product.ProductID] = *product
	return nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, productID string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductNotFound)
	}

	delete(r.products, productID)
	return &product, nil
}

func (r *memoryProductRepository) AdjustStock(ctx context.Context, productID string, delta int) (*models.StockChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductNotFound)
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrInsufficientStock)
	}

	previousStock := product.Stock
	product.Stock = newStock
	r.products[productID] = product

	return &models.StockChange{
		Product:       product,
		PreviousStock: previousStock,
		NewStock:      newStock,
	}, nil
}

func sortByID(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})
}
