package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RangaDM/Cloud-Native-project/internal/inventory/models"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/repository"
)

func TestAdjustStock_Success(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	change, err := repo.AdjustStock(context.Background(), "prod001", -2)

	require.NoError(t, err)
	assert.Equal(t, 50, change.PreviousStock)
	assert.Equal(t, 48, change.NewStock)
	assert.Equal(t, "Laptop", change.Product.Name)

	product, err := repo.FindByID(context.Background(), "prod001")
	require.NoError(t, err)
	assert.Equal(t, 48, product.Stock)
}

func TestAdjustStock_NeverGoesNegative(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	_, err := repo.AdjustStock(context.Background(), "prod004", -2)

	assert.True(t, errors.Is(err, models.ErrInsufficientStock))

	// A rejected delta leaves stock unchanged.
	product, err := repo.FindByID(context.Background(), "prod004")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stock)
}

func TestAdjustStock_ToExactlyZero(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	change, err := repo.AdjustStock(context.Background(), "prod004", -1)

	require.NoError(t, err)
	assert.Equal(t, 0, change.NewStock)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	_, err := repo.AdjustStock(context.Background(), "prod999", -1)

	assert.True(t, errors.Is(err, models.ErrProductNotFound))
}

func TestAdjustStock_ConcurrentDeltas_ExactlyOneWins(t *testing.T) {
	// Two concurrent reservations whose combined size exceeds stock must
	// resolve to exactly one success.
	repo := repository.NewMemoryProductRepository(models.Product{
		ProductID: "prod100", Name: "Widget", Price: 10, Stock: 5, Category: "Tools",
	})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.AdjustStock(context.Background(), "prod100", -4)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range results {
		if err != nil {
			assert.True(t, errors.Is(err, models.ErrInsufficientStock))
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	product, err := repo.FindByID(context.Background(), "prod100")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stock)
}

func TestFindByID_Idempotent(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	first, err := repo.FindByID(context.Background(), "prod002")
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), "prod002")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCreate_DuplicateRejected(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	err := repo.Create(context.Background(), &models.Product{
		ProductID: "prod001", Name: "Laptop", Price: 999.99, Stock: 50, Category: "Electronics",
	})

	assert.True(t, errors.Is(err, models.ErrProductExists))
}

func TestDelete(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	deleted, err := repo.Delete(context.Background(), "prod003")
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", deleted.Name)

	_, err = repo.FindByID(context.Background(), "prod003")
	assert.True(t, errors.Is(err, models.ErrProductNotFound))

	_, err = repo.Delete(context.Background(), "prod003")
	assert.True(t, errors.Is(err, models.ErrProductNotFound))
}

func TestFindByCategory_CaseInsensitive(t *testing.T) {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)

	products := repo.FindByCategory(context.Background(), "electronics")

	require.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, "Electronics", p.Category)
	}

	assert.Empty(t, repo.FindByCategory(context.Background(), "Garden"))
}
