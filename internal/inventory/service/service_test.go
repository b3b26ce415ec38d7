package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RangaDM/Cloud-Native-project/internal/inventory/models"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/repository"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/service"
	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
)

// MockPublisher is a mock implementation of messaging.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, message interface{}) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newService(publisher messaging.Publisher) service.InventoryService {
	repo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)
	return service.NewInventoryService(repo, publisher)
}

func TestUpdateStock_NoAlertAboveThreshold(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	update, err := svc.UpdateStock(context.Background(), "prod001", -2)

	require.NoError(t, err)
	assert.Equal(t, 50, update.PreviousStock)
	assert.Equal(t, 48, update.NewStock)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateStock_LowStockAlert(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	publisher.On("Publish", mock.Anything, mock.AnythingOfType("messaging.LowStockAlert")).Return(nil)

	update, err := svc.UpdateStock(context.Background(), "prod001", -45)

	require.NoError(t, err)
	assert.Equal(t, 5, update.NewStock)

	publisher.AssertExpectations(t)
	alert := publisher.Calls[0].Arguments.Get(1).(messaging.LowStockAlert)
	assert.Equal(t, messaging.TypeLowStockAlert, alert.Type)
	assert.Equal(t, "prod001", alert.ProductID)
	assert.Equal(t, "Laptop", alert.ProductName)
	assert.Equal(t, 5, alert.CurrentStock)
}

func TestUpdateStock_OutOfStockAlert(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	publisher.On("Publish", mock.Anything, mock.AnythingOfType("messaging.OutOfStockAlert")).Return(nil)

	update, err := svc.UpdateStock(context.Background(), "prod004", -1)

	require.NoError(t, err)
	assert.Equal(t, 0, update.NewStock)

	publisher.AssertExpectations(t)
	alert := publisher.Calls[0].Arguments.Get(1).(messaging.OutOfStockAlert)
	assert.Equal(t, messaging.TypeOutOfStockAlert, alert.Type)
	assert.Equal(t, "prod004", alert.ProductID)
	assert.Equal(t, "NoteBook", alert.ProductName)
}

func TestUpdateStock_ReplenishBackOverThreshold(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	update, err := svc.UpdateStock(context.Background(), "prod004", 100)

	require.NoError(t, err)
	assert.Equal(t, 101, update.NewStock)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateStock_PublishFailureDoesNotFailMutation(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	update, err := svc.UpdateStock(context.Background(), "prod004", -1)

	require.NoError(t, err)
	assert.Equal(t, 0, update.NewStock)

	// The delta stays committed even though the alert was lost.
	product, err := svc.GetProduct(context.Background(), "prod004")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
}

func TestUpdateStock_InsufficientStockEmitsNothing(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	_, err := svc.UpdateStock(context.Background(), "prod004", -5)

	assert.True(t, errors.Is(err, models.ErrInsufficientStock))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateProduct_Invalid(t *testing.T) {
	publisher := new(MockPublisher)
	svc := newService(publisher)

	err := svc.CreateProduct(context.Background(), &models.Product{
		ProductID: "prod005", Name: "Pen", Price: -1, Stock: 10, Category: "Office",
	})

	assert.Error(t, err)
}
