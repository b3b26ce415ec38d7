package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RangaDM/Cloud-Native-project/internal/order/handlers"
	"github.com/RangaDM/Cloud-Native-project/internal/order/inventoryclient"
	"github.com/RangaDM/Cloud-Native-project/internal/order/models"
)

// MockOrderService is a mock implementation of service.OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderStatus(ctx context.Context, orderID string) (*models.OrderStatus, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderStatus), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context) []models.Order {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order)
}

func setupRouter(svc *MockOrderService) *mux.Router {
	handler := handlers.NewOrderHandler(svc)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateOrder_Created(t *testing.T) {
	svc := new(MockOrderService)
	order := &models.Order{
		OrderID:     "ord-1",
		UserID:      "u1",
		Items:       []models.OrderItem{{ProductID: "prod001", Quantity: 2}},
		Status:      models.StatusConfirmed,
		TotalAmount: 1999.98,
		CreatedAt:   time.Now(),
	}
	svc.On("CreateOrder", mock.Anything, mock.Anything).Return(order, nil)

	rr := doRequest(setupRouter(svc), http.MethodPost, "/orders", models.CreateOrderRequest{
		UserID: "u1",
		Items:  []models.OrderItem{{ProductID: "prod001", Quantity: 2}},
	})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var body models.Order
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ord-1", body.OrderID)
	assert.Equal(t, models.StatusConfirmed, body.Status)
}

func TestCreateOrder_ValidationRejectedBeforeService(t *testing.T) {
	svc := new(MockOrderService)

	rr := doRequest(setupRouter(svc), http.MethodPost, "/orders", models.CreateOrderRequest{
		UserID: "u1",
		Items:  []models.OrderItem{},
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"product not found", fmt.Errorf("product prod999: %w", inventoryclient.ErrProductNotFound), http.StatusBadRequest},
		{"insufficient stock", fmt.Errorf("product prod001: %w", inventoryclient.ErrInsufficientStock), http.StatusBadRequest},
		{"inventory unavailable", fmt.Errorf("%w: connection refused", inventoryclient.ErrUnavailable), http.StatusServiceUnavailable},
		{"internal", fmt.Errorf("failed to store order"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockOrderService)
			svc.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, tc.err)

			rr := doRequest(setupRouter(svc), http.MethodPost, "/orders", models.CreateOrderRequest{
				UserID: "u1",
				Items:  []models.OrderItem{{ProductID: "prod001", Quantity: 1}},
			})

			assert.Equal(t, tc.code, rr.Code)
		})
	}
}

func TestGetOrderStatus(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("GetOrderStatus", mock.Anything, "ord-1").Return(&models.OrderStatus{
		OrderID: "ord-1", Status: models.StatusConfirmed, CreatedAt: time.Now(),
	}, nil)

	rr := doRequest(setupRouter(svc), http.MethodGet, "/orders/ord-1/status", nil)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body models.OrderStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, models.StatusConfirmed, body.Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("GetOrder", mock.Anything, "missing").Return(nil, models.ErrOrderNotFound)

	rr := doRequest(setupRouter(svc), http.MethodGet, "/orders/missing", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListOrders(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("ListOrders", mock.Anything).Return([]models.Order{})

	rr := doRequest(setupRouter(svc), http.MethodGet, "/orders", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"orders":[]}`, rr.Body.String())
}

func TestHealthCheck(t *testing.T) {
	rr := doRequest(setupRouter(new(MockOrderService)), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "order-service", body["service"])
}
