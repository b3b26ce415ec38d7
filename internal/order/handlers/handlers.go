package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RangaDM/Cloud-Native-project/internal/order/inventoryclient"
	"github.com/RangaDM/Cloud-Native-project/internal/order/models"
	"github.com/RangaDM/Cloud-Native-project/internal/order/service"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/{order_id}", h.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{order_id}/status", h.GetOrderStatus).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.service.ListOrders(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["order_id"]

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["order_id"]

	status, err := h.service.GetOrderStatus(r.Context(), orderID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, inventoryclient.ErrProductNotFound),
			errors.Is(err, inventoryclient.ErrInsufficientStock):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, inventoryclient.ErrUnavailable):
			respondWithError(w, http.StatusServiceUnavailable, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "order-service",
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
