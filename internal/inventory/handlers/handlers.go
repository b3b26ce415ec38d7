package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RangaDM/Cloud-Native-project/internal/inventory/models"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/service"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(service service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service: service,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/products/category/{category}", h.GetProductsByCategory).Methods(http.MethodGet)
	router.HandleFunc("/products/{product_id}", h.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/products/{product_id}", h.DeleteProduct).Methods(http.MethodDelete)
	router.HandleFunc("/products/{product_id}/stock", h.UpdateStock).Methods(http.MethodPut)
	router.HandleFunc("/products/{product_id}/stock", h.GetProductStock).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
}

func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.service.ListProducts(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["product_id"]

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *InventoryHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category := vars["category"]

	products := h.service.GetProductsByCategory(r.Context(), category)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *InventoryHandler) GetProductStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["product_id"]

	stock, err := h.service.GetProductStock(r.Context(), productID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, stock)
}

func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.CreateProduct(r.Context(), &product); err != nil {
		if errors.Is(err, models.ErrProductExists) {
			respondWithError(w, http.StatusBadRequest, "Product already exists")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, product)
}

func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["product_id"]

	product, err := h.service.DeleteProduct(r.Context(), productID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Product %s deleted", productID),
		"product": product,
	})
}

func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["product_id"]

	var req models.UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Quantity == nil {
		respondWithError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	update, err := h.service.UpdateStock(r.Context(), productID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, models.ErrInsufficientStock):
			respondWithError(w, http.StatusBadRequest, "Insufficient stock")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, update)
}

func (h *InventoryHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "inventory-service",
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
