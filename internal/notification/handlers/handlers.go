package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RangaDM/Cloud-Native-project/internal/notification/models"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/service"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

func (h *NotificationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	router.HandleFunc("/notifications", h.ClearNotifications).Methods(http.MethodDelete)
	router.HandleFunc("/notifications/test", h.CreateTestNotification).Methods(http.MethodPost)
	router.HandleFunc("/notifications/stats", h.GetStats).Methods(http.MethodGet)
	router.HandleFunc("/notifications/type/{type}", h.ListNotificationsByType).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{notification_id}", h.GetNotification).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{notification_id}", h.DeleteNotification).Methods(http.MethodDelete)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.ListNotifications(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *NotificationHandler) ListNotificationsByType(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notificationType := vars["type"]

	notifications, err := h.service.ListNotificationsByType(r.Context(), notificationType)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *NotificationHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notificationID := vars["notification_id"]

	notification, err := h.service.GetNotification(r.Context(), notificationID)
	if err != nil {
		if errors.Is(err, models.ErrNotificationNotFound) {
			respondWithError(w, http.StatusNotFound, "Notification not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, notification)
}

func (h *NotificationHandler) CreateTestNotification(w http.ResponseWriter, r *http.Request) {
	var req models.TestNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	notification, err := h.service.CreateTestNotification(r.Context(), req.Message, req.Recipient)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notificationID := vars["notification_id"]

	notification, err := h.service.DeleteNotification(r.Context(), notificationID)
	if err != nil {
		if errors.Is(err, models.ErrNotificationNotFound) {
			respondWithError(w, http.StatusNotFound, "Notification not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      fmt.Sprintf("Notification %s deleted", notificationID),
		"notification": notification,
	})
}

func (h *NotificationHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearNotifications(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "All notifications cleared"})
}

func (h *NotificationHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "notification-service",
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
