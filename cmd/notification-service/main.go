package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/RangaDM/Cloud-Native-project/internal/discovery"
	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/config"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/handlers"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/repository"
	"github.com/RangaDM/Cloud-Native-project/internal/notification/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize repositories and services
	notificationRepo := repository.NewRedisNotificationRepository(cfg.RedisAddr, cfg.NotificationsKey)
	defer notificationRepo.Close()

	notificationService := service.NewNotificationService(notificationRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize the channel subscriber
	subscriber := messaging.NewRedisSubscriber(cfg.RedisAddr, cfg.NotificationChannel)
	defer subscriber.Close()

	// Start the dispatcher loop for the lifetime of the process
	listenCtx, stopListening := context.WithCancel(context.Background())
	defer stopListening()

	go func() {
		if err := subscriber.Listen(listenCtx, notificationService); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Error listening for notifications: %v", err)
		}
	}()

	// Setup router
	router := mux.NewRouter()
	notificationHandler.RegisterRoutes(router)

	// Register with Consul
	consulClient, err := discovery.NewConsulClient(cfg.ConsulAddr)
	if err != nil {
		log.Printf("Failed to create consul client: %v", err)
	} else {
		serviceID := fmt.Sprintf("notification-service-%s", cfg.ServiceID)
		if err := consulClient.RegisterService(serviceID, "notification-service", cfg.ServerPort); err != nil {
			log.Printf("Failed to register service with consul: %v", err)
		} else {
			log.Printf("Registered with Consul as %s", serviceID)
			defer func() {
				if err := consulClient.DeregisterService(serviceID); err != nil {
					log.Printf("Failed to deregister service: %v", err)
				}
			}()
		}
	}

	// Start HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting notification-service on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopListening()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
