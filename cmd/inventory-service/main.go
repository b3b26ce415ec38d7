package main

import (
	"context"
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
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/config"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/handlers"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/repository"
	"github.com/RangaDM/Cloud-Native-project/internal/inventory/service"
	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
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

	// Initialize the notification channel publisher
	publisher := messaging.NewRedisPublisher(cfg.RedisAddr, cfg.NotificationChannel)
	defer publisher.Close()
	log.Println("Notification publisher initialized")

	// Initialize repositories and services
	productRepo := repository.NewMemoryProductRepository(repository.DefaultCatalog()...)
	inventoryService := service.NewInventoryService(productRepo, publisher)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	// Setup router
	router := mux.NewRouter()
	inventoryHandler.RegisterRoutes(router)

	// Register with Consul. Discovery being down never blocks startup; the
	// order service falls back to its configured inventory URL.
	consulClient, err := discovery.NewConsulClient(cfg.ConsulAddr)
	if err != nil {
		log.Printf("Failed to create consul client: %v", err)
	} else {
		serviceID := fmt.Sprintf("inventory-service-%s", cfg.ServiceID)
		if err := consulClient.RegisterService(serviceID, "inventory-service", cfg.ServerPort); err != nil {
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
		log.Printf("Starting inventory-service on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
