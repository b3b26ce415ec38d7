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
	"github.com/RangaDM/Cloud-Native-project/internal/messaging"
	"github.com/RangaDM/Cloud-Native-project/internal/order/config"
	"github.com/RangaDM/Cloud-Native-project/internal/order/handlers"
	"github.com/RangaDM/Cloud-Native-project/internal/order/inventoryclient"
	"github.com/RangaDM/Cloud-Native-project/internal/order/repository"
	"github.com/RangaDM/Cloud-Native-project/internal/order/service"
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

	// Consul resolves the inventory service; the configured URL is the
	// fallback when discovery is unavailable.
	var resolver inventoryclient.ServiceResolver
	consulClient, err := discovery.NewConsulClient(cfg.ConsulAddr)
	if err != nil {
		log.Printf("Failed to create consul client: %v", err)
	} else {
		resolver = consulClient
		serviceID := fmt.Sprintf("order-service-%s", cfg.ServiceID)
		if err := consulClient.RegisterService(serviceID, "order-service", cfg.ServerPort); err != nil {
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

	inventoryClient := inventoryclient.New(resolver, cfg.InventoryURL)

	// Initialize repositories and services
	orderRepo := repository.NewMemoryOrderRepository()
	orderService := service.NewOrderService(orderRepo, inventoryClient, publisher)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Setup router
	router := mux.NewRouter()
	orderHandler.RegisterRoutes(router)

	// Start HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting order-service on port %s", cfg.ServerPort)
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
