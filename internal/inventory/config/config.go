package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

type Config struct {
	ServerPort          string
	ServiceID           string
	RedisAddr           string
	NotificationChannel string
	ConsulAddr          string
}

func LoadConfig() (*Config, error) {
	serviceID := os.Getenv("SERVICE_ID")
	if serviceID == "" {
		serviceID = uuid.New().String()
	}

	cfg := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8002"),
		ServiceID:           serviceID,
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		NotificationChannel: getEnv("NOTIFICATION_CHANNEL", "notifications"),
		ConsulAddr:          getEnv("CONSUL_ADDR", "localhost:8500"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.NotificationChannel == "" {
		return fmt.Errorf("NOTIFICATION_CHANNEL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
