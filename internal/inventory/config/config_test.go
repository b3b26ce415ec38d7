package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RangaDM/Cloud-Native-project/internal/inventory/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8002", cfg.ServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "notifications", cfg.NotificationChannel)
	assert.NotEmpty(t, cfg.ServiceID)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9002")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("NOTIFICATION_CHANNEL", "alerts")
	t.Setenv("SERVICE_ID", "inv-1")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9002", cfg.ServerPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "alerts", cfg.NotificationChannel)
	assert.Equal(t, "inv-1", cfg.ServiceID)
}
