package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, cfg.Database.WriterDSN, cfg.Database.ReaderDSN)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, "kafka", cfg.Messaging.Driver)
	assert.Equal(t, "inventory.events", cfg.Messaging.Kafka.Topic)
	assert.Equal(t, int64(5), cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "emporia", cfg.Observability.ServiceName)
	assert.Equal(t, "/metrics", cfg.Observability.PrometheusPath)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "20")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, int64(20), cfg.Inventory.LowStockThreshold)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Messaging.Kafka.Brokers)
}

func TestDisabledCacheForcesNoopDriver(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "noop", cfg.Cache.Driver)
}

func TestDisabledMessagingForcesNoopDriver(t *testing.T) {
	t.Setenv("MESSAGING_ENABLED", "false")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
}

func TestUnsupportedCacheDriverRejected(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := New()
	require.Error(t, err)
}

func TestInvalidHTTPPortRejected(t *testing.T) {
	t.Setenv("HTTP_PORT", "-1")

	_, err := New()
	require.Error(t, err)
}

func TestNegativeLowStockThresholdClamped(t *testing.T) {
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "-3")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.Inventory.LowStockThreshold)
}
