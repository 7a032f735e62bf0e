package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, "data/vintedwatch.db", config.DatabasePath)
	assert.Equal(t, 300*time.Second, config.PollInterval)
	assert.Equal(t, "www.vinted.co.uk", config.CatalogDomain)
	assert.Equal(t, "", config.BrowserlessAddr)
	assert.Equal(t, 10*time.Second, config.RenderWait)
	assert.Equal(t, 5*time.Second, config.ScrollWait)

	// Test with environment variables
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	os.Setenv("POLL_INTERVAL_SECONDS", "60")
	os.Setenv("CATALOG_DOMAIN", "www.vinted.de")
	os.Setenv("BROWSERLESS_ADDR", "http://localhost:3000")

	config = LoadConfig()
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.Equal(t, 60*time.Second, config.PollInterval)
	assert.Equal(t, "www.vinted.de", config.CatalogDomain)
	assert.Equal(t, "http://localhost:3000", config.BrowserlessAddr)

	// Clean up
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("MEMCACHE_ADDR")
	os.Unsetenv("POLL_INTERVAL_SECONDS")
	os.Unsetenv("CATALOG_DOMAIN")
	os.Unsetenv("BROWSERLESS_ADDR")
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.TelegramToken = ""
	assert.Error(t, cfg.Validate())

	cfg.TelegramToken = "123:abc"
	assert.NoError(t, cfg.Validate())

	cfg.PollInterval = 0
	assert.Error(t, cfg.Validate())
}
