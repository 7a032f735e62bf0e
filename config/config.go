package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Telegram configuration
	TelegramToken string

	// Redis configuration (known-item ledger)
	RedisAddr string
	RedisDB   int

	// Memcache configuration (fetch backoff)
	MemcacheAddr string

	// SQLite configuration (subscriber configurations)
	DatabasePath string

	// Watcher configuration
	PollInterval  time.Duration
	CatalogDomain string

	// Browserless configuration; empty means plain HTTP fetching
	BrowserlessAddr string
	RenderWait      time.Duration
	ScrollWait      time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	pollInterval, _ := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "300"))
	renderWait, _ := strconv.Atoi(getEnv("RENDER_WAIT_MS", "10000"))
	scrollWait, _ := strconv.Atoi(getEnv("SCROLL_WAIT_MS", "5000"))

	return &Config{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         redisDB,
		MemcacheAddr:    getEnv("MEMCACHE_ADDR", "localhost:11211"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/vintedwatch.db"),
		PollInterval:    time.Duration(pollInterval) * time.Second,
		CatalogDomain:   getEnv("CATALOG_DOMAIN", "www.vinted.co.uk"),
		BrowserlessAddr: getEnv("BROWSERLESS_ADDR", ""),
		RenderWait:      time.Duration(renderWait) * time.Millisecond,
		ScrollWait:      time.Duration(scrollWait) * time.Millisecond,
		Environment:     getEnv("WATCH_ENVIRONMENT", "development"),
	}
}

// Validate checks that required configuration values are present
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be positive")
	}
	if c.CatalogDomain == "" {
		return fmt.Errorf("CATALOG_DOMAIN must not be empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
