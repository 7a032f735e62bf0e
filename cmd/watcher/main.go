package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"vintedwatch/config"
	"vintedwatch/internal/fetcher"
	"vintedwatch/internal/watcher"
	"vintedwatch/logger"
	"vintedwatch/services/cache"
	"vintedwatch/services/configstore"
	"vintedwatch/services/ledger"
	"vintedwatch/services/notifier"

	"github.com/joho/godotenv"
)

const rateLimitBlockTime = 10 * time.Minute

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("poll_interval", cfg.PollInterval).
		Str("domain", cfg.CatalogDomain).
		Msg("Starting watcher")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	w := watcher.NewWatcher(
		services.Store,
		services.Ledger,
		services.Fetcher,
		services.Notifier,
		logger.ForWatcher(),
		cfg.PollInterval,
	)

	// Start watcher in a goroutine
	watcherDone := make(chan error, 1)
	go func() {
		watcherDone <- w.Start(ctx)
	}()

	// Wait for shutdown signal or watcher error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-watcherDone
	case err := <-watcherDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Watcher exited with error")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Store    configstore.Store
	Ledger   ledger.Ledger
	Fetcher  fetcher.Fetcher
	Notifier notifier.Notifier
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Ledger != nil {
		s.Ledger.Close()
	}
	if s.Store != nil {
		s.Store.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(cfg *config.Config) (*Services, error) {
	services := &Services{}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	store, err := configstore.NewSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	services.Store = store
	logger.Info("Opened configuration store at %s", cfg.DatabasePath)

	services.Ledger = ledger.NewRedisLedger(cfg.RedisAddr, cfg.RedisDB)
	logger.Info("Connected to Redis at %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)

	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	blockKey := "rate_limited:" + cfg.CatalogDomain
	if cfg.BrowserlessAddr != "" {
		services.Fetcher = fetcher.NewBrowserFetcher(
			cfg.BrowserlessAddr,
			cfg.RenderWait,
			cfg.ScrollWait,
			cacheService,
			blockKey,
			rateLimitBlockTime,
		)
		logger.Info("Using browser fetcher at %s", cfg.BrowserlessAddr)
	} else {
		services.Fetcher = fetcher.NewHTTPFetcher(cacheService, blockKey, rateLimitBlockTime)
		logger.Info("Using plain HTTP fetcher")
	}

	dispatcher, err := notifier.NewTelegramNotifier(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	services.Notifier = dispatcher

	return services, nil
}
