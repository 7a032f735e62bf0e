package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"vintedwatch/config"
	"vintedwatch/internal/bot"
	"vintedwatch/logger"
	"vintedwatch/services/configstore"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	logger.Init()
	log := logger.Default

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatal().Err(err).Str("path", dir).Msg("Failed to create data directory")
		}
	}

	store, err := configstore.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to open configuration store")
	}
	defer store.Close()

	b, err := bot.New(cfg.TelegramToken, store, logger.ForBot())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("environment", cfg.Environment).Msg("Starting configuration bot")
	b.Run(ctx)
	log.Info().Msg("Bot stopped")
}
