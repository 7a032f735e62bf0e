package configstore

import (
	"context"

	"vintedwatch/internal/catalog"
)

// Store persists each subscriber's named filter configurations as one flat
// document. Save fully replaces the subscriber's document (upsert).
type Store interface {
	// LoadAll returns every subscriber's configurations keyed by chat id
	LoadAll(ctx context.Context) (map[int64]map[string]catalog.FilterConfig, error)

	// Load returns one subscriber's configurations, nil when unregistered
	Load(ctx context.Context, chatID int64) (map[string]catalog.FilterConfig, error)

	// Save overwrites one subscriber's configurations
	Save(ctx context.Context, chatID int64, configs map[string]catalog.FilterConfig) error

	// Close closes the store
	Close() error
}
