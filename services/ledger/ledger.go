package ledger

import "context"

// Ledger is the durable per-subscriber set of item ids already surfaced in a
// notification. The watcher computes the full post-merge set in memory and
// writes it back wholesale; no incremental update operation exists.
type Ledger interface {
	// Load returns the subscriber's known item ids, empty when none persisted
	Load(ctx context.Context, chatID int64) (map[string]struct{}, error)

	// Replace overwrites the subscriber's known item ids (upsert semantics)
	Replace(ctx context.Context, chatID int64, ids map[string]struct{}) error

	// Close closes the ledger connection
	Close() error
}
