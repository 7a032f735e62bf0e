package configstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"vintedwatch/internal/catalog"
	"vintedwatch/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Store backed by a SQLite database. Each subscriber's
// configurations are stored as a single JSON document row, mirroring the
// full-replace save semantics.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadAll returns every subscriber's configurations keyed by chat id.
func (s *SQLite) LoadAll(ctx context.Context) (map[int64]map[string]catalog.FilterConfig, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT chat_id, configs FROM subscriber_configs ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("query configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	all := make(map[int64]map[string]catalog.FilterConfig)
	for rows.Next() {
		var chatID int64
		var doc string
		if err := rows.Scan(&chatID, &doc); err != nil {
			return nil, fmt.Errorf("scan configs: %w", err)
		}
		configs, err := decodeDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("decode configs for chat %d: %w", chatID, err)
		}
		all[chatID] = configs
	}
	return all, rows.Err()
}

// Load returns one subscriber's configurations, nil when unregistered.
func (s *SQLite) Load(ctx context.Context, chatID int64) (map[string]catalog.FilterConfig, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT configs FROM subscriber_configs WHERE chat_id = ?`, chatID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query configs: %w", err)
	}
	return decodeDoc(doc)
}

// Save overwrites one subscriber's configurations.
func (s *SQLite) Save(ctx context.Context, chatID int64, configs map[string]catalog.FilterConfig) error {
	doc, err := json.Marshal(configs)
	if err != nil {
		return fmt.Errorf("encode configs: %w", err)
	}

	now := time.Now().UTC().Format(timeLayout)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO subscriber_configs (chat_id, configs, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET configs = excluded.configs, updated_at = excluded.updated_at`,
		chatID, string(doc), now,
	)
	if err != nil {
		return fmt.Errorf("upsert configs: %w", err)
	}
	return nil
}

func decodeDoc(doc string) (map[string]catalog.FilterConfig, error) {
	var configs map[string]catalog.FilterConfig
	if err := json.Unmarshal([]byte(doc), &configs); err != nil {
		return nil, err
	}
	return configs, nil
}
