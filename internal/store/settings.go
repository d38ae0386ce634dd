package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested setting key does not exist.
var ErrNotFound = errors.New("setting not found")

// Setting is a single key/value row. Values are opaque strings; callers
// that store structured data serialize it as JSON.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is a key/value repository on top of the SQLite store. The
// branding snapshot lives here under a single fixed key.
type Settings struct {
	store *SQLiteStore
}

// NewSettings creates the settings repository and runs its migration.
func NewSettings(ctx context.Context, s *SQLiteStore) (*Settings, error) {
	migrations := []Migration{
		{
			Version:     1,
			Description: "create settings table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE IF NOT EXISTS settings (
						key        TEXT     PRIMARY KEY,
						value      TEXT     NOT NULL,
						updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)
				`)
				return err
			},
		},
	}
	if err := s.Migrate(ctx, "settings", migrations); err != nil {
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	return &Settings{store: s}, nil
}

// Get returns the setting for key, or ErrNotFound.
func (r *Settings) Get(ctx context.Context, key string) (Setting, error) {
	var s Setting
	err := r.store.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM settings WHERE key = ?", key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return Setting{}, ErrNotFound
	}
	if err != nil {
		return Setting{}, fmt.Errorf("get setting %q: %w", key, err)
	}
	return s, nil
}

// Set inserts or replaces the setting for key.
func (r *Settings) Set(ctx context.Context, key, value string) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes the setting for key. Deleting a missing key is not an error.
func (r *Settings) Delete(ctx context.Context, key string) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// GetAll returns every stored setting ordered by key.
func (r *Settings) GetAll(ctx context.Context) ([]Setting, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT key, value, updated_at FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
