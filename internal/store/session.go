// Package store provides local persistence for the dashboard: a SQLite
// session store for small key-value state (dismissed hints, last-selected
// tab) and a Parquet archive of received signals.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"wraith/internal/hint"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check: the session store backs the hint system.
var _ hint.KVStore = (*SessionStore)(nil)

// SessionStore is a small key-value store backed by a SQLite database.
type SessionStore struct {
	db *sql.DB
}

// OpenSession opens (or creates) the session database at dbPath and ensures
// the kv table exists.
func OpenSession(dbPath string) (*SessionStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SessionStore{db: db}, nil
}

// Get returns the stored value for key, or "" when absent.
func (s *SessionStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SessionStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes key if present.
func (s *SessionStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
