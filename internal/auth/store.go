// Package auth gates joining players behind a one-time code confirmed
// from the Telegram chat. Authorized players persist across restarts.
package auth

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store persists player↔Telegram-user authorizations in SQLite.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS players (
		name          TEXT PRIMARY KEY,
		telegram_id   INTEGER NOT NULL,
		authorized_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Authorized reports whether a player has completed authentication.
func (s *Store) Authorized(name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM players WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query player %s: %w", name, err)
	}
	return n > 0, nil
}

// Authorize links a player to the Telegram user that confirmed the code.
func (s *Store) Authorize(name string, telegramID int64) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO players (name, telegram_id) VALUES (?, ?)`,
		name, telegramID,
	)
	if err != nil {
		return fmt.Errorf("authorize player %s: %w", name, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
