// Package sqlitestore persists the timer collection in a SQLite database,
// as a single row in a key-value table. Use ":memory:" for tests.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/store"
)

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Load() ([]model.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", store.Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Timer{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
	}

	var timers []model.Timer
	if err := json.Unmarshal(value, &timers); err != nil {
		// Corrupt data must not prevent startup; start over empty.
		slog.Warn("discarding malformed timer data", "key", store.Key, "err", err)
		return []model.Timer{}, nil
	}
	return timers, nil
}

func (s *Store) Save(timers []model.Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := json.Marshal(timers)
	if err != nil {
		return fmt.Errorf("marshal timers: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		store.Key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
