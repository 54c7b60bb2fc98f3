// Package jsonstore persists the timer collection as a single JSON file.
// Human-readable and portable. A mutex serializes file access: the tick
// loop and user mutations persist from different goroutines.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/store"
)

const dataFileName = store.Key + ".json"

type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store writing to <dir>/timers.json, creating dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, dataFileName)}, nil
}

func (s *Store) Load() ([]model.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Timer{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var timers []model.Timer
	if err := json.Unmarshal(b, &timers); err != nil {
		// Corrupt data must not prevent startup; start over empty.
		slog.Warn("discarding malformed timer data", "path", s.path, "err", err)
		return []model.Timer{}, nil
	}
	return timers, nil
}

func (s *Store) Save(timers []model.Timer) error {
	b, err := json.MarshalIndent(timers, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
