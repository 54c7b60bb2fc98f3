// Package store defines the persistence contract for the timer collection.
//
// A Store keeps one durable record: the serialized timer array. Load must
// return an empty collection when no data exists yet, and must discard (and
// log) malformed data instead of failing startup. Save replaces the record
// wholesale; the registry writes through on every mutation.
package store

import "github.com/idilsaglam/timers/internal/model"

// Key names the single record all backends persist the collection under.
const Key = "timers"

type Store interface {
	Load() ([]model.Timer, error)
	Save(timers []model.Timer) error
	Close() error
}
