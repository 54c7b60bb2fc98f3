// Package registry owns the authoritative in-memory timer collection.
//
// All timer state flows through here: user mutations (create, update,
// delete, toggle, reset) and the per-second Advance driven by the tick
// scheduler. Every effective mutation is written through to the store and
// reported via the change callback. Persistence failures degrade to a log
// line; callers never see them.
package registry

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/timers/internal/form"
	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/store"
)

// Completion is emitted exactly once when a timer's remaining time crosses
// from positive to zero during an Advance.
type Completion struct {
	ID    string
	Title string
}

type Registry struct {
	mu       sync.Mutex
	timers   []model.Timer
	store    store.Store
	newID    func() string
	onChange func()
}

// New builds a registry rehydrated from st. Entries that fail to sanitize
// are dropped with a log line; rehydration itself never fails on bad data.
func New(st store.Store) *Registry {
	r := &Registry{store: st, newID: uuid.NewString}

	loaded, err := st.Load()
	if err != nil {
		slog.Error("load timers", "err", err)
		loaded = nil
	}
	for _, t := range loaded {
		if !t.Sanitize() {
			slog.Warn("dropping invalid persisted timer", "id", t.ID, "title", t.Title)
			continue
		}
		r.timers = append(r.timers, t)
	}
	return r
}

// OnChange registers a callback invoked after every effective mutation,
// including ticks that changed at least one timer. At most one subscriber.
func (r *Registry) OnChange(fn func()) { r.onChange = fn }

// Timers returns a snapshot of the collection in insertion order.
func (r *Registry) Timers() []model.Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Timer, len(r.timers))
	copy(out, r.timers)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// At returns the timer at a zero-based display index.
func (r *Registry) At(i int) (model.Timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.timers) {
		return model.Timer{}, false
	}
	return r.timers[i], true
}

// Create validates f and appends a fresh timer: new id, remaining set to
// the full duration, paused. On validation failure nothing is mutated and
// the field errors are returned.
func (r *Registry) Create(f form.Form) (model.Timer, form.Errors) {
	if errs := f.Validate(); len(errs) > 0 {
		return model.Timer{}, errs
	}

	r.mu.Lock()
	t := model.Timer{
		ID:          r.newID(),
		Title:       f.Title,
		Description: f.Description,
		Duration:    f.Duration(),
		Remaining:   f.Duration(),
		Running:     false,
	}
	r.timers = append(r.timers, t)
	r.mu.Unlock()

	r.persist()
	r.notify()
	return t, nil
}

// Update replaces title, description and duration of the timer with the
// given id, rewinds remaining to the new duration and pauses it. An edit
// always restarts the countdown. Unknown ids are a no-op.
func (r *Registry) Update(id string, f form.Form) (model.Timer, form.Errors) {
	if errs := f.Validate(); len(errs) > 0 {
		return model.Timer{}, errs
	}

	r.mu.Lock()
	var updated model.Timer
	found := false
	for i := range r.timers {
		if r.timers[i].ID != id {
			continue
		}
		r.timers[i].Title = f.Title
		r.timers[i].Description = f.Description
		r.timers[i].Duration = f.Duration()
		r.timers[i].Remaining = f.Duration()
		r.timers[i].Running = false
		updated = r.timers[i]
		found = true
		break
	}
	r.mu.Unlock()

	if !found {
		return model.Timer{}, nil
	}
	r.persist()
	r.notify()
	return updated, nil
}

// Delete removes the timer with the given id; absent ids are a no-op.
// The caller is responsible for dismissing any alert referencing id.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	found := false
	for i := range r.timers {
		if r.timers[i].ID == id {
			r.timers = append(r.timers[:i], r.timers[i+1:]...)
			found = true
			break
		}
	}
	r.mu.Unlock()

	if found {
		r.persist()
		r.notify()
	}
}

// ToggleRun flips the running state. Toggling a timer whose countdown is
// already over is a no-op, so a finished timer can never re-complete.
func (r *Registry) ToggleRun(id string) {
	r.mu.Lock()
	found := false
	for i := range r.timers {
		if r.timers[i].ID != id {
			continue
		}
		if r.timers[i].Remaining == 0 {
			break
		}
		r.timers[i].Running = !r.timers[i].Running
		found = true
		break
	}
	r.mu.Unlock()

	if found {
		r.persist()
		r.notify()
	}
}

// Reset rewinds the timer to its full duration and pauses it.
func (r *Registry) Reset(id string) {
	r.mu.Lock()
	found := false
	for i := range r.timers {
		if r.timers[i].ID == id {
			r.timers[i].Remaining = r.timers[i].Duration
			r.timers[i].Running = false
			found = true
			break
		}
	}
	r.mu.Unlock()

	if found {
		r.persist()
		r.notify()
	}
}

// Clear removes every timer.
func (r *Registry) Clear() {
	r.mu.Lock()
	had := len(r.timers) > 0
	r.timers = nil
	r.mu.Unlock()

	if had {
		r.persist()
		r.notify()
	}
}

// Advance moves every running timer one second forward and returns the
// completions that occurred on this tick, in insertion order. A timer
// completes exactly once: the tick that takes it to zero also forces it to
// paused, and a timer sitting at zero is never touched again.
func (r *Registry) Advance() []Completion {
	r.mu.Lock()
	var completed []Completion
	changed := false
	for i := range r.timers {
		t := &r.timers[i]
		if !t.Running || t.Remaining <= 0 {
			continue
		}
		t.Remaining--
		changed = true
		if t.Remaining == 0 {
			t.Running = false
			completed = append(completed, Completion{ID: t.ID, Title: t.Title})
		}
	}
	r.mu.Unlock()

	if changed {
		r.persist()
		r.notify()
	}
	return completed
}

func (r *Registry) persist() {
	r.mu.Lock()
	snapshot := make([]model.Timer, len(r.timers))
	copy(snapshot, r.timers)
	r.mu.Unlock()

	if err := r.store.Save(snapshot); err != nil {
		slog.Error("save timers", "err", err)
	}
}

func (r *Registry) notify() {
	if r.onChange != nil {
		r.onChange()
	}
}
