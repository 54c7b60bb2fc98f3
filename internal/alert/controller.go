// Package alert implements the completion notification state machine.
//
// The controller is either Idle or holds exactly one active alert. A new
// completion replaces a live alert (last completion wins; the single slot
// is a documented limitation, not a queue). While active, the audio cue
// repeats at a fixed cadence and the alert auto-dismisses after a fixed
// interval; both pending actions are cancelled whenever the alert is
// dismissed or superseded.
package alert

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultRepeat is the cue replay cadence while an alert is active.
	DefaultRepeat = 3 * time.Second
	// DefaultAutoDismiss is how long an alert stays up unattended.
	DefaultAutoDismiss = 5 * time.Second
)

// Alert is the transient notification for a completed timer. TimerID is a
// back-reference only; the timer may be deleted while the alert shows.
type Alert struct {
	Message string
	TimerID string
}

type Controller struct {
	mu           sync.Mutex
	active       *Alert
	gen          uint64 // bumped on every state change; stale callbacks check it
	cue          Cue
	repeat       time.Duration
	autoDismiss  time.Duration
	repeatTimer  *time.Timer
	dismissTimer *time.Timer
	onChange     func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithRepeat sets the cue replay cadence; 0 disables replay.
func WithRepeat(d time.Duration) Option { return func(c *Controller) { c.repeat = d } }

// WithAutoDismiss sets the unattended dismissal delay; 0 keeps the alert
// up until dismissed explicitly.
func WithAutoDismiss(d time.Duration) Option { return func(c *Controller) { c.autoDismiss = d } }

func NewController(cue Cue, opts ...Option) *Controller {
	c := &Controller{
		cue:         cue,
		repeat:      DefaultRepeat,
		autoDismiss: DefaultAutoDismiss,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers a callback invoked after every state transition.
func (c *Controller) OnChange(fn func()) { c.onChange = fn }

// Current returns the active alert, if any.
func (c *Controller) Current() (Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Alert{}, false
	}
	return *c.active, true
}

// Trigger latches a completion into the active slot, replacing any live
// alert. The previous alert's pending repeat and timeout are cancelled
// before the new one starts.
func (c *Controller) Trigger(timerID, title string) {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.gen++
	gen := c.gen
	c.active = &Alert{
		Message: fmt.Sprintf("Timer %q has ended!", title),
		TimerID: timerID,
	}
	c.playLocked()
	if c.repeat > 0 {
		c.repeatTimer = time.AfterFunc(c.repeat, func() { c.replay(gen) })
	}
	if c.autoDismiss > 0 {
		c.dismissTimer = time.AfterFunc(c.autoDismiss, func() { c.timeout(gen) })
	}
	c.mu.Unlock()

	c.notify()
}

// Dismiss drops the active alert. Safe to call when idle.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	c.gen++
	c.active = nil
	c.mu.Unlock()

	c.notify()
}

// TimerDeleted dismisses the alert if it references the deleted timer.
func (c *Controller) TimerDeleted(timerID string) {
	c.mu.Lock()
	if c.active == nil || c.active.TimerID != timerID {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	c.gen++
	c.active = nil
	c.mu.Unlock()

	c.notify()
}

// replay re-rings the cue while the same alert is still up.
func (c *Controller) replay(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.active == nil {
		c.mu.Unlock()
		return
	}
	c.playLocked()
	c.repeatTimer = time.AfterFunc(c.repeat, func() { c.replay(gen) })
	c.mu.Unlock()
}

func (c *Controller) timeout(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.active == nil {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	c.gen++
	c.active = nil
	c.mu.Unlock()

	c.notify()
}

// playLocked rings the cue; playback failure never blocks the visual alert.
func (c *Controller) playLocked() {
	if c.cue == nil {
		return
	}
	if err := c.cue.Play(); err != nil {
		slog.Warn("audio cue failed", "err", err)
	}
}

func (c *Controller) cancelPendingLocked() {
	if c.repeatTimer != nil {
		c.repeatTimer.Stop()
		c.repeatTimer = nil
	}
	if c.dismissTimer != nil {
		c.dismissTimer.Stop()
		c.dismissTimer = nil
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
