package model

// Timer is the domain model for a single countdown.
// Duration and Remaining are whole seconds.
type Timer struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration"`
	Remaining   int    `json:"remainingTime"`
	Running     bool   `json:"isRunning"`
}

// Done reports whether the countdown has reached zero.
func (t Timer) Done() bool { return t.Remaining == 0 }

// Valid reports whether the timer satisfies the collection invariants:
// non-empty id and title, positive duration, remaining within bounds and
// not running once the countdown is over.
func (t Timer) Valid() bool {
	if t.ID == "" || t.Title == "" || t.Duration <= 0 {
		return false
	}
	if t.Remaining < 0 || t.Remaining > t.Duration {
		return false
	}
	if t.Running && t.Remaining == 0 {
		return false
	}
	return true
}

// Sanitize repairs a timer rehydrated from storage. Remaining is clamped
// into [0, Duration] and a finished timer is forced to paused. It returns
// false when the entry is beyond repair and should be dropped.
func (t *Timer) Sanitize() bool {
	if t.ID == "" || t.Title == "" || t.Duration <= 0 {
		return false
	}
	if t.Remaining < 0 {
		t.Remaining = 0
	}
	if t.Remaining > t.Duration {
		t.Remaining = t.Duration
	}
	if t.Remaining == 0 {
		t.Running = false
	}
	return true
}
