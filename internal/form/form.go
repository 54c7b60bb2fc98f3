// Package form holds the timer add/edit form values and their validation.
// Pure and stateless; the UI owns rendering, the registry calls Validate
// before any mutation.
package form

import (
	"strings"

	"github.com/idilsaglam/timers/internal/model"
)

// Form carries the candidate fields for creating or editing a timer.
type Form struct {
	Title       string
	Description string
	Hours       int
	Minutes     int
	Seconds     int
}

// Errors maps a field name ("title", "duration") to a message. An empty
// map means the form is acceptable.
type Errors map[string]string

// Validate checks the form and returns field-keyed error messages.
func (f Form) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if f.Hours == 0 && f.Minutes == 0 && f.Seconds == 0 {
		errs["duration"] = "Duration must be greater than 0"
	}
	return errs
}

// Duration folds the three time components into whole seconds.
func (f Form) Duration() int {
	return f.Hours*3600 + f.Minutes*60 + f.Seconds
}

// FromTimer populates a form from an existing timer for the edit path.
func FromTimer(t model.Timer) Form {
	h, m, s := model.SplitDuration(t.Duration)
	return Form{
		Title:       t.Title,
		Description: t.Description,
		Hours:       h,
		Minutes:     m,
		Seconds:     s,
	}
}

// FromDuration builds a form carrying only time components, used by the
// CLI add path where the title arrives separately.
func FromDuration(title, description string, seconds int) Form {
	h, m, s := model.SplitDuration(seconds)
	return Form{Title: title, Description: description, Hours: h, Minutes: m, Seconds: s}
}
