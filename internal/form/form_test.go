package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/timers/internal/model"
)

func TestValidateEmptyForm(t *testing.T) {
	errs := Form{}.Validate()
	assert.Equal(t, "Title is required", errs["title"])
	assert.Equal(t, "Duration must be greater than 0", errs["duration"])
	assert.Len(t, errs, 2)
}

func TestValidateWhitespaceTitle(t *testing.T) {
	errs := Form{Title: "   ", Minutes: 1}.Validate()
	assert.Equal(t, "Title is required", errs["title"])
	assert.NotContains(t, errs, "duration")
}

func TestValidateOK(t *testing.T) {
	errs := Form{Title: "X", Minutes: 1}.Validate()
	assert.Empty(t, errs)
}

func TestDuration(t *testing.T) {
	f := Form{Title: "X", Hours: 1, Minutes: 2, Seconds: 3}
	assert.Equal(t, 3723, f.Duration())
}

func TestFromTimer(t *testing.T) {
	f := FromTimer(model.Timer{Title: "Tea", Description: "green", Duration: 3723})
	assert.Equal(t, "Tea", f.Title)
	assert.Equal(t, "green", f.Description)
	assert.Equal(t, 1, f.Hours)
	assert.Equal(t, 2, f.Minutes)
	assert.Equal(t, 3, f.Seconds)
	assert.Equal(t, 3723, f.Duration())
}

func TestFromDuration(t *testing.T) {
	f := FromDuration("Tea", "", 150)
	assert.Equal(t, 150, f.Duration())
	assert.Empty(t, f.Validate())
}
