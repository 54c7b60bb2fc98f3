package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/timers/internal/alert"
	"github.com/idilsaglam/timers/internal/form"
	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/registry"
)

type memStore struct {
	timers []model.Timer
}

func (m *memStore) Load() ([]model.Timer, error) { return m.timers, nil }
func (m *memStore) Save(ts []model.Timer) error {
	m.timers = append([]model.Timer(nil), ts...)
	return nil
}
func (m *memStore) Close() error { return nil }

func newTestPage(t *testing.T, seed ...model.Timer) (Model, *registry.Registry, *alert.Controller) {
	t.Helper()
	reg := registry.New(&memStore{timers: seed})
	alerts := alert.NewController(alert.Silent{}, alert.WithRepeat(0), alert.WithAutoDismiss(0))
	m := New(reg, alerts)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return sized.(Model), reg, alerts
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestAddFormFlow(t *testing.T) {
	m, reg, _ := newTestPage(t)

	next, _ := m.Update(keyRune('a'))
	m = next.(Model)
	require.Equal(t, modeForm, m.mode)

	m.form.inputs[fieldTitle].SetValue("Tea")
	m.form.inputs[fieldMinutes].SetValue("3")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, modeList, m.mode)

	timers := reg.Timers()
	require.Len(t, timers, 1)
	assert.Equal(t, "Tea", timers[0].Title)
	assert.Equal(t, 180, timers[0].Duration)
	assert.False(t, timers[0].Running)
}

func TestSubmitInvalidFormShowsErrors(t *testing.T) {
	m, reg, _ := newTestPage(t)

	next, _ := m.Update(keyRune('a'))
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, modeForm, m.mode, "invalid form stays open")
	assert.Zero(t, reg.Len())
	assert.Contains(t, m.View(), "Title is required")
	assert.Contains(t, m.View(), "Duration must be greater than 0")
}

func TestEditPrefillsForm(t *testing.T) {
	seed := model.Timer{ID: "a", Title: "Tea", Description: "green", Duration: 3723, Remaining: 3723}
	m, _, _ := newTestPage(t, seed)

	next, _ := m.Update(keyRune('e'))
	m = next.(Model)
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "a", m.form.editID)
	assert.Equal(t, "Tea", m.form.inputs[fieldTitle].Value())
	assert.Equal(t, "1", m.form.inputs[fieldHours].Value())
	assert.Equal(t, "2", m.form.inputs[fieldMinutes].Value())
	assert.Equal(t, "3", m.form.inputs[fieldSeconds].Value())
}

func TestToggleAndResetKeys(t *testing.T) {
	seed := model.Timer{ID: "a", Title: "Tea", Duration: 60, Remaining: 60}
	m, reg, _ := newTestPage(t, seed)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	assert.True(t, reg.Timers()[0].Running)

	next, _ = m.Update(keyRune('r'))
	m = next.(Model)
	got := reg.Timers()[0]
	assert.False(t, got.Running)
	assert.Equal(t, 60, got.Remaining)
}

func TestDeleteDismissesTimersAlert(t *testing.T) {
	seed := model.Timer{ID: "a", Title: "Tea", Duration: 60, Remaining: 0}
	m, reg, alerts := newTestPage(t, seed)
	alerts.Trigger("a", "Tea")

	next, _ := m.Update(keyRune('d'))
	m = next.(Model)

	assert.Zero(t, reg.Len())
	_, ok := alerts.Current()
	assert.False(t, ok, "deleting the alerted timer must dismiss its alert")
}

func TestDismissKey(t *testing.T) {
	m, _, alerts := newTestPage(t)
	alerts.Trigger("a", "Tea")
	assert.Contains(t, m.View(), "has ended!")

	next, _ := m.Update(keyRune('x'))
	m = next.(Model)
	_, ok := alerts.Current()
	assert.False(t, ok)
}

func TestViewMarksEndedTimer(t *testing.T) {
	seed := model.Timer{ID: "a", Title: "Tea", Duration: 60, Remaining: 0}
	m, _, _ := newTestPage(t, seed)
	assert.Contains(t, m.View(), "Tea has ended!")
}

func TestRefreshPicksUpTick(t *testing.T) {
	seed := model.Timer{ID: "a", Title: "Tea", Duration: 60, Remaining: 60, Running: true}
	m, reg, _ := newTestPage(t, seed)
	require.Contains(t, m.View(), "01:00")

	reg.Advance()
	next, _ := m.Update(RefreshMsg{})
	m = next.(Model)
	assert.Contains(t, m.View(), "00:59")
}

func TestCreateViaFormIsValidatedThroughRegistry(t *testing.T) {
	_, reg, _ := newTestPage(t)
	_, errs := reg.Create(form.Form{Title: ""})
	assert.NotEmpty(t, errs)
	assert.Zero(t, reg.Len())
}
