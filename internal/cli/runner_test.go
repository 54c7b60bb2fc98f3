package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/timers/internal/alert"
	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/registry"
)

func TestParseSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"90", 90, true},
		{"1", 1, true},
		{"2m30s", 150, true},
		{"1h15m", 4500, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"500ms", 0, false},
		{"soon", 0, false},
	}
	for _, c := range cases {
		got, err := parseSeconds(c.in)
		if c.ok {
			require.NoError(t, err, "parseSeconds(%q)", c.in)
			assert.Equal(t, c.want, got, "parseSeconds(%q)", c.in)
		} else {
			assert.Error(t, err, "parseSeconds(%q)", c.in)
		}
	}
}

type memStore struct {
	timers []model.Timer
}

func (m *memStore) Load() ([]model.Timer, error) { return m.timers, nil }
func (m *memStore) Save(ts []model.Timer) error {
	m.timers = append([]model.Timer(nil), ts...)
	return nil
}
func (m *memStore) Close() error { return nil }

// Mutations made from inside the page handler fire change notifications
// while the event loop is mid-update; the page must keep draining messages
// rather than wedge on its own notification.
func TestProgramMutationsDoNotBlockEventLoop(t *testing.T) {
	st := &memStore{timers: []model.Timer{
		{ID: "a", Title: "Tea", Duration: 60, Remaining: 60},
	}}
	reg := registry.New(st)
	alerts := alert.NewController(alert.Silent{}, alert.WithRepeat(0), alert.WithAutoDismiss(0))

	p := newProgram(reg, alerts, tea.WithoutRenderer(), tea.WithInput(nil))

	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()

	p.Send(tea.WindowSizeMsg{Width: 80, Height: 30})
	p.Send(tea.KeyMsg{Type: tea.KeySpace})
	time.Sleep(100 * time.Millisecond)
	p.Quit()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("event loop wedged on a change notification")
	}
	assert.True(t, reg.Timers()[0].Running, "space must start the selected timer")
}

func TestIndexArg(t *testing.T) {
	n, code := indexArg("rm", []string{"3"})
	assert.Equal(t, 3, n)
	assert.Zero(t, code)

	_, code = indexArg("rm", nil)
	assert.Equal(t, 2, code)

	_, code = indexArg("rm", []string{"x"})
	assert.Equal(t, 2, code)

	_, code = indexArg("rm", []string{"1", "2"})
	assert.Equal(t, 2, code)
}
