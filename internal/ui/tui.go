package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/timers/internal/alert"
	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/registry"
)

// RefreshMsg wakes the page after a tick or an alert transition. The
// registry and alert controller are the sources of truth; the page only
// re-reads them.
type RefreshMsg struct{}

// timerItem adapts a model.Timer to bubbles/list.Item.
type timerItem struct {
	model.Timer
}

func (i timerItem) Title() string       { return i.Timer.Title }
func (i timerItem) Description() string { return i.Timer.Description }
func (i timerItem) FilterValue() string { return i.Timer.Title }

// timerDelegate renders one timer as a three-line card.
type timerDelegate struct{}

func (d timerDelegate) Height() int                               { return 3 }
func (d timerDelegate) Spacing() int                              { return 1 }
func (d timerDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d timerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(timerItem)
	if !ok {
		return
	}
	t := it.Timer

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	head := titleStyle.Render(t.Title)
	if t.Description != "" {
		head += mutedStyle.Render("  " + t.Description)
	}

	var clock, state string
	switch {
	case t.Done():
		clock = endedStyle.Render(fmt.Sprintf("%s has ended!", t.Title))
		state = successStyle.Render(symDone + " done")
	case t.Running:
		clock = timeStyle.Render(model.FormatSeconds(t.Remaining))
		state = successStyle.Render(symPlay + " running")
	default:
		clock = timeStyle.Render(model.FormatSeconds(t.Remaining))
		state = pendingStyle.Render(symPause + " paused")
	}

	bar := ProgressBar(t.Duration-t.Remaining, t.Duration, 24)

	fmt.Fprintln(w, prefix+head)
	fmt.Fprintln(w, "  "+clock)
	fmt.Fprintln(w, "  "+mutedStyle.Render(bar)+"  "+state)
}

type mode int

const (
	modeList mode = iota
	modeForm
)

// Model is the single page: timer list, modal form, alert banner.
type Model struct {
	reg    *registry.Registry
	alerts *alert.Controller

	list list.Model
	form formModel
	mode mode

	width  int
	height int
}

func New(reg *registry.Registry, alerts *alert.Controller) Model {
	l := list.New(nil, timerDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("timer", "timers")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause"))
	resetBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	dismissBind := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss alert"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, editBind, toggleBind, resetBind, deleteBind, dismissBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{
		reg:    reg,
		alerts: alerts,
		list:   l,
		form:   newFormModel(),
	}
	m.syncList()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		m.syncList()
		m.resize()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.mode = modeForm
			m.form.reset()
			return m, m.form.focusFirst()
		case "e":
			if t, ok := m.selected(); ok {
				m.mode = modeForm
				m.form.edit(t)
				return m, m.form.focusFirst()
			}
			return m, nil
		case "d":
			if t, ok := m.selected(); ok {
				m.reg.Delete(t.ID)
				m.alerts.TimerDeleted(t.ID)
				m.syncList()
			}
			return m, nil
		case " ":
			if t, ok := m.selected(); ok {
				m.reg.ToggleRun(t.ID)
				m.syncList()
			}
			return m, nil
		case "r":
			if t, ok := m.selected(); ok {
				m.reg.Reset(t.ID)
				m.syncList()
			}
			return m, nil
		case "x", "esc":
			if _, ok := m.alerts.Current(); ok {
				m.alerts.Dismiss()
				return m, nil
			}
			if msg.String() == "esc" {
				break
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.form.blur()
		return m, nil
	case "enter":
		f := m.form.values()
		if m.form.editID == "" {
			if _, errs := m.reg.Create(f); len(errs) > 0 {
				m.form.errs = errs
				return m, nil
			}
		} else {
			if _, errs := m.reg.Update(m.form.editID, f); len(errs) > 0 {
				m.form.errs = errs
				return m, nil
			}
		}
		m.mode = modeList
		m.form.blur()
		m.syncList()
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sections []string

	if a, ok := m.alerts.Current(); ok {
		banner := bannerStyle.Render(a.Message + mutedStyle.Render("  (x to dismiss)"))
		sections = append(sections, banner)
	}

	if m.mode == modeForm {
		sections = append(sections, m.form.view())
	} else {
		sections = append(sections, m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// selected returns the timer under the cursor, respecting any filter.
func (m Model) selected() (model.Timer, bool) {
	it, ok := m.list.SelectedItem().(timerItem)
	if !ok {
		return model.Timer{}, false
	}
	return it.Timer, true
}

// syncList rebuilds the list items and header from the registry snapshot.
func (m *Model) syncList() {
	timers := m.reg.Timers()
	items := make([]list.Item, 0, len(timers))
	running, paused, done := 0, 0, 0
	for _, t := range timers {
		items = append(items, timerItem{t})
		switch {
		case t.Done():
			done++
		case t.Running:
			running++
		default:
			paused++
		}
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Timers"),
		successStyle.Render(symPlay), running,
		pendingStyle.Render(symPause), paused,
		accentStyle.Render(symDone), done,
	)
}

func (m *Model) resize() {
	h := m.height
	if _, ok := m.alerts.Current(); ok {
		h -= 3
	}
	if h < 5 {
		h = 5
	}
	m.list.SetSize(m.width, h)
}
