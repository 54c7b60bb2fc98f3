package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/timers/internal/form"
	"github.com/idilsaglam/timers/internal/model"
)

// Field order inside the modal form.
const (
	fieldTitle = iota
	fieldDescription
	fieldHours
	fieldMinutes
	fieldSeconds
	fieldCount
)

// formModel is the add/edit modal: five inputs plus field-keyed errors.
// An empty editID means the create path.
type formModel struct {
	inputs [fieldCount]textinput.Model
	focus  int
	editID string
	errs   form.Errors
}

func newFormModel() formModel {
	var f formModel
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Timer Title *"
	f.inputs[fieldTitle].CharLimit = 200
	f.inputs[fieldDescription].Placeholder = "Description (optional)"
	f.inputs[fieldDescription].CharLimit = 200
	for _, i := range []int{fieldHours, fieldMinutes, fieldSeconds} {
		f.inputs[i].Placeholder = "0"
		f.inputs[i].CharLimit = 2
	}
	return f
}

func (f *formModel) reset() {
	f.editID = ""
	f.errs = nil
	f.focus = fieldTitle
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
}

// edit prefills the form from an existing timer.
func (f *formModel) edit(t model.Timer) {
	f.reset()
	f.editID = t.ID
	src := form.FromTimer(t)
	f.inputs[fieldTitle].SetValue(src.Title)
	f.inputs[fieldDescription].SetValue(src.Description)
	f.inputs[fieldHours].SetValue(strconv.Itoa(src.Hours))
	f.inputs[fieldMinutes].SetValue(strconv.Itoa(src.Minutes))
	f.inputs[fieldSeconds].SetValue(strconv.Itoa(src.Seconds))
}

func (f *formModel) focusFirst() tea.Cmd {
	f.focus = fieldTitle
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.inputs[fieldTitle].Focus()
	f.inputs[fieldTitle].CursorEnd()
	return textinput.Blink
}

func (f *formModel) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// values folds the inputs into the validation form. Non-numeric time
// fields read as 0; hours clamp to 0-23, minutes and seconds to 0-59.
func (f formModel) values() form.Form {
	return form.Form{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Hours:       clampAtoi(f.inputs[fieldHours].Value(), 23),
		Minutes:     clampAtoi(f.inputs[fieldMinutes].Value(), 59),
		Seconds:     clampAtoi(f.inputs[fieldSeconds].Value(), 59),
	}
}

func clampAtoi(s string, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

func (f formModel) update(msg tea.KeyMsg) (formModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return f.moveFocus(1), nil
	case "shift+tab", "up":
		return f.moveFocus(-1), nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f formModel) moveFocus(delta int) formModel {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	f.inputs[f.focus].CursorEnd()
	return f
}

func (f formModel) view() string {
	heading := "Add New Timer"
	if f.editID != "" {
		heading = "Edit Timer"
	}

	lines := []string{titleStyle.Render(heading), ""}
	lines = append(lines, mutedStyle.Render("Title"), f.inputs[fieldTitle].View())
	if msg, ok := f.errs["title"]; ok {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, "", mutedStyle.Render("Description"), f.inputs[fieldDescription].View())
	lines = append(lines, "", mutedStyle.Render("Duration (hours / minutes / seconds)"))
	lines = append(lines,
		f.inputs[fieldHours].View(),
		f.inputs[fieldMinutes].View(),
		f.inputs[fieldSeconds].View(),
	)
	if msg, ok := f.errs["duration"]; ok {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, "", helpStyle.Render("enter save • esc cancel • tab next field"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}
