package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/timers/internal/alert"
	"github.com/idilsaglam/timers/internal/config"
	"github.com/idilsaglam/timers/internal/form"
	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/registry"
	"github.com/idilsaglam/timers/internal/sched"
	"github.com/idilsaglam/timers/internal/store"
	"github.com/idilsaglam/timers/internal/store/jsonstore"
	"github.com/idilsaglam/timers/internal/store/sqlitestore"
	"github.com/idilsaglam/timers/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Settings config.Settings
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		args = []string{"ls"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt.Settings)

	case "add":
		if len(a) < 2 {
			ui.Fail("usage: timers add <duration> <title...>")
			return 2
		}
		secs, err := parseSeconds(a[0])
		if err != nil {
			ui.Fail("add: bad duration: " + a[0])
			return 2
		}
		return doAdd(opt.Settings, strings.Join(a[1:], " "), secs)

	case "rm":
		n, code := indexArg("rm", a)
		if code != 0 {
			return code
		}
		return doRemove(opt.Settings, n)

	case "toggle":
		n, code := indexArg("toggle", a)
		if code != 0 {
			return code
		}
		return doToggle(opt.Settings, n)

	case "reset":
		n, code := indexArg("reset", a)
		if code != 0 {
			return code
		}
		return doReset(opt.Settings, n)

	case "clear":
		return doClear(opt.Settings)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`timers - countdown timers in your terminal

Usage:
  timers [subcommand] [args]

Subcommands:
  ls                        Interactive timer page (default)
  add <duration> <title...> Add a timer ("90", "2m30s", "1h15m")
  toggle <index>            Start/pause timer at 1-based index
  reset <index>             Rewind timer at 1-based index
  rm <index>                Remove timer at 1-based index
  clear                     Remove all timers

Examples:
  timers add 3m Tea
  timers add 25m "Focus block"
  timers toggle 1
`)
}

// indexArg parses the single 1-based index argument of rm/toggle/reset.
func indexArg(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: timers %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

// parseSeconds accepts either a plain whole-second count or a
// time.ParseDuration string.
func parseSeconds(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < time.Second {
		return 0, fmt.Errorf("duration must be at least one second")
	}
	return int(d / time.Second), nil
}

func openStore(s config.Settings) (store.Store, error) {
	switch s.Store {
	case config.StoreSQLite:
		if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return sqlitestore.New(filepath.Join(s.DataDir, "timers.db"))
	default:
		return jsonstore.New(s.DataDir)
	}
}

// ---------------------------------------------------
// Interactive page
// ---------------------------------------------------

// newProgram wires the page to the registry and alert controller. Change
// notifications are forwarded from their own goroutines: mutations fire
// the callback synchronously, and a mutation made inside Model.Update
// would otherwise block on Program.Send while the event loop is busy
// running that same Update.
func newProgram(reg *registry.Registry, alerts *alert.Controller, opts ...tea.ProgramOption) *tea.Program {
	p := tea.NewProgram(ui.New(reg, alerts), opts...)
	reg.OnChange(func() { go p.Send(ui.RefreshMsg{}) })
	alerts.OnChange(func() { go p.Send(ui.RefreshMsg{}) })
	return p
}

func doList(s config.Settings) int {
	st, err := openStore(s)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	reg := registry.New(st)

	var cue alert.Cue = alert.NewBell()
	if !s.Sound {
		cue = alert.Silent{}
	}
	alerts := alert.NewController(cue,
		alert.WithRepeat(s.Repeat),
		alert.WithAutoDismiss(s.AutoDismiss),
	)

	p := newProgram(reg, alerts, tea.WithAltScreen())

	ticker, err := sched.New(s.Tick, func() {
		for _, c := range reg.Advance() {
			alerts.Trigger(c.ID, c.Title)
		}
	})
	if err != nil {
		ui.Fail("scheduler: " + err.Error())
		return 1
	}
	ticker.Start()
	defer func() {
		if err := ticker.Stop(); err != nil {
			ui.Fail("scheduler stop: " + err.Error())
		}
	}()

	if _, err := p.Run(); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// ---------------------------------------------------
// One-shot subcommands
// ---------------------------------------------------

func doAdd(s config.Settings, title string, seconds int) int {
	st, err := openStore(s)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	reg := registry.New(st)
	t, errs := reg.Create(form.FromDuration(strings.TrimSpace(title), "", seconds))
	if len(errs) > 0 {
		for _, msg := range errs {
			ui.Fail("add: " + msg)
		}
		return 2
	}
	ui.OK(fmt.Sprintf("added %q (%s)", t.Title, model.FormatSeconds(t.Duration)))
	return 0
}

func doRemove(s config.Settings, userIndex int) int {
	st, err := openStore(s)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	reg := registry.New(st)
	t, ok := timerAt(reg, userIndex)
	if !ok {
		return 2
	}
	reg.Delete(t.ID)
	ui.OK("removed " + strconv.Quote(t.Title))
	return 0
}

func doToggle(s config.Settings, userIndex int) int {
	st, err := openStore(s)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	reg := registry.New(st)
	t, ok := timerAt(reg, userIndex)
	if !ok {
		return 2
	}
	if t.Done() {
		ui.Fail(fmt.Sprintf("%q has ended", t.Title))
		ui.Hint("Hint: run `timers reset " + strconv.Itoa(userIndex) + "` to rewind it")
		return 2
	}
	reg.ToggleRun(t.ID)
	if t.Running {
		ui.OK("paused " + strconv.Quote(t.Title))
	} else {
		ui.OK("started " + strconv.Quote(t.Title))
	}
	return 0
}

func doReset(s config.Settings, userIndex int) int {
	st, err := openStore(s)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	reg := registry.New(st)
	t, ok := timerAt(reg, userIndex)
	if !ok {
		return 2
	}
	reg.Reset(t.ID)
	ui.OK("reset " + strconv.Quote(t.Title))
	return 0
}

func doClear(s config.Settings) int {
	st, err := openStore(s)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	reg := registry.New(st)
	reg.Clear()
	ui.OK("cleared")
	return 0
}

func timerAt(reg *registry.Registry, userIndex int) (model.Timer, bool) {
	t, ok := reg.At(userIndex - 1)
	if !ok {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", reg.Len(), userIndex))
		ui.Hint("Hint: run `timers ls` to see valid indexes")
		return model.Timer{}, false
	}
	return t, true
}
