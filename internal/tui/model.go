package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/dates"
	"github.com/julianstephens/habitrack/internal/service"
	"github.com/julianstephens/habitrack/internal/tui/components/grid"
)

type SessionState int

const (
	StateGrid SessionState = iota
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
	StateConfirmReset
	StateConfirmResetAll
)

// autosaveMsg fires after the debounce; only the latest seq flushes
type autosaveMsg struct {
	seq int
}

// clockTickMsg re-renders so "today" follows the wall clock
type clockTickMsg struct{}

// Options configures a Model
type Options struct {
	Window  int
	Backups *backup.Manager
	Watcher *Watcher // nil disables reloading on external changes
}

type Model struct {
	svc         *service.Service
	backups     *backup.Manager
	watcher     *Watcher
	state       SessionState
	keys        KeyMap
	help        help.Model
	grid        grid.Model
	form        *huh.Form
	habitForm   *HabitFormModel
	editingID   string
	pendingID   string
	window      int
	status      string
	statusIsErr bool
	saveSeq     int
	quitting    bool
	width       int
	height      int
}

func NewModel(svc *service.Service, opts Options) Model {
	window := opts.Window
	if window != constants.MonthWindow {
		window = constants.WeekWindow
	}

	m := Model{
		svc:     svc,
		backups: opts.Backups,
		watcher: opts.Watcher,
		state:   StateGrid,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		grid:    grid.New(),
		window:  window,
	}
	m.refresh()

	if svc.Corrupt() {
		m.setError("Saved data could not be read; starting with an empty tracker")
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// clockTick fires at the next midnight, or within a minute if the wall
// clock moves under a suspended process.
func (m Model) clockTick() tea.Cmd {
	now := m.svc.Now()
	wait := min(dates.StartOfDay(now).AddDate(0, 0, 1).Sub(now), time.Minute)
	return tea.Tick(wait, func(time.Time) tea.Msg { return clockTickMsg{} })
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.clockTick()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

// refresh recomputes the grid from the current collection
func (m *Model) refresh() {
	m.grid.SetData(m.svc.Stats(m.window), m.svc.Window(m.window), m.svc.Today())
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsErr = true
}

// mutated refreshes the view and schedules the debounced flush
func (m *Model) mutated() tea.Cmd {
	m.refresh()
	m.saveSeq++
	seq := m.saveSeq
	return tea.Tick(constants.AutoSaveDebounce, func(time.Time) tea.Msg {
		return autosaveMsg{seq: seq}
	})
}

// Window returns the current window size
func (m Model) Window() int {
	return m.window
}

// State returns the current session state
func (m Model) State() SessionState {
	return m.state
}
