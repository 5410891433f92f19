package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/clock"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/service"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/store"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, habits ...string) (Model, *service.Service, *storage.MemoryStore) {
	t.Helper()
	p := storage.NewMemoryStore()
	c := clock.Fixed(testNow)
	svc := service.New(store.New(p, c, nil), c)
	for _, name := range habits {
		if _, err := svc.Create(name, "", ""); err != nil {
			t.Fatal(err)
		}
	}
	m := NewModel(svc, Options{
		Window:  constants.WeekWindow,
		Backups: backup.NewManagerWithDir(t.TempDir(), time.UTC),
	})
	return m, svc, p
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

func TestToggleTodayFromGrid(t *testing.T) {
	m, svc, _ := newTestModel(t, "Read")

	m, cmd := press(t, m, " ")
	if cmd == nil {
		t.Error("a mutation should schedule an autosave")
	}
	h := svc.Habits()[0]
	if !h.IsCompleted("2026-10-14") {
		t.Error("space should complete today for the selected habit")
	}

	m, _ = press(t, m, "h", " ")
	if h := svc.Habits()[0]; !h.IsCompleted("2026-10-13") {
		t.Error("moving left then toggling should complete yesterday")
	}
	if got := svc.Summary(m.Window()).CompletedToday; got != 1 {
		t.Errorf("completed today = %d, want 1", got)
	}
}

func TestWindowToggle(t *testing.T) {
	m, _, _ := newTestModel(t, "Read")

	m, _ = press(t, m, "w")
	if m.Window() != constants.MonthWindow {
		t.Errorf("window = %d, want %d", m.Window(), constants.MonthWindow)
	}
	m, _ = press(t, m, "w")
	if m.Window() != constants.WeekWindow {
		t.Errorf("window = %d, want %d", m.Window(), constants.WeekWindow)
	}
}

func TestConfirmDelete(t *testing.T) {
	m, svc, _ := newTestModel(t, "Read", "Walk")

	m, _ = press(t, m, "d")
	if m.State() != StateConfirmDelete {
		t.Fatalf("state = %v, want confirm delete", m.State())
	}
	m, _ = press(t, m, "n")
	if m.State() != StateGrid || len(svc.Habits()) != 2 {
		t.Fatal("declining should keep the habit")
	}

	m, _ = press(t, m, "d", "y")
	habits := svc.Habits()
	if len(habits) != 1 || habits[0].Name != "Walk" {
		t.Errorf("expected only Walk to remain, got %+v", habits)
	}
}

func TestConfirmReset(t *testing.T) {
	m, svc, _ := newTestModel(t, "Read")
	m, _ = press(t, m, " ", "r", "y")

	if h := svc.Habits()[0]; len(h.Completions) != 0 {
		t.Errorf("completions = %v, want empty", h.Completions)
	}
}

func TestResetAllDropsPendingAutosave(t *testing.T) {
	m, svc, p := newTestModel(t, "Read")

	m, _ = press(t, m, " ")
	pending := autosaveMsg{seq: m.saveSeq}

	m, _ = press(t, m, "R", "y")
	if len(svc.Habits()) != 0 {
		t.Fatal("reset all should clear the collection")
	}

	next, _ := m.Update(pending)
	m = next.(Model)
	if _, ok, _ := p.Get(constants.SlotKey); ok {
		t.Error("a stale autosave must not recreate the removed slot")
	}
}

func TestAutosaveCoalesces(t *testing.T) {
	m, _, p := newTestModel(t, "Read")

	m, _ = press(t, m, " ")
	stale := autosaveMsg{seq: m.saveSeq}
	m, _ = press(t, m, " ")

	// drop the slot to observe whether a flush happens
	p.Remove(constants.SlotKey)

	next, _ := m.Update(stale)
	m = next.(Model)
	if _, ok, _ := p.Get(constants.SlotKey); ok {
		t.Error("an outdated autosave should not flush")
	}

	next, _ = m.Update(autosaveMsg{seq: m.saveSeq})
	m = next.(Model)
	if _, ok, _ := p.Get(constants.SlotKey); !ok {
		t.Error("the latest autosave should flush")
	}
}

func TestAddFormEscapeReturnsToGrid(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "a")
	if m.State() != StateAddHabit {
		t.Fatalf("state = %v, want add habit", m.State())
	}
	m, _ = press(t, m, "esc")
	if m.State() != StateGrid {
		t.Errorf("esc should return to the grid, got %v", m.State())
	}
}

func TestExport(t *testing.T) {
	m, _, _ := newTestModel(t, "Read")

	m, _ = press(t, m, "x")
	if !strings.Contains(m.status, "habit-tracker-backup-2026-10-14.json") || m.statusIsErr {
		t.Errorf("status = %q", m.status)
	}
}

func TestSlotChangedWithoutWatcher(t *testing.T) {
	m, svc, p := newTestModel(t, "Read")

	// another session wiped the data
	p.Remove(constants.SlotKey)
	next, cmd := m.Update(slotChangedMsg{})
	m = next.(Model)
	if cmd != nil {
		t.Error("no watcher means no follow-up wait")
	}
	if len(svc.Habits()) != 0 {
		t.Error("external removal should be picked up")
	}
	if !strings.Contains(m.View(), "No habits yet") {
		t.Error("grid should show the empty state")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, cmd := press(t, m, "q")
	if cmd == nil || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}
