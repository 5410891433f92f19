package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid.SetWidth(msg.Width)
		return m, nil

	case autosaveMsg:
		if msg.seq == m.saveSeq {
			if err := m.svc.Flush(); err != nil {
				logger.Error("Autosave failed", "error", err)
				m.setError(fmt.Sprintf("Autosave failed: %v", err))
			}
		}
		return m, nil

	case clockTickMsg:
		m.refresh()
		return m, m.clockTick()

	case slotChangedMsg:
		changed, err := m.svc.Sync()
		if err != nil {
			m.setError(fmt.Sprintf("Reload failed: %v", err))
		} else if changed {
			m.refresh()
			m.setStatus("Reloaded changes from another session")
		}
		if m.watcher == nil {
			return m, nil
		}
		return m, m.watcher.Wait()
	}

	switch m.state {
	case StateAddHabit, StateEditHabit:
		return m.updateForm(msg)
	case StateConfirmDelete, StateConfirmReset, StateConfirmResetAll:
		return m.updateConfirm(msg)
	}
	return m.updateGrid(msg)
}

func (m Model) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Up):
		m.grid.MoveUp()
	case key.Matches(keyMsg, m.keys.Down):
		m.grid.MoveDown()
	case key.Matches(keyMsg, m.keys.Left):
		m.grid.MoveLeft()
	case key.Matches(keyMsg, m.keys.Right):
		m.grid.MoveRight()
	case key.Matches(keyMsg, m.keys.Today):
		m.grid.JumpToday()

	case key.Matches(keyMsg, m.keys.Window):
		if m.window == constants.WeekWindow {
			m.window = constants.MonthWindow
		} else {
			m.window = constants.WeekWindow
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Showing the last %d days", m.window))

	case key.Matches(keyMsg, m.keys.Toggle):
		id, day, ok := m.grid.Selected()
		if !ok {
			return m, nil
		}
		if _, err := m.svc.ToggleCompletion(id, day); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.setStatus("")
		return m, m.mutated()

	case key.Matches(keyMsg, m.keys.Add):
		m.habitForm = &HabitFormModel{}
		m.editingID = ""
		m.form = NewHabitForm(m.habitForm, "Add New Habit")
		m.state = StateAddHabit
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Edit):
		id, _, ok := m.grid.Selected()
		if !ok {
			return m, nil
		}
		h, found := m.svc.Find(id)
		if !found {
			return m, nil
		}
		m.habitForm = &HabitFormModel{Name: h.Name, Color: h.Color, Description: h.Description}
		m.editingID = id
		m.form = NewHabitForm(m.habitForm, "Edit Habit")
		m.state = StateEditHabit
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Delete):
		if id, _, ok := m.grid.Selected(); ok {
			m.pendingID = id
			m.state = StateConfirmDelete
		}
	case key.Matches(keyMsg, m.keys.Reset):
		if id, _, ok := m.grid.Selected(); ok {
			m.pendingID = id
			m.state = StateConfirmReset
		}
	case key.Matches(keyMsg, m.keys.ResetAll):
		m.state = StateConfirmResetAll

	case key.Matches(keyMsg, m.keys.Export):
		if m.backups == nil {
			return m, nil
		}
		path, err := m.backups.CreateBackup(m.svc.Export())
		if err != nil {
			m.setError(fmt.Sprintf("Export failed: %v", err))
			return m, nil
		}
		m.setStatus("Exported " + filepath.Base(path))
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateGrid
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.habitForm
		var err error
		if m.state == StateAddHabit {
			_, err = m.svc.Create(fm.Name, fm.Color, fm.Description)
		} else {
			err = m.svc.Edit(m.editingID, fm.Name, fm.Color, fm.Description)
		}
		if err != nil {
			// Stay in form state on error to allow retry
			m.setError(err.Error())
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.state = StateGrid
		m.setStatus("Saved " + fm.Name)
		return m, m.mutated()
	case huh.StateAborted:
		m.state = StateGrid
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		state := m.state
		m.state = StateGrid
		var err error
		switch state {
		case StateConfirmDelete:
			_, err = m.svc.Delete(m.pendingID)
		case StateConfirmReset:
			_, err = m.svc.ResetHabit(m.pendingID)
		case StateConfirmResetAll:
			err = m.svc.ResetAllData()
		}
		m.pendingID = ""
		if err != nil {
			m.setError(err.Error())
			m.refresh()
			return m, nil
		}
		m.setStatus("")
		if state == StateConfirmResetAll {
			// the slot is gone; drop any pending flush so it is not recreated
			m.saveSeq++
			m.refresh()
			return m, nil
		}
		return m, m.mutated()
	case "n", "N", "esc", "q":
		m.state = StateGrid
		m.pendingID = ""
	}
	return m, nil
}
