package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateAddHabit, StateEditHabit:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirm("Are you sure you want to delete this habit?")
	case StateConfirmReset:
		content = m.viewConfirm("Clear every completion of this habit?")
	case StateConfirmResetAll:
		content = m.viewConfirm("Are you sure you want to reset all data? This action cannot be undone.")
	default:
		content = m.grid.View()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		"",
		content,
		"",
		m.viewStatus(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	summary := m.svc.Summary(m.window)
	stat := func(label string, value string) string {
		return statLabelStyle.Render(label+" ") + statValueStyle.Render(value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(fmt.Sprintf("Habit Tracker · last %d days", m.window)),
		"  ",
		stat("Habits", fmt.Sprint(summary.TotalHabits)),
		"   ",
		stat("Today", fmt.Sprint(summary.CompletedToday)),
		"   ",
		stat("Streaks", fmt.Sprint(summary.ActiveStreaks)),
		"   ",
		stat("Rate", fmt.Sprintf("%d%%", summary.CompletionRate)),
	)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsErr {
		return dangerStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewConfirm(question string) string {
	height := max(m.height-8, 5)
	return lipgloss.Place(m.width, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
