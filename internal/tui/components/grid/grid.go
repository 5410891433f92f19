// Package grid renders habits against a window of days with a movable
// cursor over the cells.
package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrack/internal/dates"
	"github.com/julianstephens/habitrack/internal/stats"
)

const (
	nameWidth   = 22
	streakWidth = 9
	barWidth    = 10
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Colors maps palette labels to terminal colors
var Colors = map[string]lipgloss.Color{
	"primary":   lipgloss.Color("33"),
	"success":   lipgloss.Color("42"),
	"info":      lipgloss.Color("45"),
	"warning":   lipgloss.Color("214"),
	"danger":    lipgloss.Color("196"),
	"secondary": lipgloss.Color("245"),
}

// ColorFor returns the terminal color for a palette label. Unknown labels
// render as secondary.
func ColorFor(label string) lipgloss.Color {
	if c, ok := Colors[label]; ok {
		return c
	}
	return Colors["secondary"]
}

type Model struct {
	views []stats.HabitView
	days  []time.Time
	today string
	row   int
	col   int
	width int
	// static hides the cursor for one-shot rendering
	static bool
}

func New() Model {
	return Model{}
}

// NewStatic returns a grid that renders without a cursor
func NewStatic() Model {
	return Model{static: true}
}

// SetData replaces the rows and columns. The cursor keeps its habit when
// possible and is clamped otherwise. A change in window size moves the
// cursor to today.
func (m *Model) SetData(views []stats.HabitView, days []time.Time, today string) {
	selected, _, _ := m.Selected()
	resized := len(days) != len(m.days)

	m.views = views
	m.days = days
	m.today = today

	if resized {
		m.col = len(days) - 1
	}
	for i, v := range views {
		if v.Habit.ID == selected {
			m.row = i
		}
	}
	m.clamp()
}

func (m *Model) SetWidth(w int) {
	m.width = w
}

func (m *Model) clamp() {
	m.row = min(max(m.row, 0), max(len(m.views)-1, 0))
	m.col = min(max(m.col, 0), max(len(m.days)-1, 0))
}

func (m *Model) MoveUp()    { m.row--; m.clamp() }
func (m *Model) MoveDown()  { m.row++; m.clamp() }
func (m *Model) MoveLeft()  { m.col--; m.clamp() }
func (m *Model) MoveRight() { m.col++; m.clamp() }

// JumpToday moves the cursor to today's column
func (m *Model) JumpToday() {
	for i, d := range m.days {
		if dates.FormatISODate(d) == m.today {
			m.col = i
		}
	}
}

// Selected returns the habit id and date key under the cursor
func (m Model) Selected() (habitID, dateKey string, ok bool) {
	if len(m.views) == 0 || len(m.days) == 0 {
		return "", "", false
	}
	return m.views[m.row].Habit.ID, dates.FormatISODate(m.days[m.col]), true
}

// cellWidth shrinks day columns for wide windows and narrow terminals
func (m Model) cellWidth() int {
	full := nameWidth + streakWidth + barWidth + 6 + 6*len(m.days)
	if len(m.days) > 7 || (m.width > 0 && m.width < full) {
		return 3
	}
	return 5
}

func pad(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(s)
}

func progressBar(percent int, color lipgloss.Color) string {
	filled := percent * barWidth / 100
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

func (m Model) header() string {
	cw := m.cellWidth()
	var b strings.Builder
	b.WriteString(headerStyle.Render(pad("Habit", nameWidth)))
	b.WriteString(headerStyle.Render(pad("Streak", streakWidth)))
	b.WriteString(headerStyle.Render(pad("Progress", barWidth+6)))
	for _, d := range m.days {
		dd := dates.FormatDisplayDate(d)
		label := fmt.Sprintf("%s%d", dd.Day[:1], dd.Date)
		if cw > 3 {
			label = fmt.Sprintf("%s %d", dd.Day, dd.Date)
		}
		style := headerStyle
		if dates.FormatISODate(d) == m.today {
			style = todayStyle
		}
		b.WriteString(style.Render(pad(label, cw+1)))
	}
	return b.String()
}

func (m Model) View() string {
	if len(m.views) == 0 {
		return emptyStyle.Render("No habits yet. Press 'a' to add your first habit.")
	}

	cw := m.cellWidth()
	lines := []string{m.header()}
	for r, v := range m.views {
		color := ColorFor(v.Habit.Color)
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(pad(v.Habit.Name, nameWidth)))
		b.WriteString(pad(fmt.Sprintf("%d/%d", v.Streak.Current, v.Streak.Longest), streakWidth))
		b.WriteString(pad(progressBar(v.Progress, color), barWidth+6))

		for c, d := range m.days {
			done := v.Habit.IsCompleted(dates.FormatISODate(d))
			style := mutedStyle
			if done {
				style = lipgloss.NewStyle().Foreground(color)
			}
			if !m.static && r == m.row && c == m.col {
				style = selectedStyle
			}
			b.WriteString(style.Render(pad(glyph(done), cw)) + " ")
		}
		lines = append(lines, b.String())

		if v.Habit.Description != "" && (m.static || r == m.row) {
			lines = append(lines, mutedStyle.Render("  "+v.Habit.Description))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func glyph(completed bool) string {
	if completed {
		return " ●"
	}
	return " ·"
}
