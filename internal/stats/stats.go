// Package stats computes streaks and completion rates over a habit's
// completion record.
package stats

import (
	"math"
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/dates"
	"github.com/julianstephens/habitrack/internal/models"
)

// Streak holds the current and longest runs of completed days
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Summary aggregates statistics across all habits
type Summary struct {
	TotalHabits    int `json:"totalHabits"`
	CompletedToday int `json:"completedToday"`
	ActiveStreaks  int `json:"activeStreaks"`
	CompletionRate int `json:"completionRate"`
}

// HabitView bundles the per-habit values a renderer needs
type HabitView struct {
	Habit    models.Habit
	Streak   Streak
	Progress int
}

// CalculateStreak walks back from now's calendar day for at most
// StreakLookbackDays days. Current counts completed days from today
// backwards and stops at the first gap; if today is not completed it is 0.
// Longest is the maximum run seen anywhere in the lookback.
func CalculateStreak(h models.Habit, now time.Time) Streak {
	var streak Streak
	run := 0
	broken := false

	for i := 0; i < constants.StreakLookbackDays; i++ {
		if h.Completions[dates.FormatISODate(dates.DaysAgo(now, i))] {
			if !broken {
				streak.Current++
			}
			run++
			continue
		}
		broken = true
		streak.Longest = max(streak.Longest, run)
		run = 0
	}
	streak.Longest = max(streak.Longest, run)

	return streak
}

func countCompleted(h models.Habit, window []time.Time) int {
	n := 0
	for _, d := range window {
		if h.Completions[dates.FormatISODate(d)] {
			n++
		}
	}
	return n
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// CalculateProgress is the rounded percentage of window days completed.
func CalculateProgress(h models.Habit, window []time.Time) int {
	return percent(countCompleted(h, window), len(window))
}

// ComputeSummary aggregates habit counts, today's completions, active
// streaks, and the overall completion rate across the window.
func ComputeSummary(habits []models.Habit, window []time.Time, now time.Time) Summary {
	summary := Summary{TotalHabits: len(habits)}
	today := dates.FormatISODate(now)

	completed, possible := 0, 0
	for _, h := range habits {
		if h.Completions[today] {
			summary.CompletedToday++
		}
		if CalculateStreak(h, now).Current > 0 {
			summary.ActiveStreaks++
		}
		completed += countCompleted(h, window)
		possible += len(window)
	}
	summary.CompletionRate = percent(completed, possible)

	return summary
}

// HabitStats computes the streak and window progress for every habit,
// preserving collection order.
func HabitStats(habits []models.Habit, window []time.Time, now time.Time) []HabitView {
	views := make([]HabitView, len(habits))
	for i, h := range habits {
		views[i] = HabitView{
			Habit:    h,
			Streak:   CalculateStreak(h, now),
			Progress: CalculateProgress(h, window),
		}
	}
	return views
}
