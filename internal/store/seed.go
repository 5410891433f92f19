package store

import (
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/dates"
	"github.com/julianstephens/habitrack/internal/models"
)

var sampleHabits = []struct {
	id, name, color, description string
}{
	{"sample1", "Exercise", "success", "Daily workout or physical activity"},
	{"sample2", "Read", "primary", "Read for at least 15 minutes"},
	{"sample3", "Drink Water", "info", "Stay hydrated throughout the day"},
}

// SampleHabits builds the first-run collection. Each of the trailing
// SeedDays days is marked completed when r draws above the cutoff.
func SampleHabits(now time.Time, r Rand) []models.Habit {
	habits := make([]models.Habit, 0, len(sampleHabits))
	for _, sample := range sampleHabits {
		h := models.Habit{
			ID:          sample.id,
			Name:        sample.name,
			Color:       sample.color,
			Description: sample.description,
			Completions: make(map[string]bool),
			CreatedAt:   now.UTC(),
		}
		for i := 0; i < constants.SeedDays; i++ {
			if r.Float64() > constants.SeedCompletionCutoff {
				h.Completions[dates.FormatISODate(dates.DaysAgo(now, i))] = true
			}
		}
		habits = append(habits, h)
	}
	return habits
}
