package models

import "time"

// Habit is a user-defined daily activity and its completion history.
type Habit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	Description string          `json:"description"`
	Completions map[string]bool `json:"completions"` // YYYY-MM-DD -> completed
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsCompleted reports whether the habit has a truthy entry for day.
func (h Habit) IsCompleted(day string) bool {
	return h.Completions[day]
}

// Clone returns a copy whose completions map is not shared with h.
func (h Habit) Clone() Habit {
	c := h
	c.Completions = make(map[string]bool, len(h.Completions))
	for k, v := range h.Completions {
		c.Completions[k] = v
	}
	return c
}
