package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitrack/internal/dates"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingHabitID   ConflictType = "missing_habit_id"
	ConflictDuplicateHabitID ConflictType = "duplicate_habit_id"
	ConflictBlankName        ConflictType = "blank_name"
	ConflictInvalidDateKey   ConflictType = "invalid_date_key"
)

// Conflict represents a problem found in a habit collection
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // offending completion key (if applicable)
	HabitIDs    []string // IDs of habits involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Err returns nil when there are no conflicts, otherwise an error listing them
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	descs := make([]string, len(vr.Conflicts))
	for i, c := range vr.Conflicts {
		descs[i] = c.Description
	}
	return fmt.Errorf("%d conflict(s): %s", len(descs), strings.Join(descs, "; "))
}

// NormalizeName trims name and rejects it if nothing is left. The same rule
// applies to create, edit and every imported habit.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &apperrors.ValidationError{Field: "name", Err: apperrors.ErrInvalidName}
	}
	return trimmed, nil
}

// ValidateDateKey rejects completion keys that are not YYYY-MM-DD dates
func ValidateDateKey(key string) error {
	if !dates.IsISODate(key) {
		return &apperrors.ValidationError{
			Field: "date",
			Err:   fmt.Errorf("%w %q (expected YYYY-MM-DD)", apperrors.ErrInvalidDate, key),
		}
	}
	return nil
}

// Validator validates habit collections
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks a whole collection: every habit needs an id that
// no other habit shares, a non-blank name, and well-formed completion keys.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]bool, len(habits))
	reported := make(map[string]bool)
	for i, habit := range habits {
		label := habitLabel(i, habit)

		if habit.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingHabitID,
				Description: fmt.Sprintf("%s has no id", label),
			})
		} else if seen[habit.ID] {
			if !reported[habit.ID] {
				reported[habit.ID] = true
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateHabitID,
					Description: fmt.Sprintf("Duplicate habit id: %q", habit.ID),
					HabitIDs:    []string{habit.ID},
				})
			}
		}
		seen[habit.ID] = true

		if _, err := NormalizeName(habit.Name); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictBlankName,
				Description: fmt.Sprintf("%s has a blank name", label),
				HabitIDs:    []string{habit.ID},
			})
		}

		for key := range habit.Completions {
			if err := ValidateDateKey(key); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDateKey,
					Description: fmt.Sprintf("%s has invalid completion date %q", label, key),
					Date:        key,
					HabitIDs:    []string{habit.ID},
				})
			}
		}
	}

	return result
}

func habitLabel(i int, h models.Habit) string {
	if h.ID == "" {
		return fmt.Sprintf("Habit #%d", i+1)
	}
	return fmt.Sprintf("Habit %q", h.ID)
}
