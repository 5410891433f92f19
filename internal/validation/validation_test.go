package validation

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/models"
)

func countType(result ValidationResult, ct ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

func TestValidateHabits_Valid(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "Read", Completions: map[string]bool{"2026-10-14": true}},
		{ID: "2", Name: "Read", Completions: map[string]bool{}}, // duplicate names are allowed
	}

	result := validator.ValidateHabits(habits)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if result.Err() != nil {
		t.Errorf("Expected nil Err, got %v", result.Err())
	}
}

func TestValidateHabits_DuplicateIDs(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "A"},
		{ID: "1", Name: "B"},
		{ID: "1", Name: "C"},
	}

	result := validator.ValidateHabits(habits)
	if got := countType(result, ConflictDuplicateHabitID); got != 1 {
		t.Errorf("Expected 1 duplicate id conflict, got %d", got)
	}
}

func TestValidateHabits_BlankNamesAndMissingIDs(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "", Name: "No ID"},
		{ID: "2", Name: "   "},
		{ID: "3", Name: ""},
	}

	result := validator.ValidateHabits(habits)
	if got := countType(result, ConflictMissingHabitID); got != 1 {
		t.Errorf("Expected 1 missing id conflict, got %d", got)
	}
	if got := countType(result, ConflictBlankName); got != 2 {
		t.Errorf("Expected 2 blank name conflicts, got %d", got)
	}
	if !strings.Contains(result.FormatReport(), "Habit #1 has no id") {
		t.Errorf("Report should label habits without ids by position:\n%s", result.FormatReport())
	}
}

func TestValidateHabits_InvalidDateKeys(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", Name: "A", Completions: map[string]bool{
			"2026-10-14": true,
			"2026-13-01": true,
			"yesterday":  true,
			"2026-2-3":   false,
		}},
	}

	result := validator.ValidateHabits(habits)
	if got := countType(result, ConflictInvalidDateKey); got != 3 {
		t.Errorf("Expected 3 invalid date conflicts, got %d: %s", got, result.FormatReport())
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Exercise", "Exercise", false},
		{"  Read  ", "Read", false},
		{"", "", true},
		{" \t\n", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !apperrors.IsValidation(err) || !errors.Is(err, apperrors.ErrInvalidName) {
				t.Errorf("NormalizeName(%q) error should be a name ValidationError, got %v", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateDateKey(t *testing.T) {
	if err := ValidateDateKey("2024-02-29"); err != nil {
		t.Errorf("leap day should be valid: %v", err)
	}
	err := ValidateDateKey("2023-02-29")
	if err == nil {
		t.Fatal("expected non-leap Feb 29 to be rejected")
	}
	if !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}
