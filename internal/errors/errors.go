package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitrack/internal/logger"
)

var (
	// ErrInvalidName is wrapped by validation errors for blank habit names
	ErrInvalidName = errors.New("habit name cannot be empty")
	// ErrInvalidDate is wrapped by validation errors for malformed date keys
	ErrInvalidDate = errors.New("invalid date")
	// ErrHabitNotFound is returned when an id does not reference a habit
	ErrHabitNotFound = errors.New("habit not found")
	// ErrCorruptState is returned when persisted or imported state cannot be used
	ErrCorruptState = errors.New("persisted state is corrupt")
)

// ValidationError reports input that was rejected before any state changed.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
