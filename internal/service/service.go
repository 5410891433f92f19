// Package service implements the validated habit mutations. Every
// successful mutation is saved before the call returns.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitrack/internal/clock"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/dates"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/stats"
	"github.com/julianstephens/habitrack/internal/store"
	"github.com/julianstephens/habitrack/internal/validation"
)

// Service is the single entry point for reading and changing habits.
type Service struct {
	store     *store.Store
	clock     clock.Clock
	validator *validation.Validator
	newID     func() string
}

func New(s *store.Store, c clock.Clock) *Service {
	return &Service{
		store:     s,
		clock:     c,
		validator: validation.New(),
		newID:     uuid.NewString,
	}
}

// Now returns the current time in the configured location
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Today returns today's completion key
func (s *Service) Today() string {
	return dates.FormatISODate(s.clock.Now())
}

// Window returns the size days ending today, oldest first
func (s *Service) Window(size int) []time.Time {
	return dates.GenerateDateRange(size, s.clock.Now())
}

// Habits returns a copy of the collection in display order
func (s *Service) Habits() []models.Habit {
	return s.store.Habits()
}

// Find looks up a habit by id
func (s *Service) Find(id string) (models.Habit, bool) {
	return s.store.Find(id)
}

// Stats returns per-habit streak and progress over a window of size days
func (s *Service) Stats(size int) []stats.HabitView {
	return stats.HabitStats(s.store.Habits(), s.Window(size), s.clock.Now())
}

// Summary returns the aggregate statistics over a window of size days
func (s *Service) Summary(size int) stats.Summary {
	return stats.ComputeSummary(s.store.Habits(), s.Window(size), s.clock.Now())
}

func normalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return constants.DefaultColor
	}
	return color
}

// save persists the collection. On failure the collection is put back to
// previous so a failed mutation leaves nothing behind.
func (s *Service) save(previous []models.Habit) error {
	if err := s.store.Save(); err != nil {
		s.store.Replace(previous)
		return err
	}
	return nil
}

// Create appends a new habit. A blank name is rejected with a
// ValidationError and nothing changes.
func (s *Service) Create(name, color, description string) (models.Habit, error) {
	name, err := validation.NormalizeName(name)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:          s.newID(),
		Name:        name,
		Color:       normalizeColor(color),
		Description: strings.TrimSpace(description),
		Completions: make(map[string]bool),
		CreatedAt:   s.clock.Now().UTC(),
	}
	previous := s.store.Habits()
	s.store.Append(habit)

	if err := s.save(previous); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Created habit", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// Edit replaces the name, color and description of an existing habit.
// The id, creation time and completions are left alone.
func (s *Service) Edit(id, name, color, description string) error {
	name, err := validation.NormalizeName(name)
	if err != nil {
		return err
	}

	previous := s.store.Habits()
	found := s.store.Update(id, func(h *models.Habit) {
		h.Name = name
		h.Color = normalizeColor(color)
		h.Description = strings.TrimSpace(description)
	})
	if !found {
		return fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, id)
	}

	if err := s.save(previous); err != nil {
		return err
	}
	logger.Info("Edited habit", "id", id)
	return nil
}

// Delete removes a habit. An unknown id is a no-op and reports false.
func (s *Service) Delete(id string) (bool, error) {
	previous := s.store.Habits()
	if !s.store.Delete(id) {
		return false, nil
	}
	if err := s.save(previous); err != nil {
		return false, err
	}
	logger.Info("Deleted habit", "id", id)
	return true, nil
}

// ToggleCompletion flips the completion flag for dateKey and returns the
// new value. A missing entry becomes true.
func (s *Service) ToggleCompletion(id, dateKey string) (bool, error) {
	if err := validation.ValidateDateKey(dateKey); err != nil {
		return false, err
	}

	var completed bool
	previous := s.store.Habits()
	found := s.store.Update(id, func(h *models.Habit) {
		if h.Completions == nil {
			h.Completions = make(map[string]bool)
		}
		completed = !h.Completions[dateKey]
		h.Completions[dateKey] = completed
	})
	if !found {
		return false, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, id)
	}

	if err := s.save(previous); err != nil {
		return !completed, err
	}
	logger.Debug("Toggled completion", "id", id, "date", dateKey, "completed", completed)
	return completed, nil
}

// ResetHabit clears every completion of one habit. An unknown id is a
// no-op and reports false.
func (s *Service) ResetHabit(id string) (bool, error) {
	previous := s.store.Habits()
	found := s.store.Update(id, func(h *models.Habit) {
		h.Completions = make(map[string]bool)
	})
	if !found {
		return false, nil
	}
	if err := s.save(previous); err != nil {
		return false, err
	}
	logger.Info("Reset habit", "id", id)
	return true, nil
}

// ResetAllData empties the collection and removes the persisted slot.
func (s *Service) ResetAllData() error {
	return s.store.ResetAll()
}

// Import replaces the whole collection with snap. Every habit must pass
// the create/edit rules and ids must be unique; otherwise the snapshot is
// rejected with ErrCorruptState and nothing is loaded.
func (s *Service) Import(snap models.Snapshot) error {
	result := s.validator.ValidateHabits(snap.Habits)
	if err := result.Err(); err != nil {
		logger.Error("Rejected import", "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}

	habits := make([]models.Habit, len(snap.Habits))
	for i, h := range snap.Habits {
		h = h.Clone()
		h.Name, _ = validation.NormalizeName(h.Name)
		h.Color = normalizeColor(h.Color)
		h.Description = strings.TrimSpace(h.Description)
		if h.CreatedAt.IsZero() {
			h.CreatedAt = s.clock.Now().UTC()
		}
		habits[i] = h
	}

	previous := s.store.Habits()
	s.store.Replace(habits)
	if err := s.save(previous); err != nil {
		return err
	}
	logger.Info("Imported habits", "count", len(habits))
	return nil
}

// Export returns the collection stamped with an export date
func (s *Service) Export() models.Snapshot {
	return s.store.ExportSnapshot()
}

// Flush writes the current collection again. Mutations already save, so
// this only backs up the debounced autosave.
func (s *Service) Flush() error {
	return s.store.Save()
}

// Sync picks up changes another session made to the slot and reports
// whether the collection changed
func (s *Service) Sync() (bool, error) {
	return s.store.Sync()
}

// Corrupt reports whether the slot could not be read at load time
func (s *Service) Corrupt() bool {
	return s.store.Corrupt()
}
