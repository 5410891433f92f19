// Package store holds the in-memory habit collection and persists it as a
// single snapshot under one storage slot.
package store

import (
	"fmt"
	"math/rand/v2"

	"github.com/julianstephens/habitrack/internal/clock"
	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage"
)

// Rand is the source of randomness used for seed data
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Store owns the HabitCollection. It is not safe for concurrent use; all
// callers run on one goroutine.
type Store struct {
	provider storage.Provider
	clock    clock.Clock
	rand     Rand

	habits  []models.Habit
	corrupt bool

	// slot contents as last read or written by this process
	lastValue   string
	lastPresent bool
}

// New creates a store over provider. A nil r falls back to math/rand.
func New(provider storage.Provider, c clock.Clock, r Rand) *Store {
	if r == nil {
		r = globalRand{}
	}
	return &Store{
		provider: provider,
		clock:    c,
		rand:     r,
		habits:   []models.Habit{},
	}
}

// Load populates the collection from the slot. An absent slot is seeded
// with sample habits and saved. A slot that cannot be parsed is logged
// and the collection starts empty; the slot itself is left untouched
// until the next Save.
func (s *Store) Load() error {
	s.corrupt = false

	value, ok, err := s.provider.Get(constants.SlotKey)
	if err != nil {
		return fmt.Errorf("failed to read habit data: %w", err)
	}

	if !ok {
		s.habits = SampleHabits(s.clock.Now(), s.rand)
		logger.Info("Seeded sample habits", "count", len(s.habits))
		return s.Save()
	}

	s.apply(value)
	return nil
}

// apply decodes a present slot value into the collection
func (s *Store) apply(value string) {
	s.lastValue, s.lastPresent = value, true

	snap, err := DecodeSnapshot([]byte(value))
	if err != nil {
		logger.Error("Error loading data", "error", fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err))
		s.habits = []models.Habit{}
		s.corrupt = true
		return
	}

	s.habits = snap.Habits
	logger.Debug("Loaded habits", "count", len(s.habits))
}

// Sync re-reads the slot and picks up changes made by another writer. A
// slot removed elsewhere empties the collection without reseeding. It
// reports whether the collection was replaced.
func (s *Store) Sync() (bool, error) {
	// file-backed providers re-read on Load
	if err := s.provider.Load(); err != nil {
		return false, fmt.Errorf("failed to reload storage: %w", err)
	}
	value, ok, err := s.provider.Get(constants.SlotKey)
	if err != nil {
		return false, fmt.Errorf("failed to read habit data: %w", err)
	}
	if ok == s.lastPresent && value == s.lastValue {
		return false, nil
	}

	s.corrupt = false
	if !ok {
		s.habits = []models.Habit{}
		s.lastValue, s.lastPresent = "", false
		logger.Info("Habit data removed by another session")
		return true, nil
	}
	s.apply(value)
	logger.Info("Reloaded habit data changed by another session", "count", len(s.habits))
	return true, nil
}

// Corrupt reports whether the last Load found an unreadable slot
func (s *Store) Corrupt() bool {
	return s.corrupt
}

func (s *Store) snapshot() models.Snapshot {
	habits := make([]models.Habit, len(s.habits))
	for i, h := range s.habits {
		habits[i] = h.Clone()
	}
	return models.Snapshot{
		Habits:  habits,
		Version: constants.SchemaVersion,
	}
}

// Save writes the whole collection to the slot.
func (s *Store) Save() error {
	snap := s.snapshot()
	now := s.clock.Now().UTC()
	snap.LastUpdated = &now

	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.provider.Put(constants.SlotKey, string(data)); err != nil {
		return fmt.Errorf("failed to save habit data: %w", err)
	}
	s.lastValue, s.lastPresent = string(data), true
	s.corrupt = false
	logger.Debug("Saved habits", "count", len(s.habits))
	return nil
}

// ResetAll empties the collection and removes the slot entirely.
func (s *Store) ResetAll() error {
	s.habits = []models.Habit{}
	if err := s.provider.Remove(constants.SlotKey); err != nil {
		return fmt.Errorf("failed to remove habit data: %w", err)
	}
	s.lastValue, s.lastPresent = "", false
	s.corrupt = false
	logger.Info("Reset all habit data")
	return nil
}

// ExportSnapshot returns the collection stamped with an export date. It
// does not modify any state.
func (s *Store) ExportSnapshot() models.Snapshot {
	snap := s.snapshot()
	now := s.clock.Now().UTC()
	snap.ExportDate = &now
	return snap
}

// Habits returns a copy of the collection in display order
func (s *Store) Habits() []models.Habit {
	return s.snapshot().Habits
}

func (s *Store) index(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a copy of the habit with the given id
func (s *Store) Find(id string) (models.Habit, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return s.habits[i].Clone(), true
}

// Append adds h at the end of the collection. It does not save.
func (s *Store) Append(h models.Habit) {
	s.habits = append(s.habits, h.Clone())
}

// Update applies fn to the habit with the given id in place. It reports
// whether the habit was found and does not save.
func (s *Store) Update(id string, fn func(h *models.Habit)) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	fn(&s.habits[i])
	if s.habits[i].Completions == nil {
		s.habits[i].Completions = make(map[string]bool)
	}
	return true
}

// Delete removes the habit with the given id. It reports whether the
// habit was found and does not save.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	return true
}

// Replace swaps in a whole new collection. It does not save.
func (s *Store) Replace(habits []models.Habit) {
	s.habits = make([]models.Habit, len(habits))
	for i, h := range habits {
		s.habits[i] = h.Clone()
	}
}
