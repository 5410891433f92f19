package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/habitrack/internal/models"
)

// EncodeSnapshot serializes a snapshot in the compact form kept in the slot.
func EncodeSnapshot(snap models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// EncodeExport serializes a snapshot in the pretty-printed export form.
func EncodeExport(snap models.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// wireHabit mirrors models.Habit with the fields that are decoded leniently
// left raw.
type wireHabit struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Color       string                     `json:"color"`
	Description string                     `json:"description"`
	Completions map[string]json.RawMessage `json:"completions"`
	CreatedAt   json.RawMessage            `json:"createdAt"`
}

type wireSnapshot struct {
	Habits      []wireHabit `json:"habits"`
	Version     string      `json:"version"`
	LastUpdated *time.Time  `json:"lastUpdated,omitempty"`
	ExportDate  *time.Time  `json:"exportDate,omitempty"`
}

// DecodeSnapshot parses a slot value or export file. Missing fields take
// their defaults: no habits means an empty collection and no completions
// means an empty map. A createdAt that is not an RFC 3339 timestamp
// decodes as the zero time, and completion values that are not booleans
// are dropped, so one bad field never discards the collection.
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	snap := models.Snapshot{
		Habits:      make([]models.Habit, len(wire.Habits)),
		Version:     wire.Version,
		LastUpdated: wire.LastUpdated,
		ExportDate:  wire.ExportDate,
	}
	for i, w := range wire.Habits {
		snap.Habits[i] = models.Habit{
			ID:          w.ID,
			Name:        w.Name,
			Color:       w.Color,
			Description: w.Description,
			Completions: decodeCompletions(w.Completions),
			CreatedAt:   decodeTime(w.CreatedAt),
		}
	}
	return snap, nil
}

func decodeCompletions(raw map[string]json.RawMessage) map[string]bool {
	completions := make(map[string]bool, len(raw))
	for day, value := range raw {
		var done bool
		if err := json.Unmarshal(value, &done); err != nil {
			continue
		}
		completions[day] = done
	}
	return completions
}

func decodeTime(raw json.RawMessage) time.Time {
	var t time.Time
	if len(raw) == 0 || json.Unmarshal(raw, &t) != nil {
		return time.Time{}
	}
	return t
}
