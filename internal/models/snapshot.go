package models

import "time"

// Snapshot is the durable form of the habit collection. LastUpdated is set
// on slot writes, ExportDate on export artifacts; neither is read back.
type Snapshot struct {
	Habits      []Habit    `json:"habits"`
	Version     string     `json:"version"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	ExportDate  *time.Time `json:"exportDate,omitempty"`
}
