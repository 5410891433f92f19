package constants

import "time"

const (
	AppName           = "habitrack"
	DefaultConfigPath = "~/.config/habitrack/habitrack.db"
	DefaultYAMLPath   = "~/.config/habitrack/config.yaml"
	Version           = "v0.1.0"

	// DateFormat is the date key format used for completions (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// SlotKey is the single key the habit collection is persisted under
	SlotKey = "habitTrackerData"

	// SchemaVersion is written into every snapshot. It is never migrated.
	SchemaVersion = "1.0"

	// Window sizes supported by the tracker
	WeekWindow  = 7
	MonthWindow = 30

	// StreakLookbackDays caps how far back streaks are computed
	StreakLookbackDays = 365

	// Seed data
	SeedDays              = 7
	SeedCompletionCutoff  = 0.3 // a day is completed when rand > cutoff (~70%)
	DefaultColor          = "primary"
	DefaultTimezone       = "Local"
	AutoSaveDebounce      = time.Second
	SessionLockfileSuffix = ".lock"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habit-tracker-backup-"
	BackupFileSuffix = ".json"
)

// Palette is the fixed set of color labels offered for habits
var Palette = []string{"primary", "success", "info", "warning", "danger", "secondary"}
