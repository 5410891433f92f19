package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/store"
)

// BackupInfo contains information about an export artifact
type BackupInfo struct {
	Path    string
	Date    time.Time // calendar date from the file name
	Counter int       // same-day collision suffix, 0 for the first export
	Size    int64
}

// Snapshotter is the part of the habit service a restore needs
type Snapshotter interface {
	Export() models.Snapshot
	Import(snap models.Snapshot) error
}

// Manager handles export artifacts
type Manager struct {
	backupDir string
	location  *time.Location
}

// NewManager places artifacts in a backups directory next to the slot
// storage. The in-memory provider uses the working directory.
func NewManager(configPath string, loc *time.Location) *Manager {
	configDir := "."
	if configPath != storage.MemoryPath {
		configDir = filepath.Dir(configPath)
	}
	return NewManagerWithDir(filepath.Join(configDir, constants.BackupDirName), loc)
}

// NewManagerWithDir uses dir for artifacts directly
func NewManagerWithDir(dir string, loc *time.Location) *Manager {
	if loc == nil {
		loc = time.Local
	}
	return &Manager{
		backupDir: dir,
		location:  loc,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// ensureBackupDir creates the backup directory if it doesn't exist
func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

func backupName(date string, counter int) string {
	if counter == 0 {
		return constants.BackupFilePrefix + date + constants.BackupFileSuffix
	}
	return fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, date, counter, constants.BackupFileSuffix)
}

// CreateBackup writes snap as a pretty-printed artifact named after its
// export date and rotates old artifacts.
func (m *Manager) CreateBackup(snap models.Snapshot) (string, error) {
	return m.createBackup(snap, false)
}

// Export writes snap like CreateBackup but never rotates, so a directory
// the user chose keeps every artifact already in it.
func (m *Manager) Export(snap models.Snapshot) (string, error) {
	return m.createBackup(snap, true)
}

// createBackup writes an artifact
// skipRotation is set while restoring so the safety copy never evicts the artifact being restored
func (m *Manager) createBackup(snap models.Snapshot, skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	exported := time.Now()
	if snap.ExportDate != nil {
		exported = *snap.ExportDate
	}
	date := exported.In(m.location).Format(constants.DateFormat)

	// Same-day exports get a counter suffix
	backupPath := filepath.Join(m.backupDir, backupName(date, 0))
	counter := 1
	for {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		backupPath = filepath.Join(m.backupDir, backupName(date, counter))
		counter++
		if counter > 1000 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}

	data, err := store.EncodeExport(snap)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Created backup", "path", backupPath, "habits", len(snap.Habits))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Log error but don't fail the backup operation
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// parseBackupName extracts the date and collision counter from an
// artifact file name
func parseBackupName(name string) (time.Time, int, bool) {
	stem := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	datePart, counterPart, hasCounter := stem, "", false
	if len(stem) > len(constants.DateFormat) {
		datePart, counterPart, hasCounter = stem[:len(constants.DateFormat)], stem[len(constants.DateFormat):], true
	}

	date, err := time.Parse(constants.DateFormat, datePart)
	if err != nil {
		return time.Time{}, 0, false
	}
	if !hasCounter {
		return date, 0, true
	}

	counterPart, ok := strings.CutPrefix(counterPart, "-")
	if !ok {
		return time.Time{}, 0, false
	}
	counter, err := strconv.Atoi(counterPart)
	if err != nil || counter < 1 {
		return time.Time{}, 0, false
	}
	return date, counter, true
}

// ListBackups returns all artifacts, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	pattern := constants.BackupFilePrefix + "*" + constants.BackupFileSuffix
	matches, err := doublestar.Glob(os.DirFS(m.backupDir), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, name := range matches {
		date, counter, ok := parseBackupName(name)
		if !ok {
			// Skip files with invalid names
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:    path,
			Date:    date,
			Counter: counter,
			Size:    info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Date.Equal(backups[j].Date) {
			return backups[i].Date.After(backups[j].Date)
		}
		return backups[i].Counter > backups[j].Counter
	})

	return backups, nil
}

// rotateBackups removes old artifacts beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= constants.MaxBackups {
		return nil
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// LoadBackup reads an artifact. Unreadable or malformed files wrap
// ErrCorruptState.
func LoadBackup(path string) (models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Snapshot{}, fmt.Errorf("backup file does not exist: %s", path)
		}
		return models.Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	snap, err := store.DecodeSnapshot(data)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}
	return snap, nil
}

// RestoreBackup imports the artifact at backupPath into target. The
// current collection is exported first so the restore can be undone; the
// safety copy's path is returned.
func (m *Manager) RestoreBackup(backupPath string, target Snapshotter) (string, error) {
	snap, err := LoadBackup(backupPath)
	if err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	safety, err := m.createBackup(target.Export(), true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}

	if err := target.Import(snap); err != nil {
		return safety, err
	}
	logger.Info("Restored backup", "path", backupPath, "safety", safety)
	return safety, nil
}
