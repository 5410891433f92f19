package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitrack/internal/clock"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/service"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/store"
)

func newService(t *testing.T, path string) *service.Service {
	t.Helper()
	p := storage.New(path)
	if err := p.Load(); err != nil {
		t.Fatalf("failed to load storage: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	c := clock.Fixed(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))
	st := store.New(p, c, nil)
	if err := st.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return service.New(st, c)
}

// TestIntegrationBackupRestoreWorkflow exports, mutates, restores and
// checks that the restored state survives a reopen
func TestIntegrationBackupRestoreWorkflow(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "habitrack.db")

	// Step 1: start with a single habit
	svc := newService(t, dbPath)
	if err := svc.ResetAllData(); err != nil {
		t.Fatal(err)
	}
	h, err := svc.Create("Journal", "info", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ToggleCompletion(h.ID, "2026-10-14"); err != nil {
		t.Fatal(err)
	}

	// Step 2: export it
	mgr := NewManager(dbPath, time.UTC)
	backup1, err := mgr.CreateBackup(svc.Export())
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if filepath.Dir(backup1) != filepath.Join(tempDir, "backups") {
		t.Errorf("backup written to unexpected dir: %s", backup1)
	}

	// Step 3: modify the collection
	if _, err := svc.Create("Run", "success", ""); err != nil {
		t.Fatal(err)
	}
	if len(svc.Habits()) != 2 {
		t.Fatalf("expected 2 habits before restore, got %d", len(svc.Habits()))
	}

	// Step 4: restore
	safety, err := mgr.RestoreBackup(backup1, svc)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if _, err := os.Stat(safety); err != nil {
		t.Errorf("safety backup was not written: %v", err)
	}
	if safety == backup1 {
		t.Error("safety backup must not overwrite the restored artifact")
	}

	// Step 5: reopen and verify
	reopened := newService(t, dbPath)
	habits := reopened.Habits()
	if len(habits) != 1 || habits[0].ID != h.ID {
		t.Fatalf("expected restored single habit, got %+v", habits)
	}
	if !habits[0].IsCompleted("2026-10-14") {
		t.Error("restored habit lost its completion")
	}

	// Step 6: the safety copy holds the pre-restore state
	snap, err := LoadBackup(safety)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Habits) != 2 {
		t.Errorf("safety backup should hold 2 habits, got %d", len(snap.Habits))
	}
}

func TestIntegrationRestoreRejectsInvalidArtifact(t *testing.T) {
	tempDir := t.TempDir()
	svc := newService(t, filepath.Join(tempDir, "habitrack.json"))
	before := len(svc.Habits())

	bad := filepath.Join(tempDir, "bad.json")
	content := `{"habits":[{"id":"a","name":"ok"},{"id":"b","name":"   "}],"version":"1.0"}`
	if err := os.WriteFile(bad, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(filepath.Join(tempDir, "habitrack.json"), time.UTC)
	if _, err := mgr.RestoreBackup(bad, svc); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if len(svc.Habits()) != before {
		t.Error("a rejected restore must leave the collection unchanged")
	}
}
