package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/lock"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/store"
	"github.com/julianstephens/habitrack/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	out := ctx.Out
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	check := func(name string, err error) bool {
		if err != nil {
			fmt.Fprintf(out, "❌ %s: FAIL\n", name)
			fmt.Fprintf(out, "   Error: %v\n", err)
			hasError = true
			return false
		}
		fmt.Fprintf(out, "✓ %s: OK\n", name)
		return true
	}

	reachable := check("Storage reachable", ctx.Store.Load())

	if _, ok := ctx.Store.(*storage.SQLiteStore); ok {
		if reachable {
			check("Schema version", checkSchemaVersion(ctx))
		} else {
			fmt.Fprintln(out, "⊘ Schema version: SKIPPED (storage not reachable)")
		}
	}

	if reachable {
		snap, present, err := readSlot(ctx)
		if check("Habit data readable", err) {
			if !present {
				fmt.Fprintln(out, "   Note: no habit data saved yet; sample habits are created on first use")
			}
			check("Data validation", validation.New().ValidateHabits(snap.Habits).Err())
		}
	} else {
		fmt.Fprintln(out, "⊘ Data validation: SKIPPED (storage not reachable)")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Fprintln(out, "⚠ Backups present: WARNING")
		fmt.Fprintf(out, "   %v\n", err)
	} else {
		fmt.Fprintln(out, "✓ Backups present: OK")
	}

	check("Clock/timezone", checkClockTimezone(ctx))

	if ctx.Store.GetConfigPath() != storage.MemoryPath {
		if pid, ok := lock.Owner(lock.PathFor(ctx.Store.GetConfigPath())); ok {
			fmt.Fprintf(out, "⚠ Session lock: held by pid %d\n", pid)
		} else {
			fmt.Fprintln(out, "✓ Session lock: free")
		}
	}

	if path := logger.Path(); path != "" {
		fmt.Fprintf(out, "   Logs: %s\n", path)
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

// readSlot decodes the persisted slot without seeding an absent one
func readSlot(ctx *Context) (models.Snapshot, bool, error) {
	value, ok, err := ctx.Store.Get(constants.SlotKey)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	if !ok {
		return models.Snapshot{Habits: []models.Habit{}}, false, nil
	}
	snap, err := store.DecodeSnapshot([]byte(value))
	if err != nil {
		return models.Snapshot{}, true, fmt.Errorf("saved habit data is corrupt: %w", err)
	}
	return snap, true, nil
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore := ctx.Store.(*storage.SQLiteStore)

	current, latest, err := sqliteStore.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitrack export'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Clock.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	fmt.Fprintf(ctx.Out, "   Note: today is %s in %s\n", now.Format(constants.DateFormat), now.Location())
	return nil
}

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	snap, _, err := readSlot(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, "Validating habits...")
	result := validation.New().ValidateHabits(snap.Habits)

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, result.FormatReport())
	return nil
}
