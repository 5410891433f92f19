package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/constants"
)

type ExportCmd struct {
	Out string `help:"Directory to write the export to (defaults to the backup directory)." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	var path string
	if c.Out != "" {
		path, err = backup.NewManagerWithDir(c.Out, ctx.Location).Export(svc.Export())
	} else {
		path, err = ctx.Backups().CreateBackup(svc.Export())
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(ctx.Out, "✓ Exported %d habits to %s\n", len(svc.Habits()), path)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Exported file to import." type:"path"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	return restore(ctx, c.File, c.Yes)
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", b.Date.Format(constants.DateFormat), filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	// Bare filenames are looked up in the backup directory first
	path := c.BackupFile
	if !filepath.IsAbs(path) {
		candidate := filepath.Join(ctx.Backups().GetBackupDir(), path)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	return restore(ctx, path, c.Yes)
}

// restore replaces the collection with the artifact at path after
// validating it. The current data is exported first.
func restore(ctx *Context, path string, yes bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", path)
	}
	// Validate before asking so a bad file never reaches the prompt
	snap, err := backup.LoadBackup(path)
	if err != nil {
		return err
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, "⚠️  WARNING: This will replace your current habits with the imported data.")
	fmt.Fprintln(ctx.Out, "A backup of your current data will be created before importing.")
	fmt.Fprintf(ctx.Out, "\nImport from: %s (%d habits)\n", filepath.Base(path), len(snap.Habits))
	ok, err := ctx.Confirm("Continue?", yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Import cancelled.")
		return nil
	}

	safety, err := ctx.Backups().RestoreBackup(path, svc)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(ctx.Out, "✓ Imported %d habits\n", len(svc.Habits()))
	fmt.Fprintf(ctx.Out, "Previous data saved to: %s\n", filepath.Base(safety))
	return nil
}
