package cli

import (
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
)

// PerformAutomaticBackup exports the collection once per day. Failures
// are logged and never block startup.
func (ctx *Context) PerformAutomaticBackup() {
	if ctx.Store.GetConfigPath() == storage.MemoryPath || ctx.svc == nil {
		return
	}
	// nothing worth keeping, or data that would be saved over a good copy
	if ctx.svc.Corrupt() || len(ctx.svc.Habits()) == 0 {
		return
	}

	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		logger.Warn("Automatic backup skipped", "error", err)
		return
	}
	today := ctx.svc.Today()
	for _, b := range backups {
		if b.Date.Format(constants.DateFormat) == today {
			return
		}
	}

	path, err := mgr.CreateBackup(ctx.svc.Export())
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Info("Automatic backup created", "path", path)
}
