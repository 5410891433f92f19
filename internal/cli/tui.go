package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrack/internal/lock"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()
	fileBacked := path != storage.MemoryPath

	if fileBacked {
		l, err := lock.Acquire(lock.PathFor(path))
		if err != nil {
			if errors.Is(err, lock.ErrLocked) {
				return fmt.Errorf("%w; close it before starting another", err)
			}
			return err
		}
		defer l.Release()
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	opts := tui.Options{Window: ctx.Window, Backups: ctx.Backups()}
	if fileBacked {
		w, err := tui.NewWatcher(path)
		if err != nil {
			logger.Warn("Watching storage for external changes is disabled", "error", err)
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	p := tea.NewProgram(tui.NewModel(svc, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
