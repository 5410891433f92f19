package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitrack/internal/store"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" name:"db-path" help:"Show storage path."`
	Dump   *DebugDumpCmd   `cmd:"" name:"dump" help:"Dump habit data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"backup": ctx.Backups().GetBackupDir(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Fprintln(ctx.Out, string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Habit string `arg:"" optional:"" help:"Only dump this habit (id or name)."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	snap, present, err := readSlot(ctx)
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("no habit data saved")
	}

	var jsonBytes []byte
	if cmd.Habit == "" {
		jsonBytes, err = store.EncodeExport(snap)
	} else {
		svc, serr := ctx.Service()
		if serr != nil {
			return serr
		}
		habit, rerr := resolveHabit(svc, cmd.Habit)
		if rerr != nil {
			return rerr
		}
		jsonBytes, err = json.MarshalIndent(habit, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(ctx.Out, string(jsonBytes))
	return nil
}
