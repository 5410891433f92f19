package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/clock"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/dates"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
)

type CLI struct {
	Version  kong.VersionFlag `help:"Show version."`
	Config   string           `help:"Storage path (.json for a JSON file, ':memory:' for a throwaway session, otherwise SQLite)." default:"${config_path}" env:"HABITRACK_CONFIG"`
	Timezone string           `help:"IANA timezone for 'today', or 'Local'." default:"Local" env:"HABITRACK_TIMEZONE"`
	Window   int              `help:"Days shown in the grid and used for progress (7 or 30)." default:"7" env:"HABITRACK_WINDOW"`
	Debug    bool             `help:"Log debug output to stderr."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive grid." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Add a habit."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a habit."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a habit."`
	Toggle   cli.ToggleCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	Reset    cli.ResetCmd    `cmd:"" help:"Clear every completion of a habit."`
	ResetAll cli.ResetAllCmd `cmd:"" name:"reset-all" help:"Remove all habits and saved data."`
	List     cli.ListCmd     `cmd:"" help:"List habits with streaks and progress."`
	Show     cli.ShowCmd     `cmd:"" help:"Print the completion grid."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show summary statistics."`
	Export   cli.ExportCmd   `cmd:"" help:"Export habits to a backup file."`
	Import   cli.ImportCmd   `cmd:"" help:"Replace habits with an exported file."`
	Backup   struct {
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore habits from a backup."`
	} `cmd:"" help:"Manage backups."`
	Doctor      cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	ValidateCmd cli.ValidateCmd `cmd:"" name:"validate" help:"Validate saved habits."`
	DebugCmd    cli.DebugCmd    `cmd:"" name:"debug" help:"Debugging commands." hidden:""`
}

func (c *CLI) Validate() error {
	if !dates.ValidWindow(c.Window) {
		return fmt.Errorf("--window must be %d or %d, got %d", constants.WeekWindow, constants.MonthWindow, c.Window)
	}
	return nil
}

func options(yamlPath string) []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Daily habit tracker with streaks and progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(config.YAML, yamlPath),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	}
}

// newContext resolves the parsed flags into the command context
func newContext(root *CLI, out io.Writer, in *os.File) (*cli.Context, error) {
	configPath, err := storage.ExpandPath(root.Config)
	if err != nil {
		return nil, err
	}
	loc, err := dates.LoadLocation(root.Timezone)
	if err != nil {
		return nil, err
	}

	return &cli.Context{
		Store:    storage.New(configPath),
		Location: loc,
		Window:   root.Window,
		Clock:    clock.System{Location: loc},
		Out:      out,
		In:       in,
		IsTerminal: func() bool {
			return term.IsTerminal(int(in.Fd()))
		},
	}, nil
}

func main() {
	var root CLI
	ctx := kong.Parse(&root, options(constants.DefaultYAMLPath)...)

	appCtx, err := newContext(&root, os.Stdout, os.Stdin)
	if err != nil {
		apperrors.Fatal(err)
	}

	logDir := filepath.Dir(appCtx.Store.GetConfigPath())
	if appCtx.Store.GetConfigPath() == storage.MemoryPath {
		logDir = os.TempDir()
	}
	if err := logger.Init(logger.Config{Debug: root.Debug, ConfigDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()
	defer appCtx.Close()

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Close()
		apperrors.Fatal(err)
	}
}
