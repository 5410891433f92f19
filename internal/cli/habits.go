package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitrack/internal/dates"
	"github.com/julianstephens/habitrack/internal/validation"
)

type AddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Color       string `short:"c" help:"Color label (primary|success|info|warning|danger|secondary)." default:"primary"`
	Description string `short:"d" help:"Optional description."`
}

func (c *AddCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	habit, err := svc.Create(c.Name, c.Color, c.Description)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Added habit %q (%s)\n", habit.Name, habit.ID)
	return nil
}

type EditCmd struct {
	Habit       string  `arg:"" help:"Habit id or name."`
	Name        *string `help:"New name."`
	Color       *string `help:"New color label."`
	Description *string `help:"New description (empty clears it)."`
}

func (c *EditCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	name, color, description := habit.Name, habit.Color, habit.Description
	if c.Name != nil {
		name = *c.Name
	}
	if c.Color != nil {
		color = *c.Color
	}
	if c.Description != nil {
		description = *c.Description
	}

	if err := svc.Edit(habit.ID, name, color, description); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Updated habit %s\n", shortID(habit.ID))
	return nil
}

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Delete habit %q?", habit.Name), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Delete cancelled.")
		return nil
	}

	if _, err := svc.Delete(habit.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Deleted habit %q\n", habit.Name)
	return nil
}

type ToggleCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `arg:"" optional:"" help:"Date to toggle (YYYY-MM-DD or 'today')."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	day := strings.TrimSpace(c.Date)
	if day == "" || day == "today" {
		day = svc.Today()
	} else if err := validation.ValidateDateKey(day); err != nil {
		return err
	}

	completed, err := svc.ToggleCompletion(habit.ID, day)
	if err != nil {
		return err
	}

	status := "not completed"
	if completed {
		status = "completed"
	}
	when, _ := dates.ParseISODate(day, ctx.Location)
	dd := dates.FormatDisplayDate(when)
	fmt.Fprintf(ctx.Out, "✓ %s %s %d %s: %s\n", habit.Name, dd.Day, dd.Date, dd.Month, status)
	return nil
}

type ResetCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Clear every completion of %q?", habit.Name), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Reset cancelled.")
		return nil
	}

	if _, err := svc.ResetHabit(habit.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Cleared completions of %q\n", habit.Name)
	return nil
}

type ResetAllCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetAllCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, "⚠️  WARNING: This removes every habit and all saved progress.")
	ok, err := ctx.Confirm("Are you sure you want to reset all data?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "Reset cancelled.")
		return nil
	}

	if err := svc.ResetAllData(); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ All data has been reset")
	return nil
}
