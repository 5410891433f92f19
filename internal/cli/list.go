package cli

import (
	"fmt"

	"github.com/julianstephens/habitrack/internal/tui/components/grid"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	views := svc.Stats(ctx.Window)
	if len(views) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found")
		return nil
	}

	today := svc.Today()
	fmt.Fprintf(ctx.Out, "Habits (last %d days):\n", ctx.Window)
	for _, v := range views {
		mark := "○"
		if v.Habit.IsCompleted(today) {
			mark = "✓"
		}
		fmt.Fprintf(ctx.Out, "  %s %-8s %s [%s] streak %d (best %d), %d%%\n",
			mark, shortID(v.Habit.ID), v.Habit.Name, v.Habit.Color,
			v.Streak.Current, v.Streak.Longest, v.Progress)
		if v.Habit.Description != "" {
			fmt.Fprintf(ctx.Out, "      %s\n", v.Habit.Description)
		}
	}
	return nil
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if len(svc.Habits()) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found")
		return nil
	}

	g := grid.NewStatic()
	g.SetData(svc.Stats(ctx.Window), svc.Window(ctx.Window), svc.Today())
	fmt.Fprintln(ctx.Out, g.View())
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	summary := svc.Summary(ctx.Window)
	fmt.Fprintf(ctx.Out, "Summary (last %d days):\n", ctx.Window)
	fmt.Fprintf(ctx.Out, "  Total habits:    %d\n", summary.TotalHabits)
	fmt.Fprintf(ctx.Out, "  Completed today: %d\n", summary.CompletedToday)
	fmt.Fprintf(ctx.Out, "  Active streaks:  %d\n", summary.ActiveStreaks)
	fmt.Fprintf(ctx.Out, "  Completion rate: %d%%\n", summary.CompletionRate)
	return nil
}
