package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/validation"
)

// HabitFormModel backs the add/edit habit form
type HabitFormModel struct {
	Name        string
	Color       string
	Description string
}

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(constants.Palette))
	for i, c := range constants.Palette {
		opts[i] = huh.NewOption(strings.ToUpper(c[:1])+c[1:], c)
	}
	return opts
}

// NewHabitForm creates the form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel, title string) *huh.Form {
	if fm.Color == "" {
		fm.Color = constants.DefaultColor
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					_, err := validation.NormalizeName(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions()...).
				Value(&fm.Color),
			huh.NewInput().
				Title("Description").
				Description("Optional").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}
