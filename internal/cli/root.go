package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/clock"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/service"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/store"
)

// ErrNotConfirmed is returned when a destructive command cannot ask for
// confirmation and --yes was not given.
var ErrNotConfirmed = errors.New("refusing to continue without confirmation; pass --yes")

type Context struct {
	Store      storage.Provider
	Location   *time.Location
	Window     int
	Clock      clock.Clock
	Out        io.Writer
	In         io.Reader
	IsTerminal func() bool

	svc *service.Service
}

// Service loads the slot storage and the habit collection on first use.
func (ctx *Context) Service() (*service.Service, error) {
	if ctx.svc != nil {
		return ctx.svc, nil
	}
	if err := ctx.Store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load storage: %w", err)
	}
	s := store.New(ctx.Store, ctx.Clock, nil)
	if err := s.Load(); err != nil {
		return nil, err
	}
	ctx.svc = service.New(s, ctx.Clock)
	return ctx.svc, nil
}

func (ctx *Context) Backups() *backup.Manager {
	return backup.NewManager(ctx.Store.GetConfigPath(), ctx.Location)
}

// Confirm asks a [y/N] question. yes skips the prompt; a non-interactive
// input without yes is refused.
func (ctx *Context) Confirm(prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if ctx.IsTerminal == nil || !ctx.IsTerminal() {
		return false, ErrNotConfirmed
	}

	fmt.Fprintf(ctx.Out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(ctx.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (ctx *Context) Close() error {
	return ctx.Store.Close()
}

// resolveHabit accepts an id, a unique id prefix, or a case-insensitive
// name that matches exactly one habit.
func resolveHabit(svc *service.Service, ref string) (models.Habit, error) {
	if h, ok := svc.Find(ref); ok {
		return h, nil
	}

	ref = strings.TrimSpace(ref)
	var matches []models.Habit
	for _, h := range svc.Habits() {
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	if len(matches) == 0 && ref != "" {
		for _, h := range svc.Habits() {
			if strings.HasPrefix(h.ID, ref) {
				matches = append(matches, h)
			}
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", apperrors.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%q matches %d habits; use the id", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
