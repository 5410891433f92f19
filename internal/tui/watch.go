package tui

import (
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/habitrack/internal/logger"
)

const watchDebounce = 100 * time.Millisecond

// slotChangedMsg reports that the slot storage file changed on disk
type slotChangedMsg struct{}

// Watcher turns filesystem events on the slot storage into messages for
// the program loop. It never touches the collection itself.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

// NewWatcher watches the directory holding path, so atomic renames over
// the file are seen.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    filepath.Clean(path),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// relevant matches the slot file and SQLite's side files
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	return name == w.path || strings.HasPrefix(name, w.path+"-")
}

func (w *Watcher) run() {
	var timer *time.Timer
	notify := func() {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, notify)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("fsnotify error", "error", err)
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Wait returns a command that blocks until the next coalesced change
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changes:
			return slotChangedMsg{}
		case <-w.done:
			return nil
		}
	}
}

func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}
