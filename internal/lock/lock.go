// Package lock keeps a second interactive session from writing the same
// slot storage. The lockfile holds "pid|executable" of its owner.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live session owns the lock
var ErrLocked = errors.New("another habitrack session is running")

// Lock is a held session lock
type Lock struct {
	path string
	pid  int
}

// PathFor returns the lockfile path for a slot storage path
func PathFor(configPath string) string {
	return configPath + constants.SessionLockfileSuffix
}

// Owner reads the lockfile and returns the pid of a live owner. ok is
// false when the file is missing, malformed, or its process is gone.
func Owner(path string) (pid int, ok bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, false
	}
	pid, err = strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, false
	}
	// pids get reused; only trust a process that is still habitrack
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, false
	}
	return pid, true
}

// Acquire takes the lock at path. A stale lockfile is replaced.
func Acquire(path string) (*Lock, error) {
	self := getpidFunc()
	if pid, ok := Owner(path); ok && pid != self {
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	exe := constants.AppName
	if p, err := findProcessFunc(self); err == nil && p != nil {
		exe = p.Executable()
	}
	content := fmt.Sprintf("%d|%s", self, exe)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	logger.Debug("Acquired session lock", "path", path, "pid", self)
	return &Lock{path: path, pid: self}, nil
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !strings.HasPrefix(strings.TrimSpace(string(content)), strconv.Itoa(l.pid)+"|") {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	logger.Debug("Released session lock", "path", l.path)
	return nil
}
