package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// MemoryPath selects the in-memory provider
const MemoryPath = ":memory:"

// Provider is a durable key-value slot store. Values are opaque strings;
// Put overwrites unconditionally and Remove deletes the key entirely.
type Provider interface {
	// Lifecycle
	Load() error
	Close() error

	// Slots
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Remove(key string) error

	// Utils
	GetConfigPath() string
}

// New picks a provider from the config path: ":memory:" for an in-memory
// store, a ".json" suffix for the JSON file store, SQLite otherwise.
func New(configPath string) Provider {
	switch {
	case configPath == MemoryPath:
		return NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(configPath), ".json"):
		return NewJSONStore(configPath)
	default:
		return NewSQLiteStore(configPath)
	}
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
