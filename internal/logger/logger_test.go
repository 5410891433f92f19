package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func reset(t *testing.T) {
	t.Cleanup(func() {
		Close()
		Logger, file = nil, nil
	})
}

func TestInitWritesToFile(t *testing.T) {
	reset(t)
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(configDir, "logs", "habitrack.log")
	if Path() != want {
		t.Errorf("Path() = %s, want %s", Path(), want)
	}

	Debug("hidden below info")
	Info("Seeded sample habits", "count", 3)
	Warn("Test warning message", "key", "value")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Log file was not created: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Seeded sample habits") || !strings.Contains(content, "count=3") {
		t.Errorf("info message missing from log:\n%s", content)
	}
	if strings.Contains(content, "hidden below info") {
		t.Error("debug messages should not be written without debug mode")
	}
}

func TestDebugModeMirrorsToConsole(t *testing.T) {
	reset(t)
	var console bytes.Buffer

	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Console: &console}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	Debug("Toggled completion", "date", "2026-10-14")

	if !strings.Contains(console.String(), "Toggled completion") {
		t.Errorf("console output = %q", console.String())
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// Must not panic when the logger was never initialized.
	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
}
