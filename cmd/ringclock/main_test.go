package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStartLogsFailure(t *testing.T) {
	dir := t.TempDir()

	configPath := filepath.Join(dir, "ringclock.toml")
	if err := os.WriteFile(configPath, []byte("ring_size = \"many\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldConfig, oldLogFile := config, logFile
	t.Cleanup(func() { config, logFile = oldConfig, oldLogFile })

	config = configPath
	logFile = filepath.Join(dir, "ringclock.log")

	if code := start(); code != 1 {
		t.Fatalf("start = %d, want 1", code)
	}

	logs, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logs), "ringclock stopped") ||
		!strings.Contains(string(logs), "failed to parse config file") {
		t.Errorf("log file does not record the failure:\n%s", logs)
	}
}
