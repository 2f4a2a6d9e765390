// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_DIR", "DB_PATH", "INBOX_DIR", "OUTBOX_DIR", "WATCH_SCHEDULE", "LISTEN_ADDR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DataDir != "./data" {
		t.Errorf("Expected data dir './data', got %q", cfg.DataDir)
	}
	if want := filepath.Join("./data", "tcxclean.db"); cfg.DBPath != want {
		t.Errorf("Expected db path %q, got %q", want, cfg.DBPath)
	}
	if cfg.WatchSchedule != "@every 1m" {
		t.Errorf("Expected schedule '@every 1m', got %q", cfg.WatchSchedule)
	}
	if cfg.ListenAddr != ":8888" {
		t.Errorf("Expected listen addr ':8888', got %q", cfg.ListenAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/tcx")
	t.Setenv("WATCH_SCHEDULE", "@hourly")
	t.Setenv("DB_PATH", "")
	os.Unsetenv("DB_PATH")

	cfg := Load()

	if cfg.DataDir != "/srv/tcx" {
		t.Errorf("Expected data dir '/srv/tcx', got %q", cfg.DataDir)
	}
	if want := filepath.Join("/srv/tcx", "tcxclean.db"); cfg.DBPath != want {
		t.Errorf("Expected db path under DATA_DIR, got %q", cfg.DBPath)
	}
	if cfg.WatchSchedule != "@hourly" {
		t.Errorf("Expected schedule '@hourly', got %q", cfg.WatchSchedule)
	}
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DataDir:   filepath.Join(dir, "data"),
		InboxDir:  filepath.Join(dir, "data", "inbox"),
		OutboxDir: filepath.Join(dir, "data", "outbox"),
	}

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, d := range []string{cfg.DataDir, cfg.InboxDir, cfg.OutboxDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s to exist", d)
		}
	}
}
