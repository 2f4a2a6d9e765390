// internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the settings for the watch daemon and web server. The fix
// and inspect commands don't need any of this.
type Config struct {
	DataDir       string
	DBPath        string
	InboxDir      string
	OutboxDir     string
	WatchSchedule string
	ListenAddr    string
}

// Load reads a .env file if present, then environment variables, falling
// back to defaults under ./data.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dataDir := getenv("DATA_DIR", "./data")

	return &Config{
		DataDir:       dataDir,
		DBPath:        getenv("DB_PATH", filepath.Join(dataDir, "tcxclean.db")),
		InboxDir:      getenv("INBOX_DIR", filepath.Join(dataDir, "inbox")),
		OutboxDir:     getenv("OUTBOX_DIR", filepath.Join(dataDir, "outbox")),
		WatchSchedule: getenv("WATCH_SCHEDULE", "@every 1m"),
		ListenAddr:    getenv("LISTEN_ADDR", ":8888"),
	}
}

// EnsureDirs creates the data, inbox, and outbox directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.InboxDir, c.OutboxDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
