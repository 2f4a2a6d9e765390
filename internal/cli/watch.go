// internal/cli/watch.go
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/sstent/tcxclean/internal/config"
	"github.com/sstent/tcxclean/internal/database"
	"github.com/sstent/tcxclean/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an inbox directory and clean new TCX files on a schedule",
	Long: `Scan INBOX_DIR on the WATCH_SCHEDULE cron schedule (default every
minute), clean each new .tcx file into OUTBOX_DIR, and record the run in the
catalog. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.EnsureDirs(); err != nil {
			return fmt.Errorf("failed to create data directories: %w", err)
		}

		db, err := database.NewSQLiteDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer db.Close()

		service := watch.NewService(db, cfg.InboxDir, cfg.OutboxDir)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// First pass right away so a backlog is picked up before the
		// schedule kicks in.
		if err := service.Scan(ctx); err != nil {
			log.Printf("Initial scan failed: %v", err)
		}

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.WatchSchedule, func() {
			if err := service.Scan(ctx); err != nil {
				log.Printf("Scan failed: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("invalid WATCH_SCHEDULE %q: %w", cfg.WatchSchedule, err)
		}
		scheduler.Start()
		log.Printf("Watching %s on schedule %q", cfg.InboxDir, cfg.WatchSchedule)

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		<-shutdown

		log.Println("Shutting down...")
		cancel()
		<-scheduler.Stop().Done()
		log.Println("Shutdown complete")
		return nil
	},
}
