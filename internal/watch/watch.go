// internal/watch/watch.go
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sstent/tcxclean/internal/database"
	"github.com/sstent/tcxclean/internal/parser"
	"github.com/sstent/tcxclean/internal/tcx"
)

// Service scans an inbox directory for TCX exports, cleans each new file
// into the outbox, and records the run in the catalog.
type Service struct {
	db     database.Database
	inbox  string
	outbox string
}

func NewService(db database.Database, inboxDir, outboxDir string) *Service {
	return &Service{
		db:     db,
		inbox:  inboxDir,
		outbox: outboxDir,
	}
}

// Scan runs one pass over the inbox. Per-file failures are logged and the
// scan moves on; only listing the inbox itself is fatal.
func (s *Service) Scan(ctx context.Context) error {
	startTime := time.Now()
	log.Printf("Scanning %s", s.inbox)
	defer func() {
		log.Printf("Scan completed in %s", time.Since(startTime))
	}()

	entries, err := os.ReadDir(s.inbox)
	if err != nil {
		return fmt.Errorf("failed to read inbox: %w", err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".tcx") {
			continue
		}

		source := filepath.Join(s.inbox, entry.Name())
		exists, err := s.db.RunExists(source)
		if err != nil {
			return fmt.Errorf("failed to check catalog: %w", err)
		}
		if exists {
			continue
		}

		if err := s.process(source, entry.Name()); err != nil {
			log.Printf("Error processing %s: %v", source, err)
			continue
		}
		log.Printf("Cleaned %s", source)
	}

	return nil
}

func (s *Service) process(source, name string) error {
	output, err := tcx.FixFile(source, filepath.Join(s.outbox, name))
	if err != nil {
		return err
	}

	run := &database.Run{
		SourcePath: source,
		OutputPath: output,
	}

	if info, err := os.Stat(output); err == nil {
		run.FileSize = info.Size()
	}

	// Metrics come from the cleaned copy, which is guaranteed parseable.
	metrics, err := parser.ParseFile(output)
	if err != nil {
		return fmt.Errorf("failed to parse cleaned file: %w", err)
	}
	run.Sport = metrics.Sport
	run.StartTime = metrics.StartTime
	run.Duration = int(metrics.Duration.Seconds())
	run.Distance = metrics.Distance
	run.MaxHeartRate = metrics.MaxHeartRate
	run.AvgHeartRate = metrics.AvgHeartRate
	run.AvgPower = metrics.AvgPower
	run.Calories = metrics.Calories
	run.Trackpoints = metrics.Trackpoints

	if err := s.db.CreateRun(run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
