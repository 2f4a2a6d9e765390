// internal/watch/watch_test.go
package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sstent/tcxclean/internal/database"
)

const stravaExport = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2" xmlns:ns3="http://www.garmin.com/xmlschemas/ActivityExtension/v2">
 <Activities>
  <Activity Sport="Biking">
   <Id>2024-03-02T13:00:00Z</Id>
   <Lap StartTime="2024-03-02T13:00:00Z">
    <TotalTimeSeconds>600</TotalTimeSeconds>
    <DistanceMeters>5000</DistanceMeters>
    <Calories>120.4</Calories>
    <Track>
     <Trackpoint>
      <Time>2024-03-02T13:00:01Z</Time>
      <HeartRateBpm><Value>150.6</Value></HeartRateBpm>
      <Cadence>89.4</Cadence>
      <Extensions>
       <ns3:TPX>
        <ns3:Watts>201.4</ns3:Watts>
        <ns3:Resistance>42</ns3:Resistance>
       </ns3:TPX>
      </Extensions>
     </Trackpoint>
    </Track>
   </Lap>
  </Activity>
 </Activities>
</TrainingCenterDatabase>`

func testService(t *testing.T) (*Service, *database.SQLiteDB, string, string) {
	t.Helper()
	dir := t.TempDir()
	inbox := filepath.Join(dir, "inbox")
	outbox := filepath.Join(dir, "outbox")
	for _, d := range []string{inbox, outbox} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	db, err := database.NewSQLiteDB(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewService(db, inbox, outbox), db, inbox, outbox
}

func TestScanCleansNewFiles(t *testing.T) {
	t.Parallel()
	service, db, inbox, outbox := testService(t)

	if err := os.WriteFile(filepath.Join(inbox, "ride.tcx"), []byte(stravaExport), 0644); err != nil {
		t.Fatal(err)
	}

	if err := service.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	cleaned, err := os.ReadFile(filepath.Join(outbox, "ride.tcx"))
	if err != nil {
		t.Fatalf("cleaned file missing from outbox: %v", err)
	}
	if len(cleaned) == 0 {
		t.Fatal("cleaned file is empty")
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 1 {
		t.Errorf("Expected 1 cataloged run, got %d", stats.Runs)
	}

	runs, err := db.ListRuns(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].Sport != "cycling" {
		t.Errorf("Expected sport 'cycling', got %q", runs[0].Sport)
	}
	if runs[0].Trackpoints != 1 {
		t.Errorf("Expected 1 trackpoint, got %d", runs[0].Trackpoints)
	}
}

func TestScanSkipsProcessedFiles(t *testing.T) {
	t.Parallel()
	service, db, inbox, _ := testService(t)

	if err := os.WriteFile(filepath.Join(inbox, "ride.tcx"), []byte(stravaExport), 0644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := service.Scan(context.Background()); err != nil {
			t.Fatalf("Scan %d failed: %v", i+1, err)
		}
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 1 {
		t.Errorf("Expected 1 cataloged run after rescan, got %d", stats.Runs)
	}
}

func TestScanIgnoresOtherFiles(t *testing.T) {
	t.Parallel()
	service, db, inbox, outbox := testService(t)

	if err := os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := service.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 0 {
		t.Errorf("Expected no cataloged runs, got %d", stats.Runs)
	}

	entries, err := os.ReadDir(outbox)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty outbox, found %d entries", len(entries))
	}
}

func TestScanContinuesPastBrokenFiles(t *testing.T) {
	t.Parallel()
	service, db, inbox, _ := testService(t)

	if err := os.WriteFile(filepath.Join(inbox, "broken.tcx"), []byte("not xml"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inbox, "ride.tcx"), []byte(stravaExport), 0644); err != nil {
		t.Fatal(err)
	}

	if err := service.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 1 {
		t.Errorf("Expected the valid file to be processed despite the broken one, got %d runs", stats.Runs)
	}
}

func TestScanCancelled(t *testing.T) {
	t.Parallel()
	service, _, inbox, _ := testService(t)

	if err := os.WriteFile(filepath.Join(inbox, "ride.tcx"), []byte(stravaExport), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := service.Scan(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
