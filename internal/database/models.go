// internal/database/models.go
package database

import "time"

// Run is one recorded cleanup: which file came in, where the cleaned copy
// went, and the summary metrics parsed from the result.
type Run struct {
	ID           int       `json:"id"`
	SourcePath   string    `json:"source_path"`
	OutputPath   string    `json:"output_path"`
	Sport        string    `json:"sport"`
	StartTime    time.Time `json:"start_time"`
	Duration     int       `json:"duration"` // seconds
	Distance     float64   `json:"distance"` // meters
	MaxHeartRate int       `json:"max_heart_rate"`
	AvgHeartRate int       `json:"avg_heart_rate"`
	AvgPower     int       `json:"avg_power"`
	Calories     int       `json:"calories"`
	Trackpoints  int       `json:"trackpoints"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
}

type Stats struct {
	Runs        int `json:"runs"`
	Trackpoints int `json:"trackpoints"`
	Duration    int `json:"duration"` // total seconds cleaned
}

// Database is the catalog interface used by the watch daemon and web UI.
type Database interface {
	CreateRun(run *Run) error
	GetRun(id int) (*Run, error)
	RunExists(sourcePath string) (bool, error)
	ListRuns(limit, offset int) ([]Run, error)
	FilterRuns(filters RunFilters) ([]Run, error)
	GetStats() (*Stats, error)
	Close() error
}

type RunFilters struct {
	Sport     string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}
