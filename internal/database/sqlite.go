// internal/database/sqlite.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const timeFormat = "2006-01-02 15:04:05"

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		return nil, err
	}
	return sqlite, nil
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_path TEXT UNIQUE NOT NULL,
		output_path TEXT NOT NULL,
		sport TEXT,
		start_time DATETIME,
		duration INTEGER,
		distance REAL,
		max_heart_rate INTEGER,
		avg_heart_rate INTEGER,
		avg_power INTEGER,
		calories INTEGER,
		trackpoints INTEGER,
		file_size INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source_path ON runs(source_path);
	CREATE INDEX IF NOT EXISTS idx_runs_start_time ON runs(start_time);
	CREATE INDEX IF NOT EXISTS idx_runs_sport ON runs(sport);
	`

	_, err := s.db.Exec(schema)
	return err
}

const runColumns = `id, source_path, output_path, sport, start_time, duration,
	distance, max_heart_rate, avg_heart_rate, avg_power, calories,
	trackpoints, file_size, created_at`

func (s *SQLiteDB) scanRun(scan func(dest ...interface{}) error) (*Run, error) {
	var r Run

	// The columns are declared DATETIME, so the driver hands back
	// time.Time values directly.
	err := scan(
		&r.ID, &r.SourcePath, &r.OutputPath, &r.Sport, &r.StartTime,
		&r.Duration, &r.Distance, &r.MaxHeartRate, &r.AvgHeartRate,
		&r.AvgPower, &r.Calories, &r.Trackpoints, &r.FileSize, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLiteDB) CreateRun(run *Run) error {
	query := `
	INSERT INTO runs (
		source_path, output_path, sport, start_time, duration, distance,
		max_heart_rate, avg_heart_rate, avg_power, calories, trackpoints, file_size
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.Exec(query,
		run.SourcePath, run.OutputPath, run.Sport,
		run.StartTime.Format(timeFormat), run.Duration, run.Distance,
		run.MaxHeartRate, run.AvgHeartRate, run.AvgPower,
		run.Calories, run.Trackpoints, run.FileSize,
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = int(id)
	}
	return nil
}

func (s *SQLiteDB) GetRun(id int) (*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	row := s.db.QueryRow(query, id)

	run, err := s.scanRun(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found")
		}
		return nil, err
	}
	return run, nil
}

func (s *SQLiteDB) RunExists(sourcePath string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE source_path = ?`, sourcePath).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteDB) ListRuns(limit, offset int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := s.scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *SQLiteDB) FilterRuns(filters RunFilters) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`

	var args []interface{}
	var conditions []string

	if filters.Sport != "" {
		conditions = append(conditions, "sport = ?")
		args = append(args, filters.Sport)
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filters.DateFrom.Format(timeFormat))
	}
	if filters.DateTo != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, filters.DateTo.Format(timeFormat))
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	orderBy := "start_time"
	switch filters.SortBy {
	case "duration", "distance", "created_at":
		orderBy = filters.SortBy
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderBy, order)

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
		if filters.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filters.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := s.scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(trackpoints), 0), COALESCE(SUM(duration), 0)
		FROM runs`).Scan(&stats.Runs, &stats.Trackpoints, &stats.Duration)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
