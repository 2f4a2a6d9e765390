// internal/parser/parser.go
package parser

import (
	"fmt"
	"os"
	"time"
)

// Metrics summarizes one activity file for the inspect command and the
// run catalog.
type Metrics struct {
	Sport        string
	StartTime    time.Time
	Duration     time.Duration
	Distance     float64 // meters
	AvgHeartRate int
	MaxHeartRate int
	AvgPower     int
	Calories     int
	Trackpoints  int
}

type Parser interface {
	Parse(data []byte) (*Metrics, error)
}

// ForData picks a parser by sniffing the content.
func ForData(data []byte) (Parser, error) {
	switch DetectFromData(data) {
	case FileTypeTCX:
		return &TCXParser{}, nil
	case FileTypeGPX:
		return &GPXParser{}, nil
	case FileTypeFIT:
		return &FITParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported or unrecognized file type")
	}
}

// ParseFile reads an activity file and extracts its summary metrics.
func ParseFile(path string) (*Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ForData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.Parse(data)
}
