// internal/parser/fit.go
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/tormoder/fit"
)

// FITParser extracts summary metrics from a FIT activity file.
type FITParser struct{}

func (p *FITParser) Parse(data []byte) (*Metrics, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("no sessions found in FIT file")
	}

	session := activity.Sessions[0]
	metrics := &Metrics{
		Sport:       strings.ToLower(session.Sport.String()),
		StartTime:   session.StartTime,
		Duration:    time.Duration(session.GetTotalTimerTimeScaled() * float64(time.Second)),
		Distance:    session.GetTotalDistanceScaled(),
		Calories:    int(session.TotalCalories),
		Trackpoints: len(activity.Records),
	}

	// 0xFF / 0xFFFF mark unset values in FIT
	if session.AvgHeartRate != 0xFF {
		metrics.AvgHeartRate = int(session.AvgHeartRate)
	}
	if session.MaxHeartRate != 0xFF {
		metrics.MaxHeartRate = int(session.MaxHeartRate)
	}
	if session.AvgPower != 0xFFFF {
		metrics.AvgPower = int(session.AvgPower)
	}

	return metrics, nil
}
