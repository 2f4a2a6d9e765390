// internal/parser/tcx.go
package parser

import (
	"fmt"
	"time"

	"github.com/sstent/tcxclean/internal/tcx"
)

// TCXParser extracts summary metrics from a TCX document. It reuses the
// cleaner's document model, so it reads both raw Strava exports and cleaned
// output.
type TCXParser struct{}

func (p *TCXParser) Parse(data []byte) (*Metrics, error) {
	doc, err := tcx.Parse(data)
	if err != nil {
		return nil, err
	}

	if len(doc.Activities.Activity) == 0 || len(doc.Activities.Activity[0].Laps) == 0 {
		return nil, fmt.Errorf("no activity data found")
	}

	activity := doc.Activities.Activity[0]
	metrics := &Metrics{
		Sport: mapSport(activity.Sport),
	}

	if start, err := time.Parse(time.RFC3339, activity.Laps[0].StartTime); err == nil {
		metrics.StartTime = start
	}

	var totalTime, totalDistance float64
	var hrValues, wattValues []int

	for _, lap := range activity.Laps {
		totalTime += lap.TotalTimeSeconds
		totalDistance += lap.DistanceMeters
		metrics.Calories += int(lap.Calories)

		if lap.MaximumHeartRateBpm != nil && int(lap.MaximumHeartRateBpm.Value) > metrics.MaxHeartRate {
			metrics.MaxHeartRate = int(lap.MaximumHeartRateBpm.Value)
		}

		for _, track := range lap.Tracks {
			for _, tp := range track.Trackpoints {
				metrics.Trackpoints++
				if tp.HeartRateBpm != nil {
					hr := int(tp.HeartRateBpm.Value)
					hrValues = append(hrValues, hr)
					if hr > metrics.MaxHeartRate {
						metrics.MaxHeartRate = hr
					}
				}
				if tp.Extensions != nil {
					for _, ext := range tp.Extensions.TPX {
						if ext.Watts != nil {
							wattValues = append(wattValues, int(*ext.Watts))
						}
					}
				}
			}
		}
	}

	metrics.Duration = time.Duration(totalTime) * time.Second
	metrics.Distance = totalDistance
	metrics.AvgHeartRate = average(hrValues)
	metrics.AvgPower = average(wattValues)

	return metrics, nil
}

func average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

func mapSport(sport string) string {
	switch sport {
	case "Running":
		return "running"
	case "Biking":
		return "cycling"
	case "Swimming":
		return "swimming"
	default:
		return "other"
	}
}
