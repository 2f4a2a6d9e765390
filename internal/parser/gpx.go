// internal/parser/gpx.go
package parser

import (
	"encoding/xml"
	"fmt"
	"math"
	"time"
)

// GPXParser extracts summary metrics from a GPX track.
type GPXParser struct{}

type gpxFile struct {
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat       float64 `xml:"lat,attr"`
	Lon       float64 `xml:"lon,attr"`
	Elevation float64 `xml:"ele"`
	Time      string  `xml:"time"`
	HR        int     `xml:"extensions>TrackPointExtension>hr"`
}

func (p *GPXParser) Parse(data []byte) (*Metrics, error) {
	var doc gpxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var points []gpxPoint
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			points = append(points, segment.Points...)
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no track points found")
	}

	// GPX carries no sport designation
	metrics := &Metrics{
		Sport:       "other",
		Trackpoints: len(points),
	}

	var startTime, endTime time.Time
	var totalDistance float64
	var hrValues []int

	for i, point := range points {
		if point.Time != "" {
			if t, err := time.Parse(time.RFC3339, point.Time); err == nil {
				if startTime.IsZero() {
					startTime = t
					metrics.StartTime = t
				}
				endTime = t
			}
		}

		if i > 0 {
			prev := points[i-1]
			totalDistance += haversine(prev.Lat, prev.Lon, point.Lat, point.Lon)
		}

		if point.HR > 0 {
			hrValues = append(hrValues, point.HR)
		}
	}

	if !startTime.IsZero() && !endTime.IsZero() {
		metrics.Duration = endTime.Sub(startTime)
	}
	metrics.Distance = totalDistance

	metrics.AvgHeartRate = average(hrValues)
	for _, hr := range hrValues {
		if hr > metrics.MaxHeartRate {
			metrics.MaxHeartRate = hr
		}
	}

	return metrics, nil
}

// haversine returns the distance in meters between two coordinates.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
