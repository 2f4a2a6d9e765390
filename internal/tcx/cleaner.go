// internal/tcx/cleaner.go
package tcx

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Parse decodes a TCX document. Leading/trailing whitespace around the XML
// declaration is tolerated since Strava exports often carry it. Everything
// outside the modeled schema is dropped by the decoder itself.
func Parse(data []byte) (*TrainingCenterDatabase, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var doc TrainingCenterDatabase
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("not a valid TrainingCenterDatabase document: %w", err)
	}
	return &doc, nil
}

// Normalize restructures extension blocks into the single-TPX / single-LX
// shape Garmin Connect expects. Duplicated blocks are merged with the first
// non-empty value winning per field, so running Normalize on already-clean
// data changes nothing.
func Normalize(doc *TrainingCenterDatabase) {
	doc.XMLName = xml.Name{Space: NamespaceTCX, Local: "TrainingCenterDatabase"}

	for ai := range doc.Activities.Activity {
		activity := &doc.Activities.Activity[ai]
		for li := range activity.Laps {
			lap := &activity.Laps[li]
			lap.Extensions = normalizeLapExtensions(lap.Extensions)

			for ti := range lap.Tracks {
				track := &lap.Tracks[ti]
				for pi := range track.Trackpoints {
					tp := &track.Trackpoints[pi]
					tp.Extensions = normalizeTrackpointExtensions(tp.Extensions)
				}
			}
		}
	}
}

func normalizeLapExtensions(ext *LapExtensions) *LapExtensions {
	if ext == nil {
		return nil
	}
	blocks := append(append([]LX{}, ext.LX...), ext.TPX...)
	merged := mergeLX(blocks)
	if merged.empty() {
		return nil
	}
	return &LapExtensions{LX: []LX{merged}}
}

func normalizeTrackpointExtensions(ext *TrackpointExtensions) *TrackpointExtensions {
	if ext == nil {
		return nil
	}
	merged := mergeTPX(ext.TPX)
	if merged.empty() {
		return nil
	}
	return &TrackpointExtensions{TPX: []TPX{merged}}
}

func mergeTPX(blocks []TPX) TPX {
	var out TPX
	for _, b := range blocks {
		out.Speed = mergeFloat(out.Speed, b.Speed)
		out.RunCadence = mergeRounded(out.RunCadence, b.RunCadence)
		out.Watts = mergeRounded(out.Watts, b.Watts)
		if out.CadenceSensor == "" {
			out.CadenceSensor = b.CadenceSensor
		}
	}
	return out
}

func mergeLX(blocks []LX) LX {
	var out LX
	for _, b := range blocks {
		out.AvgSpeed = mergeFloat(out.AvgSpeed, b.AvgSpeed)
		out.AvgCadence = mergeRounded(out.AvgCadence, b.AvgCadence)
		out.MaxCadence = mergeRounded(out.MaxCadence, b.MaxCadence)
		out.Steps = mergeRounded(out.Steps, b.Steps)
		out.AvgWatts = mergeRounded(out.AvgWatts, b.AvgWatts)
		out.MaxWatts = mergeRounded(out.MaxWatts, b.MaxWatts)
	}
	return out
}

// mergeRounded keeps the first non-zero value. A present-but-zero value is
// kept only until a later block supplies a real one, so a zeroed duplicate
// never shadows the measurement.
func mergeRounded(have, next *Rounded) *Rounded {
	if have == nil {
		return next
	}
	if *have == 0 && next != nil && *next != 0 {
		return next
	}
	return have
}

func mergeFloat(have, next *float64) *float64 {
	if have == nil {
		return next
	}
	if *have == 0 && next != nil && *next != 0 {
		return next
	}
	return have
}

// Encode serializes the document as indented UTF-8 XML with a declaration,
// the way Garmin's own exports look.
func Encode(doc *TrainingCenterDatabase) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Clean runs the full transform on an in-memory document: parse, strip and
// round, restructure extensions, re-serialize. Cleaning its own output is a
// byte-identical no-op.
func Clean(data []byte) ([]byte, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	Normalize(doc)
	return Encode(doc)
}
