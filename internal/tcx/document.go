// internal/tcx/document.go
package tcx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// NamespaceTCX is the default namespace of a Training Center database document.
	NamespaceTCX = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"
	// NamespaceActivityExtension is the namespace Garmin expects on TPX and LX blocks.
	NamespaceActivityExtension = "http://www.garmin.com/xmlschemas/ActivityExtension/v2"
)

// Rounded is a numeric field the TCX schema types as an integer. Strava
// exports Peloton rides with decimal values in these fields (e.g. a heart
// rate of "150.6"), which Garmin Connect rejects. Decoding accepts either
// form and rounds to the nearest integer; the value always serializes as a
// plain integer.
type Rounded int

func (r *Rounded) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q in <%s>", s, start.Name.Local)
	}
	*r = Rounded(math.Round(f))
	return nil
}

func (r Rounded) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(strconv.Itoa(int(r)), start)
}

// TrainingCenterDatabase is the document root. Only elements Garmin Connect
// accepts are modeled; everything else is dropped during decoding, which is
// exactly the cleanup the Strava export needs.
type TrainingCenterDatabase struct {
	XMLName    xml.Name   `xml:"http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2 TrainingCenterDatabase"`
	Activities Activities `xml:"Activities"`
}

type Activities struct {
	Activity []Activity `xml:"Activity"`
}

// Activity deliberately has no Creator field. Strava writes a Creator block
// Garmin Connect chokes on, so it never survives a round trip.
type Activity struct {
	Sport string `xml:"Sport,attr"`
	ID    string `xml:"Id"`
	Laps  []Lap  `xml:"Lap"`
	Notes string `xml:"Notes,omitempty"`
}

// Lap follows the Activity_Lap_t element order. The non-standard Cadence
// element Strava puts directly under Lap is not modeled and gets dropped.
type Lap struct {
	StartTime           string         `xml:"StartTime,attr"`
	TotalTimeSeconds    float64        `xml:"TotalTimeSeconds"`
	DistanceMeters      float64        `xml:"DistanceMeters"`
	MaximumSpeed        *float64       `xml:"MaximumSpeed,omitempty"`
	Calories            Rounded        `xml:"Calories"`
	AverageHeartRateBpm *HeartRate     `xml:"AverageHeartRateBpm,omitempty"`
	MaximumHeartRateBpm *HeartRate     `xml:"MaximumHeartRateBpm,omitempty"`
	Intensity           string         `xml:"Intensity,omitempty"`
	TriggerMethod       string         `xml:"TriggerMethod,omitempty"`
	Tracks              []Track        `xml:"Track"`
	Extensions          *LapExtensions `xml:"Extensions,omitempty"`
}

type HeartRate struct {
	Value Rounded `xml:"Value"`
}

type Track struct {
	Trackpoints []Trackpoint `xml:"Trackpoint"`
}

type Trackpoint struct {
	Time           string                `xml:"Time"`
	Position       *Position             `xml:"Position,omitempty"`
	AltitudeMeters *float64              `xml:"AltitudeMeters,omitempty"`
	DistanceMeters *float64              `xml:"DistanceMeters,omitempty"`
	HeartRateBpm   *HeartRate            `xml:"HeartRateBpm,omitempty"`
	Cadence        *Rounded              `xml:"Cadence,omitempty"`
	SensorState    string                `xml:"SensorState,omitempty"`
	Extensions     *TrackpointExtensions `xml:"Extensions,omitempty"`
}

type Position struct {
	LatitudeDegrees  float64 `xml:"LatitudeDegrees"`
	LongitudeDegrees float64 `xml:"LongitudeDegrees"`
}

// TrackpointExtensions collects TPX blocks during decoding. Strava sometimes
// duplicates the TPX wrapper inside a single Extensions element; Normalize
// folds them into one.
type TrackpointExtensions struct {
	TPX []TPX `xml:"TPX"`
}

// TPX is the per-trackpoint activity extension. Speed stays a decimal per
// the schema; Watts and RunCadence are integer typed.
type TPX struct {
	XMLName       xml.Name `xml:"http://www.garmin.com/xmlschemas/ActivityExtension/v2 TPX"`
	Speed         *float64 `xml:"Speed,omitempty"`
	RunCadence    *Rounded `xml:"RunCadence,omitempty"`
	Watts         *Rounded `xml:"Watts,omitempty"`
	CadenceSensor string   `xml:"CadenceSensor,attr,omitempty"`
}

// UnmarshalXML keeps only the children the ActivityExtension schema defines.
// Peloton resistance values ride along in a Resistance element and are
// skipped here.
func (x *TPX) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "CadenceSensor" {
			x.CadenceSensor = a.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Speed":
				var v float64
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.Speed = &v
			case "RunCadence":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.RunCadence = &v
			case "Watts":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.Watts = &v
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (x *TPX) empty() bool {
	return x.Speed == nil && x.RunCadence == nil && x.Watts == nil
}

// LapExtensions collects lap-level extension blocks. Strava labels lap
// summaries TPX even though Garmin expects LX, so both spellings are
// accepted; Normalize emits a single LX.
type LapExtensions struct {
	LX  []LX `xml:"LX"`
	TPX []LX `xml:"TPX"`
}

// LX is the per-lap activity extension in the shape Garmin Connect accepts.
type LX struct {
	XMLName    xml.Name `xml:"http://www.garmin.com/xmlschemas/ActivityExtension/v2 LX"`
	AvgSpeed   *float64 `xml:"AvgSpeed,omitempty"`
	AvgCadence *Rounded `xml:"AvgCadence,omitempty"`
	MaxCadence *Rounded `xml:"MaxCadence,omitempty"`
	Steps      *Rounded `xml:"Steps,omitempty"`
	AvgWatts   *Rounded `xml:"AvgWatts,omitempty"`
	MaxWatts   *Rounded `xml:"MaxWatts,omitempty"`
}

// UnmarshalXML maps Strava's long-form child names onto the short names the
// schema defines and drops the Peloton-only totals (TotalPower,
// AverageResistance, MaximumResistance).
func (x *LX) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "AvgSpeed":
				var v float64
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.AvgSpeed = &v
			case "AvgCadence", "AverageCadence":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.AvgCadence = &v
			case "MaxCadence", "MaximumCadence":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.MaxCadence = &v
			case "Steps":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.Steps = &v
			case "AvgWatts", "AverageWatts":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.AvgWatts = &v
			case "MaxWatts", "MaximumWatts":
				var v Rounded
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				x.MaxWatts = &v
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (x *LX) empty() bool {
	return x.AvgSpeed == nil && x.AvgCadence == nil && x.MaxCadence == nil &&
		x.Steps == nil && x.AvgWatts == nil && x.MaxWatts == nil
}
