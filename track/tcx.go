package track

import (
	"encoding/xml"
	"os"

	"github.com/gpxport/gpxport/errors"
)

// TCX models the intermediate track document: a lap-structured activity
// with timestamped trackpoints. Only the structure the conversion pipeline
// produces and consumes is modeled; measurement values stay as their
// rendered text so the output is byte-stable across parse/convert cycles.
type TCX struct {
	XMLName    xml.Name      `xml:"TrainingCenterDatabase"`
	Namespace  string        `xml:"xmlns,attr,omitempty"`
	Activities TCXActivities `xml:"Activities"`
}

type TCXActivities struct {
	Activity []TCXActivity `xml:"Activity"`
}

type TCXActivity struct {
	Sport string   `xml:"Sport,attr"`
	ID    string   `xml:"Id"`
	Laps  []TCXLap `xml:"Lap"`
}

type TCXLap struct {
	StartTime string   `xml:"StartTime,attr"`
	Track     TCXTrack `xml:"Track"`
}

type TCXTrack struct {
	Trackpoints []TCXTrackpoint `xml:"Trackpoint"`
}

// TCXTrackpoint is one sample. The optional children are emitted only when
// the source recorded the corresponding value; an absent value never
// produces a placeholder element.
type TCXTrackpoint struct {
	Time           string        `xml:"Time"`
	Position       *TCXPosition  `xml:"Position,omitempty"`
	AltitudeMeters string        `xml:"AltitudeMeters,omitempty"`
	DistanceMeters string        `xml:"DistanceMeters,omitempty"`
	HeartRateBpm   *TCXHeartRate `xml:"HeartRateBpm,omitempty"`
}

type TCXPosition struct {
	LatitudeDegrees  string `xml:"LatitudeDegrees"`
	LongitudeDegrees string `xml:"LongitudeDegrees"`
}

type TCXHeartRate struct {
	Value uint8 `xml:"Value"`
}

// TCXNamespace is the schema identifier written on generated documents.
const TCXNamespace = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"

// ParseTCX reads an intermediate track document from a file.
func ParseTCX(path string) (*TCX, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open TCX file %s", path)
	}
	defer f.Close()

	var doc TCX
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse TCX file %s", path)
	}
	return &doc, nil
}
