package track

import (
	"encoding/xml"
	"io"

	"github.com/gpxport/gpxport/errors"
)

// GPX models the normalized output document. One track per activity, one
// segment per source lap.
type GPX struct {
	XMLName      xml.Name   `xml:"gpx"`
	Version      string     `xml:"version,attr"`
	Creator      string     `xml:"creator,attr"`
	Namespace    string     `xml:"xmlns,attr"`
	NamespaceTPX string     `xml:"xmlns:gpxtpx,attr,omitempty"`
	Metadata     *GPXMeta   `xml:"metadata,omitempty"`
	Tracks       []GPXTrack `xml:"trk"`
}

type GPXMeta struct {
	Time string `xml:"time,omitempty"`
}

type GPXTrack struct {
	Name     string       `xml:"name,omitempty"`
	Type     string       `xml:"type,omitempty"`
	Segments []GPXSegment `xml:"trkseg"`
}

type GPXSegment struct {
	Points []GPXPoint `xml:"trkpt"`
}

// GPXPoint is one track point. Latitude and longitude are mandatory
// attributes of the format; the child elements are optional and omitted
// when the source point has no value for them.
type GPXPoint struct {
	Lat        string         `xml:"lat,attr"`
	Lon        string         `xml:"lon,attr"`
	Elevation  string         `xml:"ele,omitempty"`
	Time       string         `xml:"time,omitempty"`
	Extensions *GPXExtensions `xml:"extensions,omitempty"`
}

type GPXExtensions struct {
	TrackPoint *GPXTrackPointExt `xml:"gpxtpx:TrackPointExtension,omitempty"`
}

type GPXTrackPointExt struct {
	HeartRate uint8 `xml:"gpxtpx:hr"`
}

const (
	// GPXCreator identifies generated documents.
	GPXCreator = "gpxport"

	gpxVersion      = "1.1"
	gpxNamespace    = "http://www.topografix.com/GPX/1/1"
	gpxNamespaceTPX = "http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
)

// hasHeartRate reports whether any point in the document carries a heart
// rate; the extension namespace is only declared when it is used.
func (g *GPX) hasHeartRate() bool {
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				if pt.Extensions != nil && pt.Extensions.TrackPoint != nil {
					return true
				}
			}
		}
	}
	return false
}

// WriteGPX marshals the document to w. Output is deterministic: identical
// documents always produce identical bytes, which the decompression-cascade
// idempotence guarantee depends on.
func WriteGPX(w io.Writer, doc *GPX) error {
	doc.Version = gpxVersion
	doc.Creator = GPXCreator
	doc.Namespace = gpxNamespace
	if doc.hasHeartRate() {
		doc.NamespaceTPX = gpxNamespaceTPX
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "failed to write GPX header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "failed to marshal GPX document")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, "failed to finish GPX document")
	}
	return nil
}
