package track

import (
	"time"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/fitfile"
)

// timeFormat renders timestamps as ISO-8601 with an explicit UTC "Z"
// suffix. FIT timestamps are already UTC; no timezone conversion happens.
const timeFormat = "2006-01-02T15:04:05Z"

// measurementPrecision is the decimal precision for altitude and distance
// text, enough for the centimeter resolution of the wire format.
const measurementPrecision = 2

// FromFIT rebuilds a decoded FIT activity as an intermediate track
// document: one activity, one lap per lap message, and under each lap the
// records whose timestamps fall inside the lap interval, inclusive on both
// ends. Records are not pre-bucketed; each lap scans the full record
// stream, so a record sitting exactly on a shared lap boundary lands in
// both adjacent laps.
func FromFIT(activity *fitfile.Activity) (*TCX, error) {
	if activity.Session == nil {
		return nil, errors.NewTransformError("FIT source has no session message")
	}

	sport := SportFromFIT(activity.Session.Sport)
	tcxActivity := TCXActivity{
		Sport: sport.String(),
		ID:    activity.Session.StartTime.UTC().Format(timeFormat),
	}

	for _, lap := range activity.Laps {
		tcxLap := TCXLap{StartTime: lap.StartTime.UTC().Format(timeFormat)}
		for _, rec := range activity.Records {
			if !inLap(rec.Timestamp, lap) {
				continue
			}
			tcxLap.Track.Trackpoints = append(tcxLap.Track.Trackpoints, trackpoint(rec))
		}
		tcxActivity.Laps = append(tcxActivity.Laps, tcxLap)
	}

	return &TCX{
		Namespace:  TCXNamespace,
		Activities: TCXActivities{Activity: []TCXActivity{tcxActivity}},
	}, nil
}

// inLap reports interval membership, inclusive at both boundaries.
func inLap(ts time.Time, lap fitfile.Lap) bool {
	return !ts.Before(lap.StartTime) && !ts.After(lap.EndTime)
}

// trackpoint renders one record, emitting optional sub-elements only for
// the values the record actually carries.
func trackpoint(rec fitfile.Record) TCXTrackpoint {
	pt := TCXTrackpoint{Time: rec.Timestamp.UTC().Format(timeFormat)}

	if rec.PositionLat != nil && rec.PositionLong != nil {
		pt.Position = &TCXPosition{
			LatitudeDegrees:  FormatDegrees(SemicirclesToDegrees(*rec.PositionLat)),
			LongitudeDegrees: FormatDegrees(SemicirclesToDegrees(*rec.PositionLong)),
		}
	}
	if rec.AltitudeMeters != nil {
		pt.AltitudeMeters = FormatFixed(*rec.AltitudeMeters, measurementPrecision)
	}
	if rec.DistanceMeters != nil {
		pt.DistanceMeters = FormatFixed(*rec.DistanceMeters, measurementPrecision)
	}
	if rec.HeartRate != nil {
		pt.HeartRateBpm = &TCXHeartRate{Value: *rec.HeartRate}
	}
	return pt
}
