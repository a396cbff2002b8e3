// Package fitfile adapts the FIT SDK decoder to the message views the
// conversion pipeline needs: one session, the lap intervals, and the raw
// record stream. The SDK marks absent fields with per-type invalid
// sentinels; this package converts them to explicit optionals so callers
// never compare against sentinel values.
package fitfile

import (
	"os"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/untyped/mesgnum"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/internal/util"
)

// Session is the sport classification and start of a recording. A FIT
// activity file carries one; when a file has several, the first wins.
type Session struct {
	Sport     string // decoder sport name, e.g. "running", "cycling"
	StartTime time.Time
}

// Lap is one lap interval. Records belong to the lap when their timestamp
// falls in [StartTime, EndTime], inclusive on both ends.
type Lap struct {
	StartTime time.Time
	EndTime   time.Time
}

// Record is one timestamped sample. All measurements are optional and
// independently present; nil means the device did not record the value.
// Positions stay in raw semicircles, the unit the wire format uses.
type Record struct {
	Timestamp      time.Time
	PositionLat    *int32 // semicircles
	PositionLong   *int32 // semicircles
	AltitudeMeters *float64
	DistanceMeters *float64
	HeartRate      *uint8
}

// Activity is the decoded message stream of one FIT source file.
type Activity struct {
	Session *Session // nil when the file has no session message
	Laps    []Lap
	Records []Record
}

// Decode reads a FIT file and extracts the session/lap/record messages.
func Decode(path string) (*Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open FIT file %s", path)
	}
	defer f.Close()

	fit, err := decoder.New(f).Decode()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode FIT file %s", path)
	}

	activity := &Activity{}
	for i := range fit.Messages {
		mesg := &fit.Messages[i]
		switch mesg.Num {
		case mesgnum.Session:
			if activity.Session != nil {
				continue // first session message wins
			}
			s := mesgdef.NewSession(mesg)
			activity.Session = &Session{
				Sport:     s.Sport.String(),
				StartTime: s.StartTime,
			}
		case mesgnum.Lap:
			l := mesgdef.NewLap(mesg)
			activity.Laps = append(activity.Laps, Lap{
				StartTime: l.StartTime,
				EndTime:   l.Timestamp, // a lap message is stamped at its end
			})
		case mesgnum.Record:
			r := mesgdef.NewRecord(mesg)
			if r.Timestamp.IsZero() {
				continue // untimed records cannot be assigned to a lap
			}
			activity.Records = append(activity.Records, newRecord(r))
		}
	}
	return activity, nil
}

func newRecord(r *mesgdef.Record) Record {
	rec := Record{Timestamp: r.Timestamp}

	if r.PositionLat != basetype.Sint32Invalid {
		rec.PositionLat = util.Ptr(r.PositionLat)
	}
	if r.PositionLong != basetype.Sint32Invalid {
		rec.PositionLong = util.Ptr(r.PositionLong)
	}

	// Prefer the enhanced altitude field when the device wrote it; both
	// encodings share scale 5, offset 500.
	if r.EnhancedAltitude != basetype.Uint32Invalid {
		rec.AltitudeMeters = util.Ptr(float64(r.EnhancedAltitude)/5 - 500)
	} else if r.Altitude != basetype.Uint16Invalid {
		rec.AltitudeMeters = util.Ptr(float64(r.Altitude)/5 - 500)
	}

	if r.Distance != basetype.Uint32Invalid {
		rec.DistanceMeters = util.Ptr(float64(r.Distance) / 100) // centimeters on the wire
	}
	if r.HeartRate != basetype.Uint8Invalid {
		rec.HeartRate = util.Ptr(r.HeartRate)
	}
	return rec
}
