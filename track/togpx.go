package track

// TCXToGPX converts an intermediate track document into the normalized
// output format. Every activity becomes one track and every lap one track
// segment. Points without a position are dropped: the output format
// requires coordinates on every point. Optional values carry over only
// when present.
func TCXToGPX(doc *TCX) *GPX {
	gpx := &GPX{}

	for _, activity := range doc.Activities.Activity {
		trk := GPXTrack{
			Name: activity.ID,
			Type: activity.Sport,
		}
		if gpx.Metadata == nil && activity.ID != "" {
			gpx.Metadata = &GPXMeta{Time: activity.ID}
		}

		for _, lap := range activity.Laps {
			seg := GPXSegment{}
			for _, pt := range lap.Track.Trackpoints {
				if pt.Position == nil {
					continue
				}
				gp := GPXPoint{
					Lat:       pt.Position.LatitudeDegrees,
					Lon:       pt.Position.LongitudeDegrees,
					Elevation: pt.AltitudeMeters,
					Time:      pt.Time,
				}
				if pt.HeartRateBpm != nil {
					gp.Extensions = &GPXExtensions{
						TrackPoint: &GPXTrackPointExt{HeartRate: pt.HeartRateBpm.Value},
					}
				}
				seg.Points = append(seg.Points, gp)
			}
			trk.Segments = append(trk.Segments, seg)
		}
		gpx.Tracks = append(gpx.Tracks, trk)
	}
	return gpx
}
