package convert

import (
	"fmt"
	"time"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/export"
)

// DefaultTimeLayout is the locale-specific timestamp layout of English
// manifests, e.g. "Jun 1, 2023, 9:15:00 AM". Exports from accounts in
// other languages need a different layout, configurable per run.
const DefaultTimeLayout = "Jan 2, 2006, 3:04:05 PM"

// normalizedLayout re-renders manifest dates for file names and year
// filtering. Colons are not filesystem-safe, so the time part has none.
const normalizedLayout = "2006-01-02T150405"

// ParseManifestDate parses a raw manifest timestamp with the given layout
// and returns its normalized rendering.
func ParseManifestDate(layout, raw string) (string, error) {
	t, err := time.Parse(layout, raw)
	if err != nil {
		return "", errors.Wrapf(err, "unparseable manifest date %q", raw)
	}
	return t.Format(normalizedLayout), nil
}

// OutputName derives the deterministic output file name for an activity:
// normalized date, type, and ID. Two activities with identical fields
// produce the same name and the later one wins silently; the manifest
// never contains such twins in practice.
func OutputName(a export.Activity, normalizedDate string) string {
	return fmt.Sprintf("%s_%s_%s.gpx", normalizedDate, a.Type, a.ID)
}
