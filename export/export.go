// Package export reads a Strava data export: the activities manifest and
// the per-activity track files it references. An export is either the
// original zip archive or a directory holding its unpacked contents; both
// are presented through the same interface.
package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/internal/scratch"
	"github.com/gpxport/gpxport/logger"
)

// Export is an opened Strava export in directory or archive mode.
// Archive mode keeps the zip handle open for the lifetime of the Export
// because track files are extracted lazily, one activity at a time.
type Export struct {
	path    string
	archive *zip.ReadCloser // nil in directory mode
	log     *zap.SugaredLogger
}

// Open opens path as a Strava export. A directory is used in place;
// anything else is treated as a zip archive.
func Open(path string) (*Export, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open export %s", path)
	}

	e := &Export{path: path, log: logger.ComponentLogger("export")}
	if info.IsDir() {
		return e, nil
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open export archive %s", path)
	}
	e.archive = archive
	return e, nil
}

// Close releases the archive handle. No-op in directory mode.
func (e *Export) Close() error {
	if e.archive == nil {
		return nil
	}
	return e.archive.Close()
}

// Path returns the location the export was opened from.
func (e *Export) Path() string {
	return e.path
}

// ResolveTrack makes the activity's track file available as a local path.
// Directory mode joins the path without copying. Archive mode extracts the
// entry into a scratch file named after the entry base, so suffix dispatch
// still sees the original file name; the caller owns the returned scratch
// file and must Release it once the activity is converted.
func (e *Export) ResolveTrack(a Activity) (string, *scratch.File, error) {
	if a.Filename == "" {
		return "", nil, errors.Wrapf(errors.ErrNoTrackFile, "activity %s", a.ID)
	}

	if e.archive == nil {
		return filepath.Join(e.path, filepath.FromSlash(a.Filename)), nil, nil
	}

	entry, err := e.archive.Open(a.Filename)
	if err != nil {
		return "", nil, errors.Wrapf(err, "track file %s not in archive", a.Filename)
	}
	defer entry.Close()

	sf, err := scratch.Capture(entry, "-"+filepath.Base(a.Filename))
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to extract track file %s", a.Filename)
	}
	return sf.Path(), sf, nil
}

// Types returns the sorted, de-duplicated set of activity types observed in
// the manifest. Used by the listing mode; performs no conversion.
func (e *Export) Types() ([]string, error) {
	return e.observed(func(a Activity) string { return a.Type })
}

// Gear returns the sorted, de-duplicated set of gear tags observed in the
// manifest. Activities without gear are skipped.
func (e *Export) Gear() ([]string, error) {
	return e.observed(func(a Activity) string { return a.Gear })
}

func (e *Export) observed(field func(Activity) string) ([]string, error) {
	manifest, err := e.Manifest()
	if err != nil {
		return nil, err
	}
	defer manifest.Release()

	seen := make(map[string]bool)
	var values []string
	for _, a := range manifest.Activities {
		v := strings.TrimSpace(field(a))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}
