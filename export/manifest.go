package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/gpxport/gpxport/errors"
	"github.com/gpxport/gpxport/internal/scratch"
)

// ManifestName is the manifest entry inside every Strava export.
const ManifestName = "activities.csv"

// The manifest schema this tool understands. Header names are localized to
// the account language, so fields are addressed by position, never by name.
// The column count pins the export version: a different count means the
// positional indices below would read garbage.
const manifestColumns = 68

const (
	colID       = 0
	colDate     = 1
	colType     = 3
	colGear     = 9
	colFilename = 10
)

// Activity is one manifest row. Immutable after load.
type Activity struct {
	ID       string
	Type     string
	Date     string // raw manifest timestamp, locale-formatted
	Gear     string
	Filename string // track file path relative to the export root; empty for manual entries
	Index    int    // 0-based position in the manifest
	Total    int    // total row count, for progress reporting
}

// Manifest is the ordered activity list plus, in archive mode, the scratch
// file the manifest was extracted into. The scratch file must outlive the
// whole conversion loop, so its release is deferred to the caller via
// Release rather than happening inside the loader.
type Manifest struct {
	Activities []Activity

	extracted *scratch.File // nil in directory mode
}

// Release frees the extracted manifest copy, if any.
func (m *Manifest) Release() {
	if m == nil {
		return
	}
	m.extracted.Release()
}

// Manifest loads and parses activities.csv. Archive mode extracts the entry
// to a scratch file first and then parses identically to directory mode.
func (e *Export) Manifest() (*Manifest, error) {
	if e.archive == nil {
		activities, err := parseManifest(filepath.Join(e.path, ManifestName))
		if err != nil {
			return nil, err
		}
		return &Manifest{Activities: activities}, nil
	}

	entry, err := e.archive.Open(ManifestName)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s not in archive", ManifestName)
	}
	defer entry.Close()

	sf, err := scratch.Capture(entry, ".csv")
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract manifest")
	}

	activities, err := parseManifest(sf.Path())
	if err != nil {
		sf.Release()
		return nil, err
	}
	return &Manifest{Activities: activities, extracted: sf}, nil
}

func parseManifest(path string) ([]Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open manifest %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest header")
	}
	if len(header) != manifestColumns {
		return nil, errors.WithDetailf(
			errors.Wrapf(errors.ErrManifestSchema, "expected %d columns, got %d", manifestColumns, len(header)),
			"observed header: %v", header)
	}

	var activities []Activity
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read manifest row %d", len(activities)+1)
		}
		if len(row) != manifestColumns {
			return nil, errors.WithDetailf(
				errors.Wrapf(errors.ErrManifestSchema, "row %d has %d columns, expected %d", len(activities)+1, len(row), manifestColumns),
				"observed row: %v", row)
		}
		activities = append(activities, Activity{
			ID:       row[colID],
			Date:     row[colDate],
			Type:     row[colType],
			Gear:     row[colGear],
			Filename: row[colFilename],
			Index:    len(activities),
		})
	}

	for i := range activities {
		activities[i].Total = len(activities)
	}
	return activities, nil
}
