package convert

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gpxport/gpxport/export"
)

// exportColumns matches the manifest schema the loader enforces.
const exportColumns = 68

func testRow(id, date, typ, gear, filename string) []string {
	row := make([]string, exportColumns)
	row[0] = id
	row[1] = date
	row[3] = typ
	row[9] = gear
	row[10] = filename
	return row
}

// buildExport writes a directory-mode export: activities.csv plus track
// files under activities/.
func buildExport(t *testing.T, rows [][]string, tracks map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, export.ManifestName))
	require.NoError(t, err)
	w := csv.NewWriter(f)
	header := make([]string, exportColumns)
	for i := range header {
		header[i] = fmt.Sprintf("col%d", i)
	}
	require.NoError(t, w.Write(header))
	for _, row := range rows {
		require.NoError(t, w.Write(row))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	for name, content := range tracks {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// zipDirectory packs a directory-mode export into a zip archive with
// forward-slash entry names, the layout the real export uses.
func zipDirectory(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestRunFiltersAndConverts(t *testing.T) {
	dir := buildExport(t, [][]string{
		testRow("1", "Jun 1, 2023, 9:15:00 AM", "Run", "", "activities/1.gpx"),
		testRow("2", "Jul 2, 2022, 6:30:00 PM", "Ride", "", "activities/2.gpx"),
		testRow("3", "Aug 3, 2023, 7:00:00 AM", "Run", "bike1", "activities/3.gpx"),
	}, map[string]string{
		"activities/1.gpx": sampleGPX,
		"activities/2.gpx": sampleGPX,
		"activities/3.gpx": sampleGPX,
	})

	e, err := export.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	dest := t.TempDir()
	c := New(e, dest, WithFilter(export.Filter{Types: []string{"Run"}, Years: []string{"2023"}}))
	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Filtered)
	assert.Zero(t, result.Failed)
	assert.NotEmpty(t, result.RunID)

	// Exactly the first and third rows, named deterministically.
	assert.FileExists(t, filepath.Join(dest, "2023-06-01T091500_Run_1.gpx"))
	assert.FileExists(t, filepath.Join(dest, "2023-08-03T070000_Run_3.gpx"))
	assert.NoFileExists(t, filepath.Join(dest, "2022-07-02T183000_Ride_2.gpx"))
}

func TestRunSkipsUnrecognizedAndContinues(t *testing.T) {
	dir := buildExport(t, [][]string{
		testRow("1", "Jun 1, 2023, 9:15:00 AM", "Run", "", "activities/1.unknownext"),
		testRow("2", "Jun 2, 2023, 9:15:00 AM", "Run", "", "activities/2.gpx"),
	}, map[string]string{
		"activities/1.unknownext": "not a track",
		"activities/2.gpx":        sampleGPX,
	})

	e, err := export.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	dest := t.TempDir()
	result, err := New(e, dest).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Converted)
	assert.Zero(t, result.Failed)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1, "skipped activity leaves no output")
	assert.Equal(t, "2023-06-02T091500_Run_2.gpx", entries[0].Name())
}

func TestRunStampsRunAndActivityOnLogs(t *testing.T) {
	dir := buildExport(t, [][]string{
		testRow("42", "Jun 1, 2023, 9:15:00 AM", "Workout", "", ""),
	}, nil)

	e, err := export.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(e, t.TempDir(), WithLogger(zap.New(core).Sugar().Named("convert")))
	result, err := c.Run(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("Skipping activity").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, result.RunID, fields["run_id"])
	assert.Equal(t, "42", fields["activity_id"])
}

func TestRunCountsActivitiesWithoutTrackFile(t *testing.T) {
	dir := buildExport(t, [][]string{
		testRow("1", "Jun 1, 2023, 9:15:00 AM", "Workout", "", ""),
	}, nil)

	e, err := export.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	result, err := New(e, t.TempDir()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.NoFile)
	assert.Zero(t, result.Converted)
}

func TestRunIsolatesPerActivityFailures(t *testing.T) {
	dir := buildExport(t, [][]string{
		testRow("1", "not a date", "Run", "", "activities/1.gpx"),
		testRow("2", "Jun 2, 2023, 9:15:00 AM", "Run", "", "activities/missing.gpx"),
		testRow("3", "Jun 3, 2023, 9:15:00 AM", "Run", "", "activities/3.gpx"),
	}, map[string]string{
		"activities/1.gpx": sampleGPX,
		"activities/3.gpx": sampleGPX,
	})

	e, err := export.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	result, err := New(e, t.TempDir()).Run(context.Background())
	require.NoError(t, err, "per-activity failures never abort the run")

	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, result.Converted)
	assert.True(t, result.Success)
}

func TestRunArchiveMode(t *testing.T) {
	// Build a zip export in-place from a directory-mode fixture.
	srcDir := buildExport(t, [][]string{
		testRow("7", "Jan 5, 2021, 7:00:00 AM", "Hike", "", "activities/7.gpx"),
	}, map[string]string{
		"activities/7.gpx": sampleGPX,
	})
	archive := zipDirectory(t, srcDir)

	e, err := export.Open(archive)
	require.NoError(t, err)
	defer e.Close()

	dest := t.TempDir()
	result, err := New(e, dest).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Converted)
	out, err := os.ReadFile(filepath.Join(dest, "2021-01-05T070000_Hike_7.gpx"))
	require.NoError(t, err)
	assert.Equal(t, sampleGPX, string(out))
}

func TestRunCancellationStopsAtIterationBoundary(t *testing.T) {
	dir := buildExport(t, [][]string{
		testRow("1", "Jun 1, 2023, 9:15:00 AM", "Run", "", "activities/1.gpx"),
	}, map[string]string{
		"activities/1.gpx": sampleGPX,
	})

	e, err := export.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(e, t.TempDir()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Converted)
	assert.False(t, result.Success)
}
