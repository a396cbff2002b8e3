package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpxport/gpxport/errors"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want format
	}{
		{"activities/1.fit", formatFIT},
		{"activities/1.fit.gz", formatGzip},
		{"activities/1.tcx", formatTCX},
		{"activities/1.tcx.gz", formatGzip},
		{"activities/1.gpx", formatGPX},
		{"activities/1.gpx.gz", formatGzip},
		{"activities/1.GPX", formatGPX},
		{"activities/1.unknownext", formatUnrecognized},
		{"activities/1", formatUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, formatOf(tt.path))
		})
	}
}

func gzipFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := gzip.NewWriter(f)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="gpxport" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <trkseg>
      <trkpt lat="52.52" lon="13.405">
        <time>2023-06-01T09:15:00Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>
`

func TestDispatchGPXCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "track.gpx")
	require.NoError(t, os.WriteFile(src, []byte(sampleGPX), 0o644))

	c := New(nil, dir)
	dest := filepath.Join(dir, "out.gpx")
	require.NoError(t, c.dispatch(src, dest))

	out, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, sampleGPX, string(out), "normalized input is copied byte for byte")
}

func TestDispatchDecompressionIdempotence(t *testing.T) {
	// Converting X.gpx and a gzip of the same bytes must produce
	// byte-identical output.
	dir := t.TempDir()
	plain := filepath.Join(dir, "track.gpx")
	require.NoError(t, os.WriteFile(plain, []byte(sampleGPX), 0o644))
	compressed := gzipFile(t, dir, "track.gpx.gz", []byte(sampleGPX))

	c := New(nil, dir)
	destPlain := filepath.Join(dir, "plain-out.gpx")
	destCompressed := filepath.Join(dir, "compressed-out.gpx")
	require.NoError(t, c.dispatch(plain, destPlain))
	require.NoError(t, c.dispatch(compressed, destCompressed))

	a, err := os.ReadFile(destPlain)
	require.NoError(t, err)
	b, err := os.ReadFile(destCompressed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDispatchNestedCompression(t *testing.T) {
	// Each compression layer gets its own scratch file; the loop handles
	// arbitrary depth.
	dir := t.TempDir()
	once := filepath.Join(dir, "once.gz")
	{
		f, err := os.Create(once)
		require.NoError(t, err)
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte(sampleGPX))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())
	}
	onceData, err := os.ReadFile(once)
	require.NoError(t, err)
	twice := gzipFile(t, dir, "track.gpx.gz.gz", onceData)

	c := New(nil, dir)
	dest := filepath.Join(dir, "out.gpx")
	require.NoError(t, c.dispatch(twice, dest))

	out, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, sampleGPX, string(out))
}

const rawTCX = "\t<?xml version=\"1.0\" encoding=\"UTF-8\"?>  \r\n" +
	"  <TrainingCenterDatabase>\r\n" +
	"    <Activities>\r\n" +
	"      <Activity Sport=\"Running\">\r\n" +
	"        <Id>2023-06-01T09:15:00Z</Id>\r\n" +
	"        <Lap StartTime=\"2023-06-01T09:15:00Z\">\r\n" +
	"          <Track>\r\n" +
	"            <Trackpoint>\r\n" +
	"              <Time>2023-06-01T09:15:01Z</Time>\r\n" +
	"              <Position>\r\n" +
	"                <LatitudeDegrees>52.52</LatitudeDegrees>\r\n" +
	"                <LongitudeDegrees>13.405</LongitudeDegrees>\r\n" +
	"              </Position>\r\n" +
	"            </Trackpoint>\r\n" +
	"          </Track>\r\n" +
	"        </Lap>\r\n" +
	"      </Activity>\r\n" +
	"    </Activities>\r\n" +
	"  </TrainingCenterDatabase>"

func TestDispatchTCX(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "track.tcx")
	require.NoError(t, os.WriteFile(src, []byte(rawTCX), 0o644))

	c := New(nil, dir)
	dest := filepath.Join(dir, "out.gpx")
	require.NoError(t, c.dispatch(src, dest))

	out, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(out), `lat="52.52"`)
	assert.Contains(t, string(out), `lon="13.405"`)
	assert.Contains(t, string(out), "<time>2023-06-01T09:15:01Z</time>")
}

func TestDispatchUnrecognized(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "track.unknownext")
	require.NoError(t, os.WriteFile(src, []byte("?"), 0o644))

	c := New(nil, dir)
	dest := filepath.Join(dir, "out.gpx")
	err := c.dispatch(src, dest)
	require.Error(t, err)
	assert.True(t, errors.IsUnrecognizedFormatError(err))

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no output for unrecognized formats")
}

func TestNormalizeLines(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "messy.tcx")
	require.NoError(t, os.WriteFile(src, []byte("  <a>\r\n\t<b/> \n  </a>"), 0o644))

	sf, err := normalizeLines(src)
	require.NoError(t, err)
	defer sf.Release()

	out, err := os.ReadFile(sf.Path())
	require.NoError(t, err)
	assert.Equal(t, "<a>\n<b/>\n</a>\n", string(out))
}
