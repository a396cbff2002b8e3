package scratch

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	sf, err := New(".tcx")
	require.NoError(t, err)
	defer sf.Release()

	assert.True(t, strings.HasSuffix(sf.Path(), ".tcx"), "scratch file must keep the requested suffix")

	info, err := os.Stat(sf.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCapture(t *testing.T) {
	sf, err := Capture(strings.NewReader("trackpoint payload"), ".fit")
	require.NoError(t, err)
	defer sf.Release()

	assert.True(t, strings.HasSuffix(sf.Path(), ".fit"))

	data, err := os.ReadFile(sf.Path())
	require.NoError(t, err)
	assert.Equal(t, "trackpoint payload", string(data))
}

func TestRelease(t *testing.T) {
	t.Run("removes the file", func(t *testing.T) {
		sf, err := New(".gpx")
		require.NoError(t, err)

		sf.Release()

		_, err = os.Stat(sf.Path())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("idempotent", func(t *testing.T) {
		sf, err := New(".gpx")
		require.NoError(t, err)

		sf.Release()
		sf.Release() // must not panic or log spuriously
	})

	t.Run("nil receiver is a no-op", func(t *testing.T) {
		var sf *File
		sf.Release()
		assert.Empty(t, sf.Path())
	})

	t.Run("already-deleted file is not an error", func(t *testing.T) {
		sf, err := New(".gz")
		require.NoError(t, err)
		require.NoError(t, os.Remove(sf.Path()))

		sf.Release()
	})
}
