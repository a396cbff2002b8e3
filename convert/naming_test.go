package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpxport/gpxport/export"
)

func TestParseManifestDate(t *testing.T) {
	t.Run("default layout", func(t *testing.T) {
		normalized, err := ParseManifestDate(DefaultTimeLayout, "Jun 1, 2023, 9:15:07 AM")
		require.NoError(t, err)
		assert.Equal(t, "2023-06-01T091507", normalized)
	})

	t.Run("afternoon", func(t *testing.T) {
		normalized, err := ParseManifestDate(DefaultTimeLayout, "Dec 31, 2022, 11:59:59 PM")
		require.NoError(t, err)
		assert.Equal(t, "2022-12-31T235959", normalized)
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, err := ParseManifestDate(DefaultTimeLayout, "1. Juni 2023, 09:15:07")
		assert.Error(t, err)
	})
}

func TestOutputName(t *testing.T) {
	a := export.Activity{ID: "123456", Type: "Run"}

	name := OutputName(a, "2023-06-01T091507")
	assert.Equal(t, "2023-06-01T091507_Run_123456.gpx", name)

	// Naming is deterministic: same descriptor, same name, every time.
	assert.Equal(t, name, OutputName(a, "2023-06-01T091507"))
}
