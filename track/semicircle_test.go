package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemicirclesToDegrees(t *testing.T) {
	tests := []struct {
		name        string
		semicircles int32
		want        float64
	}{
		{"quarter circle", 1073741824, 90.0}, // 2^30
		{"zero", 0, 0.0},
		{"negative quarter circle", -1073741824, -90.0},
		{"one semicircle", 1, 180.0 / 2147483648.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SemicirclesToDegrees(tt.semicircles))
		})
	}
}

func TestFormatDegrees(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
		want    string
	}{
		{"whole number strips point", 90.0, "90"},
		{"zero", 0.0, "0"},
		{"negative whole", -90.0, "-90"},
		{"trailing zeros stripped, non-zero digits kept", 52.52, "52.52"},
		{"full precision kept", 52.5200000001, "52.5200000001"},
		{"rounds past precision", 13.40000000004, "13.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDegrees(tt.degrees))
		})
	}
}

func TestFormatDegreesFromSemicircles(t *testing.T) {
	// The wire-to-text contract: 2^30 semicircles is exactly "90".
	assert.Equal(t, "90", FormatDegrees(SemicirclesToDegrees(1073741824)))
	assert.Equal(t, "0", FormatDegrees(SemicirclesToDegrees(0)))
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "247.8", FormatFixed(247.80, 2))
	assert.Equal(t, "1250", FormatFixed(1250.0, 2))
	assert.Equal(t, "0.25", FormatFixed(0.25, 2))
	assert.Equal(t, "3", FormatFixed(3.0, 0))
}
