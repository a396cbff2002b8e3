package track

import (
	"strconv"
	"strings"
)

// Semicircles are the 32-bit angular unit of the binary track format: a
// full circle is 2^32 units, so one semicircle is 180 / 2^31 degrees.
const degreesPerSemicircle = 180.0 / 2147483648.0

// SemicirclesToDegrees converts a raw semicircle coordinate to decimal
// degrees.
func SemicirclesToDegrees(semicircles int32) float64 {
	return float64(semicircles) * degreesPerSemicircle
}

// coordinatePrecision is the fixed decimal precision coordinates are
// rendered at before stripping. Ten decimal places keeps the full
// resolution of the semicircle encoding (~1e-8 degrees).
const coordinatePrecision = 10

// FormatDegrees renders a coordinate as fixed-precision decimal text with
// trailing zeros removed, and the decimal point too when nothing follows
// it. Downstream consumers compare coordinate text exactly, so this
// rendering is part of the output contract: 90.0 becomes "90", not "90.0"
// and not "9e+01".
func FormatDegrees(degrees float64) string {
	return stripTrailingZeros(strconv.FormatFloat(degrees, 'f', coordinatePrecision, 64))
}

// FormatFixed renders a measurement at the given decimal precision with
// the same stripping rule as FormatDegrees.
func FormatFixed(value float64, precision int) string {
	return stripTrailingZeros(strconv.FormatFloat(value, 'f', precision, 64))
}

func stripTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}
