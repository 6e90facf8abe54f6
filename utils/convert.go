// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const maxInt16 = 32767.0

// Clamp limits x to the closed range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}

// FloatToInt16 converts a float sample to 16-bit PCM as
// round(clamp(x, -1, 1) * 32767). NaN maps to 0.
func FloatToInt16(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}
	return int16(math.Round(Clamp(x, -1, 1) * maxInt16))
}

// Int16ToFloat is the inverse of FloatToInt16 on its output range.
func Int16ToFloat(v int16) float64 {
	return Clamp(float64(v)/maxInt16, -1, 1)
}

// DBToLinear converts a level in dBFS to a linear amplitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dBFS. Silence maps to -Inf and
// negative input to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
