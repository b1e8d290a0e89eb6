package rexp

import "math"

const (
	// NAInteger is the reserved integer that marks a missing element of an
	// integer or logical vector.
	NAInteger int32 = math.MinInt32

	// NALogical marks a missing logical element.
	NALogical int32 = math.MinInt32

	LogicalFalse int32 = 0
	LogicalTrue  int32 = 1

	// naRealBits is the signalling-NaN payload written for a missing double.
	// Only the low word (1954) is significant when testing for missingness.
	naRealBits uint64 = 0x7FF00000000007A2
	naRealLow  uint32 = 1954
)

// NAReal returns the double that marks a missing element.
func NAReal() float64 {
	return math.Float64frombits(naRealBits)
}

// IsNA reports whether f is the missing-value double. Ordinary NaNs, whatever
// their payload, are not missing.
func IsNA(f float64) bool {
	return math.IsNaN(f) && uint32(math.Float64bits(f)) == naRealLow
}

// IsNaN reports whether f is a NaN that is not the missing value.
func IsNaN(f float64) bool {
	return math.IsNaN(f) && !IsNA(f)
}
