package utils

import (
	"golang.org/x/exp/constraints"
)

// Version from source control, set at link time.
var Version string = "unknown"

// If is the ternary operator (eager evaluation)
func If[T any](cond bool, t, f T) T {
	if cond {
		return t
	}
	return f
}

// AddExact returns a+b and false if the sum overflows T.
func AddExact[T constraints.Signed](a, b T) (T, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return sum, false
	}
	return sum, true
}

// ClampToInt converts a non-negative int64 to int, saturating at the
// largest int on platforms where int is narrower.
func ClampToInt(v int64) int {
	const maxInt = int64(^uint(0) >> 1)
	if v > maxInt {
		return int(maxInt)
	}
	return int(v)
}
