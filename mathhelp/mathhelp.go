package mathhelp

import (
	"math"

	"golang.org/x/exp/constraints"
)

// snapEpsilon is how close a quotient must be to an integer to count as that integer.
const snapEpsilon = 1e-9

func Pow2(n uint) uint {
	return 1 << n
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FloorDiv divides rounding towards negative infinity (unlike Go's / which truncates).
func FloorDiv(d, m int64) int64 {
	q := d / m
	if (d%m != 0) && ((d < 0) != (m < 0)) {
		q--
	}
	return q
}

// RoundShift divides by 2^shift, rounding half up.
func RoundShift(d int64, shift uint) int64 {
	if shift == 0 {
		return d
	}
	return FloorDiv(d+int64(1)<<(shift-1), int64(1)<<shift)
}

// SnapFloor floors v, unless v is within rounding noise of an integer,
// in which case that integer is returned.
func SnapFloor(v float64) float64 {
	r := math.Round(v)
	if math.Abs(v-r) < snapEpsilon {
		return r
	}
	return math.Floor(v)
}

func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}
