package core

import "math"

// MinMax returns the smallest and largest value of x together with their
// first positions. For empty input both positions are -1 and the values NaN.
func MinMax(x []float64) (minVal float64, minPos int, maxVal float64, maxPos int) {
	if len(x) == 0 {
		return math.NaN(), -1, math.NaN(), -1
	}

	minVal, maxVal = x[0], x[0]
	for i, v := range x[1:] {
		if v < minVal {
			minVal, minPos = v, i+1
		}

		if v > maxVal {
			maxVal, maxPos = v, i+1
		}
	}

	return minVal, minPos, maxVal, maxPos
}

// Min returns the smallest value of x, or NaN for empty input.
func Min(x []float64) float64 {
	v, _, _, _ := MinMax(x)
	return v
}

// Max returns the largest value of x, or NaN for empty input.
func Max(x []float64) float64 {
	_, _, v, _ := MinMax(x)
	return v
}

// Range returns max(x) - min(x), or NaN for empty input.
func Range(x []float64) float64 {
	lo, _, hi, _ := MinMax(x)
	return hi - lo
}

// IsFinite reports whether every element of x is neither NaN nor Inf.
func IsFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// StrictlyIncreasing reports whether x[i] < x[i+1] for all i.
func StrictlyIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i-1] < x[i]) {
			return false
		}
	}

	return true
}
