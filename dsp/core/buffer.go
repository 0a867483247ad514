package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Clone returns a copy of src that does not share its backing array.
// A nil input yields nil.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Reverse returns a reversed copy of src.
func Reverse(src []float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[len(src)-1-i] = v
	}
	return out
}

// Take gathers src at the given indices. Indices must be in range.
func Take(src []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
