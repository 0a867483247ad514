package integrate

import (
	"errors"
	"fmt"
)

// Errors returned by the integrators.
var (
	ErrLengthMismatch = errors.New("integrate: x and y length mismatch")
	ErrTooFewSamples  = errors.New("integrate: at least two samples are required")
	ErrNonIncreasingX = errors.New("integrate: x must be strictly increasing")
)

func validate(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(y) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSamples, len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return fmt.Errorf("%w: x[%d]=%v, x[%d]=%v", ErrNonIncreasingX, i-1, x[i-1], i, x[i])
		}
	}
	return nil
}

// CumulativeTrapezoid integrates y over x with the trapezoidal rule.
func CumulativeTrapezoid(x, y []float64) ([]float64, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}

	out := make([]float64, len(y)-1)
	var acc float64
	for i := range out {
		acc += 0.5 * (x[i+1] - x[i]) * (y[i] + y[i+1])
		out[i] = acc
	}
	return out, nil
}

// Trapezoid returns the total trapezoidal integral of y over x.
func Trapezoid(x, y []float64) (float64, error) {
	c, err := CumulativeTrapezoid(x, y)
	if err != nil {
		return 0, err
	}
	return c[len(c)-1], nil
}

// CumulativeSimpson integrates y over x with Simpson's rule for unevenly
// spaced samples. Every subinterval is integrated under the quadratic
// through three neighbouring samples: even subintervals use the triple that
// starts at them, odd ones the triple that ends at them, and the last
// subinterval always uses the final triple. With only two samples the
// result falls back to the trapezoidal rule.
func CumulativeSimpson(x, y []float64) ([]float64, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}
	n := len(y)
	if n < 3 {
		return CumulativeTrapezoid(x, y)
	}

	out := make([]float64, n-1)
	var acc float64
	for i := range out {
		var part float64
		switch {
		case i == n-2:
			part = secondInterval(x, y, n-3)
		case i%2 == 0:
			part = firstInterval(x, y, i)
		default:
			part = secondInterval(x, y, i-1)
		}
		acc += part
		out[i] = acc
	}
	return out, nil
}

// Simpson returns the total Simpson integral of y over x.
func Simpson(x, y []float64) (float64, error) {
	c, err := CumulativeSimpson(x, y)
	if err != nil {
		return 0, err
	}
	return c[len(c)-1], nil
}

// firstInterval integrates the quadratic through samples k, k+1, k+2 over
// [x[k], x[k+1]].
func firstInterval(x, y []float64, k int) float64 {
	return quadraticHead(y[k], y[k+1], y[k+2], x[k+1]-x[k], x[k+2]-x[k+1])
}

// secondInterval integrates the quadratic through samples k, k+1, k+2 over
// [x[k+1], x[k+2]].
func secondInterval(x, y []float64, k int) float64 {
	return quadraticHead(y[k+2], y[k+1], y[k], x[k+2]-x[k+1], x[k+1]-x[k])
}

// quadraticHead integrates the quadratic through (0, f1), (h1, f2),
// (h1+h2, f3) over [0, h1].
func quadraticHead(f1, f2, f3, h1, h2 float64) float64 {
	h31 := h1 + h2
	r31 := h1 / h31
	r32 := h1 / h2
	rr := r31 * r32

	return h1 / 6 * ((3-r31)*f1 + (3+rr+r31)*f2 - rr*f3)
}
