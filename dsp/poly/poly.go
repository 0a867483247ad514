package poly

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Fit.
var (
	ErrEmptyInput      = errors.New("poly: empty input")
	ErrLengthMismatch  = errors.New("poly: x and y length mismatch")
	ErrInvalidDegree   = errors.New("poly: degree must be >= 0")
	ErrUnderdetermined = errors.New("poly: fewer points than coefficients")
	ErrRankDeficient   = errors.New("poly: design matrix is rank deficient")
	ErrNonFinite       = errors.New("poly: non-finite input")
)

// rankTolerance is the smallest pivot, relative to the largest, that Fit
// accepts as independent.
const rankTolerance = 1e-12

// Fit returns the ascending coefficients of the degree-deg polynomial that
// minimises the squared error to the points (x[i], y[i]).
func Fit(x, y []float64, deg int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if deg < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, deg)
	}

	m, n := len(x), deg+1
	if m < n {
		return nil, fmt.Errorf("%w: %d points for degree %d", ErrUnderdetermined, m, deg)
	}

	// Column-major Vandermonde matrix and right-hand side.
	a := make([][]float64, n)
	for j := range a {
		a[j] = make([]float64, m)
	}
	b := make([]float64, m)
	for i, xi := range x {
		if math.IsNaN(xi) || math.IsInf(xi, 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		p := 1.0
		for j := 0; j < n; j++ {
			a[j][i] = p
			p *= xi
		}
		b[i] = y[i]
	}

	scale := make([]float64, n)
	for j, col := range a {
		s := norm(col)
		if s == 0 {
			return nil, fmt.Errorf("%w: column %d is zero", ErrRankDeficient, j)
		}
		for i := range col {
			col[i] /= s
		}
		scale[j] = s
	}

	diag := make([]float64, n)
	v := make([]float64, m)
	for k := 0; k < n; k++ {
		alpha := norm(a[k][k:])
		if a[k][k] > 0 {
			alpha = -alpha
		}
		diag[k] = alpha

		vv := 0.0
		for i := k; i < m; i++ {
			v[i] = a[k][i]
			if i == k {
				v[i] -= alpha
			}
			vv += v[i] * v[i]
		}
		if vv == 0 {
			continue
		}

		for j := k; j < n; j++ {
			reflect(a[j], v, vv, k)
		}
		reflect(b, v, vv, k)
	}

	maxDiag := 0.0
	for _, d := range diag {
		maxDiag = math.Max(maxDiag, math.Abs(d))
	}
	tol := rankTolerance * maxDiag
	for k, d := range diag {
		if math.Abs(d) <= tol {
			return nil, fmt.Errorf("%w: pivot %d is %.3g", ErrRankDeficient, k, d)
		}
	}

	// Back-substitution on the upper-triangular R stored in a[j][k], j >= k.
	c := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		sum := b[k]
		for j := k + 1; j < n; j++ {
			sum -= a[j][k] * c[j]
		}
		c[k] = sum / diag[k]
	}

	for j := range c {
		c[j] /= scale[j]
	}

	return c, nil
}

// reflect applies the Householder reflector I - 2vv'/vv to col[k:].
func reflect(col, v []float64, vv float64, k int) {
	dot := 0.0
	for i := k; i < len(col); i++ {
		dot += v[i] * col[i]
	}
	f := 2 * dot / vv
	for i := k; i < len(col); i++ {
		col[i] -= f * v[i]
	}
}

func norm(x []float64) float64 {
	// Scaled to avoid overflow for large abscissae at high degree.
	var maxAbs float64
	for _, v := range x {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	if maxAbs == 0 {
		return 0
	}
	var ss float64
	for _, v := range x {
		r := v / maxAbs
		ss += r * r
	}
	return maxAbs * math.Sqrt(ss)
}

// Eval evaluates the polynomial with ascending coefficients c at x using
// Horner's scheme. An empty coefficient slice evaluates to 0.
func Eval(c []float64, x float64) float64 {
	var y float64
	for i := len(c) - 1; i >= 0; i-- {
		y = y*x + c[i]
	}
	return y
}

// EvalTo evaluates c at every element of x and writes the results to dst,
// which must be at least len(x) long.
func EvalTo(dst []float64, c, x []float64) {
	for i, xi := range x {
		dst[i] = Eval(c, xi)
	}
}
