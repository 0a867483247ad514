package savgol

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-chrom/dsp/conv"
	"github.com/cwbudde/algo-chrom/dsp/poly"
)

// Errors returned by New and Apply.
var (
	ErrInvalidWindow = errors.New("savgol: window length must be >= 1")
	ErrInvalidOrder  = errors.New("savgol: polynomial order must be >= 0 and less than the window length")
	ErrWindowTooLong = errors.New("savgol: window length exceeds signal length")
)

// Filter is a Savitzky-Golay smoother with fixed window length and
// polynomial order.
type Filter struct {
	window int
	order  int
	coeffs []float64
	engine *conv.Window
}

// New designs a Savitzky-Golay filter.
func New(window, order int) (*Filter, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if order < 0 || order >= window {
		return nil, fmt.Errorf("%w: order %d, window %d", ErrInvalidOrder, order, window)
	}

	coeffs, err := Coefficients(window, order)
	if err != nil {
		return nil, err
	}

	engine, err := conv.NewWindow(coeffs)
	if err != nil {
		return nil, fmt.Errorf("savgol: %w", err)
	}

	return &Filter{window: window, order: order, coeffs: coeffs, engine: engine}, nil
}

// Window returns the window length in samples.
func (f *Filter) Window() int { return f.window }

// Order returns the polynomial order.
func (f *Filter) Order() int { return f.order }

// Coefficients returns a copy of the smoothing weights. See the package-level
// Coefficients for their layout.
func (f *Filter) Coefficients() []float64 {
	out := make([]float64, len(f.coeffs))
	copy(out, f.coeffs)
	return out
}

// Apply smooths x and returns a new slice of the same length. A Filter is
// not safe for concurrent use.
func (f *Filter) Apply(x []float64) ([]float64, error) {
	n := len(x)
	if f.window > n {
		return nil, fmt.Errorf("%w: window %d, %d samples", ErrWindowTooLong, f.window, n)
	}

	half := f.window / 2
	out := make([]float64, n)

	// Interior output i uses x[i-half+skip : i-half+skip+window]. An even
	// window has no centre sample and is evaluated half a sample to the
	// right of i.
	skip := 1 - f.window%2
	if interior := out[half : n-half]; len(interior) > 0 {
		if err := f.engine.ValidTo(interior, x[skip:]); err != nil {
			return nil, fmt.Errorf("savgol: %w", err)
		}
	}

	head, err := fitWindow(x[:f.window], f.order)
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		out[i] = poly.Eval(head, float64(i))
	}

	start := n - f.window
	tail, err := fitWindow(x[start:], f.order)
	if err != nil {
		return nil, err
	}
	for i := n - half; i < n; i++ {
		out[i] = poly.Eval(tail, float64(i-start))
	}

	return out, nil
}

// Smooth is a convenience wrapper around New and Apply.
func Smooth(x []float64, window, order int) ([]float64, error) {
	f, err := New(window, order)
	if err != nil {
		return nil, err
	}
	return f.Apply(x)
}

// Coefficients returns the Savitzky-Golay weights for a window of the given
// length. Weight j multiplies the window sample at position j - (window-1)/2
// relative to the evaluation point, which falls between two samples when
// window is even.
func Coefficients(window, order int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if order < 0 || order >= window {
		return nil, fmt.Errorf("%w: order %d, window %d", ErrInvalidOrder, order, window)
	}

	pos := float64(window-1) / 2
	t := make([]float64, window)
	for j := range t {
		t[j] = float64(j) - pos
	}

	// The smoothed value is linear in the window samples; fitting each unit
	// vector and reading the constant term yields its weight.
	coeffs := make([]float64, window)
	unit := make([]float64, window)
	for j := range coeffs {
		unit[j] = 1
		c, err := poly.Fit(t, unit, order)
		if err != nil {
			return nil, fmt.Errorf("savgol: designing weights: %w", err)
		}
		coeffs[j] = c[0]
		unit[j] = 0
	}

	return coeffs, nil
}

// fitWindow fits a polynomial to samples at positions 0..len(y)-1.
func fitWindow(y []float64, order int) ([]float64, error) {
	t := make([]float64, len(y))
	for i := range t {
		t[i] = float64(i)
	}

	c, err := poly.Fit(t, y, order)
	if err != nil {
		return nil, fmt.Errorf("savgol: edge fit: %w", err)
	}
	return c, nil
}
