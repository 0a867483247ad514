package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-chrom/dsp/core"
)

// Errors returned by Window.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyWeights   = errors.New("conv: empty weights")
	ErrWindowTooLong  = errors.New("conv: window longer than input")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// fftThreshold is the longest window evaluated in the time domain.
const fftThreshold = 64

// Window is a prepared weight vector. A Window is not safe for concurrent
// use.
type Window struct {
	weights []float64
	fft     *overlapAdd
	scratch []float64
}

// NewWindow prepares weights for repeated use. The weights are copied.
func NewWindow(weights []float64) (*Window, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyWeights
	}

	w := &Window{weights: core.Clone(weights)}
	if len(weights) > fftThreshold {
		// Correlation is convolution with the reversed weights.
		fft, err := newOverlapAdd(core.Reverse(weights))
		if err != nil {
			return nil, err
		}
		w.fft = fft
	}

	return w, nil
}

// Len returns the number of weights.
func (w *Window) Len() int { return len(w.weights) }

// Weights returns a copy of the weights.
func (w *Window) Weights() []float64 { return core.Clone(w.weights) }

// OutputLen returns the number of positions at which the window fits inside
// a signal of n samples, or 0 if it does not fit.
func (w *Window) OutputLen(n int) int { return max(n-len(w.weights)+1, 0) }

// Valid returns
//
//	out[k] = sum_j signal[k+j] * weights[j],  k = 0 .. len(signal)-len(weights)
//
// The weights are not reversed, so asymmetric windows keep their
// orientation.
func (w *Window) Valid(signal []float64) ([]float64, error) {
	if err := w.check(signal); err != nil {
		return nil, err
	}
	out := make([]float64, w.OutputLen(len(signal)))
	return out, w.apply(out, signal)
}

// ValidTo is Valid writing into dst, which must hold OutputLen(len(signal))
// values.
func (w *Window) ValidTo(dst, signal []float64) error {
	if err := w.check(signal); err != nil {
		return err
	}
	if want := w.OutputLen(len(signal)); len(dst) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(dst))
	}
	return w.apply(dst, signal)
}

func (w *Window) check(signal []float64) error {
	if len(signal) == 0 {
		return ErrEmptyInput
	}
	if len(w.weights) > len(signal) {
		return fmt.Errorf("%w: %d weights, %d samples", ErrWindowTooLong, len(w.weights), len(signal))
	}
	return nil
}

func (w *Window) apply(dst, signal []float64) error {
	if w.fft == nil {
		w.direct(dst, signal)
		return nil
	}

	m := len(w.weights)
	full := w.buffer(len(signal) + m - 1)
	if err := w.fft.convolve(full, signal); err != nil {
		return err
	}
	copy(dst, full[m-1:])
	return nil
}

// direct accumulates weights[j] * signal[j:j+n] for every tap j.
func (w *Window) direct(dst, signal []float64) {
	n := len(dst)
	for i := range dst {
		dst[i] = 0
	}

	tmp := w.buffer(n)
	for j, wj := range w.weights {
		if wj == 0 {
			continue
		}
		vecmath.ScaleBlock(tmp, signal[j:j+n], wj)
		vecmath.AddBlockInPlace(dst, tmp)
	}
}

func (w *Window) buffer(n int) []float64 {
	w.scratch = core.EnsureLen(w.scratch, n)
	return w.scratch
}

// CorrelateValid is a one-shot Window.Valid.
func CorrelateValid(signal, weights []float64) ([]float64, error) {
	w, err := NewWindow(weights)
	if err != nil {
		return nil, err
	}
	return w.Valid(signal)
}
