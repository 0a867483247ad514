// Package conv applies fixed weight windows to sampled traces.
//
// A Window slides a weight vector across a signal and returns the weighted
// sum at every offset where the window lies entirely inside the signal.
// Short windows are evaluated in the time domain with block multiply-add
// kernels; windows longer than 64 taps switch to FFT overlap-add.
//
// # Usage
//
//	w, err := conv.NewWindow(weights)
//	out, err := w.Valid(trace)           // len(trace) - len(weights) + 1 values
//	err = w.ValidTo(dst, trace)          // same, into a caller buffer
//	out, err := conv.CorrelateValid(trace, weights)
package conv
