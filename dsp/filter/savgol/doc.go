// Package savgol implements Savitzky-Golay smoothing.
//
// A Savitzky-Golay filter replaces each sample by the value of a polynomial
// of degree order fitted by least squares to the window samples around it.
// For a fixed window and order this is a linear FIR operation, so [New]
// precomputes the weights once and [Filter.Apply] runs them across the
// signal with dsp/conv.
//
// Samples closer than half a window to either end have no full window
// around them. Those are taken from a polynomial fitted to the first and
// last window respectively (scipy's "interp" edge mode).
//
// Odd windows are centred on the output sample. An even window has no
// centre sample: interior output i is the fit over x[i-window/2+1] ..
// x[i+window/2] evaluated at i+0.5, as scipy does. Edge samples are still
// evaluated at whole-sample positions.
package savgol
