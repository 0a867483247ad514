package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates intercept + slope*i for i in [0, length).
func Ramp(intercept, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = intercept + slope*float64(i)
	}
	return out
}

// GaussianPeak generates amplitude*exp(-(i-center)^2 / (2*sigma^2)) sampled at
// integer positions.
func GaussianPeak(length int, center, sigma, amplitude float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := (float64(i) - center) / sigma
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}
	return out
}

// Sum adds the given signals element-wise. All inputs must share the length
// of the first one.
func Sum(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// TimeAxis returns start + step*i for i in [0, length), a sampled retention
// time axis.
func TimeAxis(start, step float64, length int) []float64 {
	return Ramp(start, step, length)
}
