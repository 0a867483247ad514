package noise

import "math"

// Summary describes the samples of a baseline region.
type Summary struct {
	Length int
	Mean   float64
	// StdDev is the population standard deviation.
	StdDev float64
	Min    float64
	Max    float64
}

// PeakToPeak returns Max - Min, or 0 for an empty summary.
func (s Summary) PeakToPeak() float64 {
	if s.Length == 0 {
		return 0
	}
	return s.Max - s.Min
}

// Summarize computes the summary of x in one pass.
func Summarize(x []float64) Summary {
	var a Accumulator
	a.Update(x)
	return a.Result()
}

// Accumulator collects a Summary incrementally across blocks of samples.
// The zero value is ready to use.
type Accumulator struct {
	n        int
	mean, m2 float64
	min, max float64
}

// Update adds samples to the running summary.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		if a.n == 0 {
			a.min, a.max = x, x
		} else {
			a.min = math.Min(a.min, x)
			a.max = math.Max(a.max, x)
		}

		a.n++
		delta := x - a.mean
		a.mean += delta / float64(a.n)
		a.m2 += delta * (x - a.mean)
	}
}

// Len returns the number of samples seen.
func (a *Accumulator) Len() int { return a.n }

// Result returns the summary of all samples seen so far.
func (a *Accumulator) Result() Summary {
	if a.n == 0 {
		return Summary{}
	}
	return Summary{
		Length: a.n,
		Mean:   a.mean,
		StdDev: math.Sqrt(a.m2 / float64(a.n)),
		Min:    a.min,
		Max:    a.max,
	}
}

// SignalToNoise returns 2*height/h, where h is the peak-to-peak noise of s.
// A noiseless baseline gives +Inf for a positive height.
func SignalToNoise(height float64, s Summary) float64 {
	h := s.PeakToPeak()
	if h == 0 {
		if height == 0 {
			return 0
		}
		return math.Copysign(math.Inf(1), height)
	}
	return 2 * height / h
}
