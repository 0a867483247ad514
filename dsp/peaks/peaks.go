package peaks

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by Find and the measurement helpers.
var (
	ErrInvalidDistance  = errors.New("peaks: distance must be >= 1")
	ErrInvalidRelHeight = errors.New("peaks: relative height must be >= 0")
	ErrIndexOutOfRange  = errors.New("peaks: peak index out of range")
	ErrLengthMismatch   = errors.New("peaks: argument length mismatch")
)

// Set is a bit set naming measurement bundles in a Properties value.
type Set uint8

const (
	// SetProminence covers Prominence, LeftBase and RightBase.
	SetProminence Set = 1 << iota
	// SetWidth covers Width, WidthHeight, LeftIP and RightIP.
	SetWidth
)

// Properties holds per-peak measurements.
type Properties struct {
	Prominence float64
	LeftBase   int
	RightBase  int

	Width       float64
	WidthHeight float64
	LeftIP      float64
	RightIP     float64

	computed Set
}

// Has reports whether all bundles in s were measured.
func (p Properties) Has(s Set) bool { return p.computed&s == s }

// Peak is a detected peak: its sample index and measurements.
type Peak struct {
	Index      int
	Properties Properties
}

// Options selects which filters Find applies. Zero values disable a
// filter, except that a positive Width always implies prominence is
// measured because widths are taken relative to it.
type Options struct {
	// Distance is the minimum horizontal distance in samples between
	// neighbouring peaks. Values <= 1 disable the filter.
	Distance int
	// Prominence is the minimum required prominence. A zero value with
	// MeasureProminence still fills the prominence bundle.
	Prominence float64
	// Width is the minimum required width in samples.
	Width float64
	// RelHeight is the fraction of prominence below the apex at which
	// width is measured. Zero selects 0.5 (full width at half maximum).
	RelHeight float64

	MeasureProminence bool
	MeasureWidth      bool
}

const defaultRelHeight = 0.5

// Find returns the peaks of x that pass the filters in opts, in ascending
// index order.
func Find(x []float64, opts Options) ([]Peak, error) {
	if opts.Distance < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDistance, opts.Distance)
	}
	relHeight := opts.RelHeight
	if relHeight < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRelHeight, relHeight)
	}
	if relHeight == 0 {
		relHeight = defaultRelHeight
	}

	idx := LocalMaxima(x)

	if opts.Distance > 1 {
		idx = selectByDistance(x, idx, opts.Distance)
	}

	wantWidth := opts.MeasureWidth || opts.Width > 0
	wantProm := opts.MeasureProminence || opts.Prominence > 0 || wantWidth

	out := make([]Peak, len(idx))
	for i, p := range idx {
		out[i].Index = p
	}
	if !wantProm {
		return out, nil
	}

	measureProminences(x, out)
	if opts.Prominence > 0 {
		out = keep(out, func(p Peak) bool { return p.Properties.Prominence >= opts.Prominence })
	}
	if !wantWidth {
		return out, nil
	}

	measureWidths(x, out, relHeight)
	if opts.Width > 0 {
		out = keep(out, func(p Peak) bool { return p.Properties.Width >= opts.Width })
	}

	return out, nil
}

// LocalMaxima returns the indices of all samples strictly higher than their
// neighbours. A flat top of several equal samples is reported once, at the
// midpoint (rounded down). The first and last sample never qualify.
func LocalMaxima(x []float64) []int {
	var out []int
	iMax := len(x) - 1

	for i := 1; i < iMax; i++ {
		if !(x[i-1] < x[i]) {
			continue
		}

		ahead := i + 1
		for ahead < iMax && x[ahead] == x[i] {
			ahead++
		}

		if x[ahead] < x[i] {
			out = append(out, (i+ahead-1)/2)
			i = ahead
		}
	}

	return out
}

// selectByDistance keeps the highest peaks first and removes every lower
// peak within distance samples of a kept one.
func selectByDistance(x []float64, idx []int, distance int) []int {
	order := make([]int, len(idx))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[idx[order[a]]] < x[idx[order[b]]] })

	kept := make([]bool, len(idx))
	for i := range kept {
		kept[i] = true
	}

	for i := len(order) - 1; i >= 0; i-- {
		j := order[i]
		if !kept[j] {
			continue
		}
		for k := j - 1; k >= 0 && idx[j]-idx[k] < distance; k-- {
			kept[k] = false
		}
		for k := j + 1; k < len(idx) && idx[k]-idx[j] < distance; k++ {
			kept[k] = false
		}
	}

	out := idx[:0:0]
	for i, p := range idx {
		if kept[i] {
			out = append(out, p)
		}
	}
	return out
}

func keep(in []Peak, pred func(Peak) bool) []Peak {
	out := in[:0]
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Prominences measures the prominence of each index in idx and returns
// prominences with their left and right bases.
func Prominences(x []float64, idx []int) (prom []float64, left, right []int, err error) {
	ps := make([]Peak, len(idx))
	for i, p := range idx {
		if p < 0 || p >= len(x) {
			return nil, nil, nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, p, len(x))
		}
		ps[i].Index = p
	}

	measureProminences(x, ps)

	prom = make([]float64, len(ps))
	left = make([]int, len(ps))
	right = make([]int, len(ps))
	for i, p := range ps {
		prom[i] = p.Properties.Prominence
		left[i] = p.Properties.LeftBase
		right[i] = p.Properties.RightBase
	}
	return prom, left, right, nil
}

func measureProminences(x []float64, ps []Peak) {
	for n := range ps {
		peak := ps[n].Index
		props := &ps[n].Properties
		height := x[peak]

		props.LeftBase = peak
		leftMin := height
		for i := peak; i >= 0 && x[i] <= height; i-- {
			if x[i] < leftMin {
				leftMin = x[i]
				props.LeftBase = i
			}
		}

		props.RightBase = peak
		rightMin := height
		for i := peak; i < len(x) && x[i] <= height; i++ {
			if x[i] < rightMin {
				rightMin = x[i]
				props.RightBase = i
			}
		}

		props.Prominence = height - math.Max(leftMin, rightMin)
		props.computed |= SetProminence
	}
}

// Widths measures peak widths at relHeight of each peak's prominence.
// prom, left and right are the outputs of Prominences for the same idx.
func Widths(x []float64, idx []int, prom []float64, left, right []int, relHeight float64) (widths, heights, leftIPs, rightIPs []float64, err error) {
	if len(prom) != len(idx) || len(left) != len(idx) || len(right) != len(idx) {
		return nil, nil, nil, nil, ErrLengthMismatch
	}
	if relHeight < 0 {
		return nil, nil, nil, nil, fmt.Errorf("%w: got %v", ErrInvalidRelHeight, relHeight)
	}

	ps := make([]Peak, len(idx))
	for i, p := range idx {
		if p < 0 || p >= len(x) {
			return nil, nil, nil, nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, p, len(x))
		}
		ps[i] = Peak{Index: p, Properties: Properties{Prominence: prom[i], LeftBase: left[i], RightBase: right[i]}}
	}

	measureWidths(x, ps, relHeight)

	n := len(ps)
	widths, heights = make([]float64, n), make([]float64, n)
	leftIPs, rightIPs = make([]float64, n), make([]float64, n)
	for i, p := range ps {
		widths[i] = p.Properties.Width
		heights[i] = p.Properties.WidthHeight
		leftIPs[i] = p.Properties.LeftIP
		rightIPs[i] = p.Properties.RightIP
	}
	return widths, heights, leftIPs, rightIPs, nil
}

func measureWidths(x []float64, ps []Peak, relHeight float64) {
	for n := range ps {
		peak := ps[n].Index
		props := &ps[n].Properties
		iMin, iMax := props.LeftBase, props.RightBase

		height := x[peak] - props.Prominence*relHeight
		props.WidthHeight = height

		i := peak
		for iMin < i && height < x[i] {
			i--
		}
		leftIP := float64(i)
		if x[i] < height {
			leftIP += (height - x[i]) / (x[i+1] - x[i])
		}

		i = peak
		for i < iMax && height < x[i] {
			i++
		}
		rightIP := float64(i)
		if x[i] < height {
			rightIP -= (height - x[i]) / (x[i-1] - x[i])
		}

		props.LeftIP = leftIP
		props.RightIP = rightIP
		props.Width = rightIP - leftIP
		props.computed |= SetWidth
	}
}
