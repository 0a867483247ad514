package chromatogram

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-chrom/dsp/core"
	"github.com/cwbudde/algo-chrom/dsp/filter/savgol"
	"github.com/cwbudde/algo-chrom/dsp/peaks"
	"github.com/cwbudde/algo-chrom/dsp/poly"
)

// Names of derived columns.
const (
	SmoothedPrefix          = "Smoothed "
	BaselineColumn          = "Estimated Baseline"
	BaselineCorrectedColumn = "Baseline Corrected Value"
	ShiftedPrefix           = "Shifted "
)

// Candidate is a detected peak centre and its detection measurements,
// held until the trace is final and the Peak can be built.
type Candidate struct {
	Center     int
	Properties peaks.Properties
}

// Truncate removes the solvent front and late elution regions enabled in
// cfg. Both limits are relative to the maximum time before truncation. The
// returned trace is renumbered from zero.
func Truncate(sig Signal, cfg Config) (Signal, error) {
	if !cfg.RemoveSolventFront && !cfg.RemoveLateElution {
		return sig, nil
	}

	x := sig.x()
	if len(x) == 0 {
		return sig, nil
	}
	maxX := core.Max(x)
	lower := cfg.SolventFrontFactor * maxX
	upper := maxX - cfg.LateElutionFactor*maxX

	t := sig.Trace.SelectRows(func(i int) bool {
		if cfg.RemoveSolventFront && x[i] <= lower {
			return false
		}
		if cfg.RemoveLateElution && x[i] >= upper {
			return false
		}
		return true
	})

	return Signal{Trace: t, X: sig.X, Y: sig.Y}, nil
}

// Smooth applies the configured smoothing filter to the response and
// returns a Signal pointing at the "Smoothed <Y>" column.
func Smooth(sig Signal, cfg Config) (Signal, error) {
	if _, err := ParseSmoothingFilter(string(cfg.SmoothingFilter)); err != nil {
		return Signal{}, err
	}

	f, err := savgol.New(cfg.MinPeakWidth, cfg.BaselinePolyOrder)
	if err != nil {
		return Signal{}, fmt.Errorf("%w: smoothing: %w", ErrConfiguration, err)
	}

	smoothed, err := f.Apply(sig.y())
	if err != nil {
		// A window longer than the trace is both a numerical failure and a
		// configuration that does not fit the input.
		return Signal{}, fmt.Errorf("%w: %w: smoothing %d samples: %w", ErrNumerical, ErrConfiguration, sig.Len(), err)
	}

	return sig.derive(SmoothedPrefix+sig.Y, smoothed)
}

// DetectPeakCenters finds peak centres in the active response, in ascending
// order. Prominence and width measurements are always attached.
func DetectPeakCenters(sig Signal, cfg Config) ([]Candidate, error) {
	found, err := peaks.Find(sig.y(), peaks.Options{
		Distance:          cfg.MinPeakDistance,
		Width:             float64(cfg.MinPeakWidth),
		Prominence:        cfg.PeakProminence,
		MeasureProminence: true,
		MeasureWidth:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: peak detection: %w", ErrConfiguration, err)
	}

	out := make([]Candidate, len(found))
	for i, p := range found {
		out[i] = Candidate{Center: p.Index, Properties: p.Properties}
	}
	return out, nil
}

// CorrectBaseline fits a polynomial of degree cfg.BaselinePolyOrder to the
// samples outside [c-w, c+w) around every candidate centre c, where w is
// cfg.MinPeakWidth, and subtracts it from the response. The fitted baseline
// is kept in the "Estimated Baseline" column; the returned Signal points at
// "Baseline Corrected Value".
func CorrectBaseline(sig Signal, candidates []Candidate, cfg Config) (Signal, error) {
	x, y := sig.x(), sig.y()
	n := len(x)

	centers := make([]int, len(candidates))
	for i, c := range candidates {
		centers[i] = c.Center
	}
	excluded := exclusionMask(n, centers, cfg.MinPeakWidth)

	var fx, fy []float64
	for i := range x {
		if !excluded[i] {
			fx = append(fx, x[i])
			fy = append(fy, y[i])
		}
	}

	coeffs, err := poly.Fit(fx, fy, cfg.BaselinePolyOrder)
	if err != nil {
		if errors.Is(err, poly.ErrInvalidDegree) {
			return Signal{}, fmt.Errorf("%w: baseline: %w", ErrConfiguration, err)
		}
		return Signal{}, fmt.Errorf("%w: baseline fit over %d of %d samples: %w", ErrNumerical, len(fx), n, err)
	}

	baseline := make([]float64, n)
	poly.EvalTo(baseline, coeffs, x)

	withBaseline, err := sig.derive(BaselineColumn, baseline)
	if err != nil {
		return Signal{}, err
	}

	corrected := core.Clone(y)
	negated := make([]float64, n)
	vecmath.ScaleBlock(negated, baseline, -1)
	vecmath.AddBlockInPlace(corrected, negated)

	return withBaseline.derive(BaselineCorrectedColumn, corrected)
}

// exclusionMask marks the samples in [c-w, c+w) around every centre c,
// clipped to [0, n).
func exclusionMask(n int, centers []int, w int) []bool {
	excluded := make([]bool, n)
	for _, c := range centers {
		for i := max(c-w, 0); i < min(c+w, n); i++ {
			excluded[i] = true
		}
	}
	return excluded
}

// Shift subtracts the minimum of the active response so that its smallest
// value is exactly zero, returning a Signal pointing at "Shifted <Y>".
func Shift(sig Signal) (Signal, error) {
	y := sig.y()
	if len(y) == 0 {
		return Signal{}, fmt.Errorf("%w: shifting an empty trace", ErrNumerical)
	}

	lo := core.Min(y)
	shifted := make([]float64, len(y))
	for i, v := range y {
		shifted[i] = v - lo
	}

	return sig.derive(ShiftedPrefix+sig.Y, shifted)
}
