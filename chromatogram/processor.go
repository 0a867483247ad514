package chromatogram

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-chrom/dsp/core"
	"github.com/cwbudde/algo-chrom/stats/noise"
)

// Processor runs the preprocessing pipeline over a trace and owns the
// resulting peaks.
type Processor struct {
	cfg    Config
	logger *slog.Logger

	raw    Signal
	signal Signal
	peaks  []*Peak

	preprocessed bool
}

// NewProcessor validates the options and the x/y columns of trace. The x
// column must be strictly increasing and the y column finite.
func NewProcessor(trace *Trace, x, y string, opts ...Option) (*Processor, error) {
	s := applyOptions(opts)
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	sig, err := NewSignal(trace, x, y)
	if err != nil {
		return nil, err
	}
	if !core.StrictlyIncreasing(sig.x()) {
		return nil, fmt.Errorf("%w: column %q is not strictly increasing", ErrPrecondition, x)
	}
	if !core.IsFinite(sig.y()) {
		return nil, fmt.Errorf("%w: column %q holds NaN or Inf values", ErrPrecondition, y)
	}

	return &Processor{cfg: s.cfg, logger: s.logger, raw: sig, signal: sig}, nil
}

// Config returns the processing parameters.
func (p *Processor) Config() Config { return p.cfg }

// Signal returns the current signal: the raw input before Preprocess, the
// final corrected trace afterwards.
func (p *Processor) Signal() Signal { return p.signal }

// Trace returns the trace of Signal, including every derived column.
func (p *Processor) Trace() *Trace { return p.signal.Trace }

// Peaks returns the detected peaks in ascending centre order.
func (p *Processor) Peaks() []*Peak { return p.peaks }

// Preprocess truncates, smooths, detects peak centres and, if enabled,
// corrects and shifts the baseline. Peaks are built from the final trace.
// Calling Preprocess again starts over from the raw input.
func (p *Processor) Preprocess() error {
	p.preprocessed = false
	p.peaks = nil

	sig, err := Truncate(p.raw, p.cfg)
	if err != nil {
		return err
	}
	p.logger.Debug("truncated chromatogram",
		"rows_before", p.raw.Len(), "rows_after", sig.Len())

	sig, err = Smooth(sig, p.cfg)
	if err != nil {
		return err
	}
	p.logger.Debug("smoothed chromatogram",
		"filter", p.cfg.SmoothingFilter, "window", p.cfg.MinPeakWidth, "column", sig.Y)

	candidates, err := DetectPeakCenters(sig, p.cfg)
	if err != nil {
		return err
	}
	p.logger.Debug("detected peak centers", "count", len(candidates))

	if p.cfg.BaselineCorrection {
		sig, err = CorrectBaseline(sig, candidates, p.cfg)
		if err != nil {
			return err
		}
		sig, err = Shift(sig)
		if err != nil {
			return err
		}
		p.logger.Debug("corrected baseline",
			"order", p.cfg.BaselinePolyOrder, "column", sig.Y)
	}

	methods := PeakMethods{Border: p.cfg.BorderMethod, Integration: p.cfg.IntegrationMethod}
	built := make([]*Peak, 0, len(candidates))
	for _, c := range candidates {
		pk, err := NewPeak(sig, c.Center, c.Properties, methods)
		if err != nil {
			return err
		}
		built = append(built, pk)
	}

	p.signal = sig
	p.peaks = built
	p.preprocessed = true
	return nil
}

// IntegratePeaks resolves borders and integrates the area of every peak.
// Peaks are processed concurrently. If any peak fails, the areas of all
// peaks are discarded and the error of the first failing peak in centre
// order is returned.
func (p *Processor) IntegratePeaks() error {
	if !p.preprocessed {
		return fmt.Errorf("%w: integrate peaks before preprocessing", ErrPrecondition)
	}

	errs := make([]error, len(p.peaks))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pk := range p.peaks {
		g.Go(func() error {
			if err := pk.DefineBorders(); err != nil {
				errs[i] = err
				return err
			}
			errs[i] = pk.Integrate()
			return errs[i]
		})
	}
	if g.Wait() == nil {
		p.logger.Debug("integrated peaks",
			"count", len(p.peaks), "border_method", p.cfg.BorderMethod, "integration_method", p.cfg.IntegrationMethod)
		return nil
	}

	for _, pk := range p.peaks {
		pk.discardArea()
	}
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("peak %d (center %d): %w", i, p.peaks[i].Center(), err)
		}
	}
	return nil
}

// Noise summarises the final response outside the windows excluded from
// the baseline fit, i.e. [c-w, c+w) around every peak centre c with w the
// minimum peak width.
func (p *Processor) Noise() (noise.Summary, error) {
	if !p.preprocessed {
		return noise.Summary{}, fmt.Errorf("%w: noise requested before preprocessing", ErrPrecondition)
	}

	y := p.signal.y()
	centers := make([]int, len(p.peaks))
	for i, pk := range p.peaks {
		centers[i] = pk.Center()
	}
	excluded := exclusionMask(len(y), centers, p.cfg.MinPeakWidth)

	var acc noise.Accumulator
	start := -1
	for i := 0; i <= len(y); i++ {
		inside := i < len(y) && !excluded[i]
		switch {
		case inside && start < 0:
			start = i
		case !inside && start >= 0:
			acc.Update(y[start:i])
			start = -1
		}
	}
	if acc.Len() == 0 {
		return noise.Summary{}, fmt.Errorf("%w: no baseline samples outside %d peak windows", ErrNumerical, len(centers))
	}

	return acc.Result(), nil
}

// Run calls Preprocess followed by IntegratePeaks.
func (p *Processor) Run() error {
	if err := p.Preprocess(); err != nil {
		return err
	}
	return p.IntegratePeaks()
}
