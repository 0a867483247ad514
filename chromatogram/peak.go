package chromatogram

import (
	"fmt"

	"github.com/cwbudde/algo-chrom/dsp/integrate"
	"github.com/cwbudde/algo-chrom/dsp/peaks"
)

// GradientPadding is the number of samples skipped on each side of the apex
// before the gradient border search starts.
const GradientPadding = 10

// PeakMethods selects the border and integration algorithms of a Peak.
// Zero fields select BorderGradient and IntegrationTrapezoid.
type PeakMethods struct {
	Border      BorderMethod
	Integration IntegrationMethod
}

// Peak is a single chromatographic peak over a private copy of the trace.
type Peak struct {
	signal  Signal
	center  int
	height  float64
	props   peaks.Properties
	methods PeakMethods

	borders    [2]int
	hasBorders bool
	area       float64
	hasArea    bool
}

// NewPeak builds a peak centred at sample center of sig. The trace is deep
// copied, so later changes to sig do not affect the peak.
func NewPeak(sig Signal, center int, props peaks.Properties, methods PeakMethods) (*Peak, error) {
	if methods.Border == "" {
		methods.Border = BorderGradient
	}
	if methods.Integration == "" {
		methods.Integration = IntegrationTrapezoid
	}
	if _, err := ParseBorderMethod(string(methods.Border)); err != nil {
		return nil, err
	}
	if _, err := ParseIntegrationMethod(string(methods.Integration)); err != nil {
		return nil, err
	}

	if sig.Trace == nil || !sig.Trace.Has(sig.X) || !sig.Trace.Has(sig.Y) {
		return nil, fmt.Errorf("%w: peak signal columns %q/%q not present", ErrConfiguration, sig.X, sig.Y)
	}
	if center < 0 || center >= sig.Len() {
		return nil, fmt.Errorf("%w: peak center %d outside [0, %d)", ErrPrecondition, center, sig.Len())
	}

	own := sig.Clone()
	return &Peak{
		signal:  own,
		center:  center,
		height:  own.y()[center],
		props:   props,
		methods: methods,
	}, nil
}

// Center returns the apex sample index.
func (p *Peak) Center() int { return p.center }

// Height returns the response at the apex.
func (p *Peak) Height() float64 { return p.height }

// Time returns the retention time at the apex.
func (p *Peak) Time() float64 { return p.signal.x()[p.center] }

// Properties returns the detection measurements of the peak.
func (p *Peak) Properties() peaks.Properties { return p.props }

// Methods returns the border and integration methods in use.
func (p *Peak) Methods() PeakMethods { return p.methods }

// Signal returns the peak's private signal. It must be treated as read-only.
func (p *Peak) Signal() Signal { return p.signal }

// Borders returns the left and right border indices once DefineBorders has
// succeeded.
func (p *Peak) Borders() (left, right int, ok bool) {
	return p.borders[0], p.borders[1], p.hasBorders
}

// Area returns the integrated area once Integrate has succeeded.
func (p *Peak) Area() (float64, bool) { return p.area, p.hasArea }

// DefineBorders locates the left and right borders with the configured
// method. Any previously integrated area is discarded.
func (p *Peak) DefineBorders() error {
	var left, right int

	switch p.methods.Border {
	case BorderGradient:
		left, right = gradientBorders(p.signal.y(), p.center, GradientPadding)
	case BorderFWHM:
		if !p.props.Has(peaks.SetWidth) {
			return fmt.Errorf("%w: FWHM borders need width measurements", ErrPrecondition)
		}
		left, right = int(p.props.LeftIP), int(p.props.RightIP)
	case BorderProminence:
		if !p.props.Has(peaks.SetProminence) {
			return fmt.Errorf("%w: prominence borders need prominence measurements", ErrPrecondition)
		}
		left, right = p.props.LeftBase, p.props.RightBase
	default:
		return fmt.Errorf("%w: border detection method %q", ErrConfiguration, p.methods.Border)
	}

	p.borders = [2]int{left, right}
	p.hasBorders = true
	p.discardArea()
	return nil
}

func (p *Peak) discardArea() { p.area, p.hasArea = 0, false }

// gradientBorders scans outwards from center±padding for the first sample
// whose gradient has turned: <= 0 on the left, >= 0 on the right. A side with
// no such sample keeps the centre as its border. The left scan stops before
// sample 0.
func gradientBorders(y []float64, center, padding int) (left, right int) {
	g := integrate.Gradient(y)
	left, right = center, center

	for i := center - padding; i > 0; i-- {
		if g[i] <= 0 {
			left = i
			break
		}
	}

	for j := center + padding; j < len(g); j++ {
		if g[j] >= 0 {
			right = j
			break
		}
	}

	return left, right
}

// Integrate computes the area over rows [left, right) with the configured
// rule. DefineBorders must have been called first.
func (p *Peak) Integrate() error {
	if !p.hasBorders {
		return fmt.Errorf("%w: peak at %d has no borders; define borders before integrating", ErrPrecondition, p.center)
	}

	left, right := p.borders[0], p.borders[1]
	if left < 0 || right > p.signal.Len() || right-left < 2 {
		return fmt.Errorf("%w: integration window [%d, %d) of peak at %d holds fewer than two samples",
			ErrNumerical, left, right, p.center)
	}

	x := p.signal.x()[left:right]
	y := p.signal.y()[left:right]

	var (
		area float64
		err  error
	)
	switch p.methods.Integration {
	case IntegrationTrapezoid:
		area, err = integrate.Trapezoid(x, y)
	case IntegrationSimpson:
		area, err = integrate.Simpson(x, y)
	default:
		return fmt.Errorf("%w: integration method %q", ErrConfiguration, p.methods.Integration)
	}
	if err != nil {
		return fmt.Errorf("%w: integrating peak at %d: %w", ErrNumerical, p.center, err)
	}

	p.area, p.hasArea = area, true
	return nil
}
