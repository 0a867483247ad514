package chromatogram

import (
	"fmt"
	"log/slog"
)

// SmoothingFilter names a smoothing algorithm.
type SmoothingFilter string

// Supported smoothing filters.
const (
	FilterSavGol SmoothingFilter = "savgol"
)

// BorderMethod names a peak border detection algorithm.
type BorderMethod string

// Supported border detection methods.
const (
	// BorderGradient walks outwards from the apex until the slope flattens.
	BorderGradient BorderMethod = "gradient"
	// BorderFWHM uses the half-height crossings measured during detection.
	BorderFWHM BorderMethod = "FWHM"
	// BorderProminence uses the prominence bases measured during detection.
	BorderProminence BorderMethod = "prominence"
)

// IntegrationMethod names a numerical integration rule.
type IntegrationMethod string

// Supported integration methods.
const (
	IntegrationSimpson   IntegrationMethod = "cumulative_simpson"
	IntegrationTrapezoid IntegrationMethod = "cumulative_trapezoid"
)

// ParseSmoothingFilter validates s as a smoothing filter name.
func ParseSmoothingFilter(s string) (SmoothingFilter, error) {
	if f := SmoothingFilter(s); f == FilterSavGol {
		return f, nil
	}
	return "", fmt.Errorf("%w: smoothing filter %q, valid: [%s]", ErrConfiguration, s, FilterSavGol)
}

// ParseBorderMethod validates s as a border detection method name.
func ParseBorderMethod(s string) (BorderMethod, error) {
	switch m := BorderMethod(s); m {
	case BorderGradient, BorderFWHM, BorderProminence:
		return m, nil
	}
	return "", fmt.Errorf("%w: border detection method %q, valid: [%s %s %s]",
		ErrConfiguration, s, BorderGradient, BorderFWHM, BorderProminence)
}

// ParseIntegrationMethod validates s as an integration method name.
func ParseIntegrationMethod(s string) (IntegrationMethod, error) {
	switch m := IntegrationMethod(s); m {
	case IntegrationSimpson, IntegrationTrapezoid:
		return m, nil
	}
	return "", fmt.Errorf("%w: integration method %q, valid: [%s %s]",
		ErrConfiguration, s, IntegrationSimpson, IntegrationTrapezoid)
}

// Config holds the processing parameters.
type Config struct {
	// RemoveSolventFront drops samples with x <= SolventFrontFactor*max(x).
	RemoveSolventFront bool
	// RemoveLateElution drops samples with x >= max(x) - LateElutionFactor*max(x).
	RemoveLateElution  bool
	SolventFrontFactor float64
	LateElutionFactor  float64

	// MinPeakDistance is the minimum spacing between peak centres in samples.
	MinPeakDistance int
	// MinPeakWidth is the minimum peak width in samples. It is also the
	// smoothing window length and the half-width of the window excluded
	// around each peak when fitting the baseline.
	MinPeakWidth int
	// PeakProminence is the minimum prominence in response units. It must be
	// scaled to the amplitude of the trace by the caller.
	PeakProminence float64

	SmoothingFilter SmoothingFilter

	BaselineCorrection bool
	// BaselinePolyOrder is the degree of the baseline polynomial and the
	// order of the smoothing polynomial.
	BaselinePolyOrder int

	BorderMethod      BorderMethod
	IntegrationMethod IntegrationMethod
}

// DefaultConfig returns the standard processing parameters.
func DefaultConfig() Config {
	return Config{
		RemoveSolventFront: true,
		RemoveLateElution:  true,
		SolventFrontFactor: 0.1,
		LateElutionFactor:  0.15,
		MinPeakDistance:    15,
		MinPeakWidth:       10,
		PeakProminence:     0.3,
		SmoothingFilter:    FilterSavGol,
		BaselineCorrection: true,
		BaselinePolyOrder:  3,
		BorderMethod:       BorderGradient,
		IntegrationMethod:  IntegrationTrapezoid,
	}
}

// Validate reports the first invalid field as an ErrConfiguration.
func (c Config) Validate() error {
	if _, err := ParseSmoothingFilter(string(c.SmoothingFilter)); err != nil {
		return err
	}
	if _, err := ParseBorderMethod(string(c.BorderMethod)); err != nil {
		return err
	}
	if _, err := ParseIntegrationMethod(string(c.IntegrationMethod)); err != nil {
		return err
	}

	switch {
	case c.SolventFrontFactor < 0 || c.SolventFrontFactor >= 1:
		return fmt.Errorf("%w: solvent front factor %v not in [0, 1)", ErrConfiguration, c.SolventFrontFactor)
	case c.LateElutionFactor < 0 || c.LateElutionFactor >= 1:
		return fmt.Errorf("%w: late elution factor %v not in [0, 1)", ErrConfiguration, c.LateElutionFactor)
	case c.MinPeakDistance < 1:
		return fmt.Errorf("%w: minimum peak distance %d < 1", ErrConfiguration, c.MinPeakDistance)
	case c.MinPeakWidth < 1:
		return fmt.Errorf("%w: minimum peak width %d < 1", ErrConfiguration, c.MinPeakWidth)
	case c.PeakProminence < 0:
		return fmt.Errorf("%w: peak prominence %v < 0", ErrConfiguration, c.PeakProminence)
	case c.BaselinePolyOrder < 0:
		return fmt.Errorf("%w: baseline polynomial order %d < 0", ErrConfiguration, c.BaselinePolyOrder)
	}

	return nil
}

type settings struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*settings)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithTruncation toggles solvent front and late elution removal.
func WithTruncation(solventFront, lateElution bool) Option {
	return func(s *settings) {
		s.cfg.RemoveSolventFront = solventFront
		s.cfg.RemoveLateElution = lateElution
	}
}

// WithTruncationFactors sets the solvent front and late elution fractions
// of the maximum retention time.
func WithTruncationFactors(solventFront, lateElution float64) Option {
	return func(s *settings) {
		s.cfg.SolventFrontFactor = solventFront
		s.cfg.LateElutionFactor = lateElution
	}
}

// WithPeakDetection sets the minimum distance, width and prominence used to
// accept peak centres.
func WithPeakDetection(distance, width int, prominence float64) Option {
	return func(s *settings) {
		s.cfg.MinPeakDistance = distance
		s.cfg.MinPeakWidth = width
		s.cfg.PeakProminence = prominence
	}
}

// WithSmoothingFilter selects the smoothing algorithm.
func WithSmoothingFilter(f SmoothingFilter) Option {
	return func(s *settings) { s.cfg.SmoothingFilter = f }
}

// WithBaseline toggles baseline correction and sets the polynomial order.
func WithBaseline(enabled bool, order int) Option {
	return func(s *settings) {
		s.cfg.BaselineCorrection = enabled
		s.cfg.BaselinePolyOrder = order
	}
}

// WithBorderMethod selects how peak borders are located.
func WithBorderMethod(m BorderMethod) Option {
	return func(s *settings) { s.cfg.BorderMethod = m }
}

// WithIntegrationMethod selects how peak areas are integrated.
func WithIntegrationMethod(m IntegrationMethod) Option {
	return func(s *settings) { s.cfg.IntegrationMethod = m }
}

// WithLogger sets the logger for stage diagnostics. Records are emitted at
// debug level. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{
		cfg:    DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
