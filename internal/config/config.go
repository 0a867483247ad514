package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-chrom/chromatogram"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CHROM"

// ErrInvalidMethod is wrapped by every validation failure.
var ErrInvalidMethod = errors.New("config: invalid method")

// Method is a complete processing method.
type Method struct {
	Truncation TruncationConfig `yaml:"truncation" envconfig:"TRUNCATION"`
	Detection  DetectionConfig  `yaml:"detection" envconfig:"DETECTION"`
	Smoothing  SmoothingConfig  `yaml:"smoothing" envconfig:"SMOOTHING"`
	Baseline   BaselineConfig   `yaml:"baseline" envconfig:"BASELINE"`
	Peaks      PeakConfig       `yaml:"peaks" envconfig:"PEAKS"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// TruncationConfig controls removal of the solvent front and late elution.
type TruncationConfig struct {
	SolventFront       bool    `yaml:"solvent_front" envconfig:"SOLVENT_FRONT"`
	LateElution        bool    `yaml:"late_elution" envconfig:"LATE_ELUTION"`
	SolventFrontFactor float64 `yaml:"solvent_front_factor" envconfig:"SOLVENT_FRONT_FACTOR" validate:"gte=0,lt=1"`
	LateElutionFactor  float64 `yaml:"late_elution_factor" envconfig:"LATE_ELUTION_FACTOR" validate:"gte=0,lt=1"`
}

// DetectionConfig holds the peak acceptance thresholds.
type DetectionConfig struct {
	MinDistance int     `yaml:"min_distance" envconfig:"MIN_DISTANCE" validate:"gte=1"`
	MinWidth    int     `yaml:"min_width" envconfig:"MIN_WIDTH" validate:"gte=1"`
	Prominence  float64 `yaml:"prominence" envconfig:"PROMINENCE" validate:"gte=0"`
	// ProminenceFraction, when positive, replaces Prominence with this
	// fraction of the response range of the trace being processed.
	ProminenceFraction float64 `yaml:"prominence_fraction" envconfig:"PROMINENCE_FRACTION" validate:"gte=0,lte=1"`
}

// SmoothingConfig selects the smoothing filter.
type SmoothingConfig struct {
	Filter string `yaml:"filter" envconfig:"FILTER" validate:"oneof=savgol"`
}

// BaselineConfig controls baseline correction.
type BaselineConfig struct {
	Enabled   bool `yaml:"enabled" envconfig:"ENABLED"`
	PolyOrder int  `yaml:"poly_order" envconfig:"POLY_ORDER" validate:"gte=0"`
}

// PeakConfig selects border detection and integration.
type PeakConfig struct {
	BorderMethod      string `yaml:"border_method" envconfig:"BORDER_METHOD" validate:"oneof=gradient FWHM prominence"`
	IntegrationMethod string `yaml:"integration_method" envconfig:"INTEGRATION_METHOD" validate:"oneof=cumulative_trapezoid cumulative_simpson"`
}

// LoggingConfig configures the command line logger.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Default returns the standard method.
func Default() *Method {
	d := chromatogram.DefaultConfig()
	return &Method{
		Truncation: TruncationConfig{
			SolventFront:       d.RemoveSolventFront,
			LateElution:        d.RemoveLateElution,
			SolventFrontFactor: d.SolventFrontFactor,
			LateElutionFactor:  d.LateElutionFactor,
		},
		Detection: DetectionConfig{
			MinDistance: d.MinPeakDistance,
			MinWidth:    d.MinPeakWidth,
			Prominence:  d.PeakProminence,
		},
		Smoothing: SmoothingConfig{Filter: string(d.SmoothingFilter)},
		Baseline: BaselineConfig{
			Enabled:   d.BaselineCorrection,
			PolyOrder: d.BaselinePolyOrder,
		},
		Peaks: PeakConfig{
			BorderMethod:      string(d.BorderMethod),
			IntegrationMethod: string(d.IntegrationMethod),
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load returns the default method overlaid by the YAML file at path (if
// path is not empty) and by CHROM_* environment variables, in that order.
func Load(path string) (*Method, error) {
	m := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read method file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, m); err != nil {
			return nil, fmt.Errorf("config: parse method file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, m); err != nil {
		return nil, fmt.Errorf("config: load method from env: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints and reports all
// violations in one error wrapping ErrInvalidMethod.
func (m *Method) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		if m.Baseline.PolyOrder >= m.Detection.MinWidth {
			return fmt.Errorf("%w: baseline.poly_order %d must be below detection.min_width %d",
				ErrInvalidMethod, m.Baseline.PolyOrder, m.Detection.MinWidth)
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidMethod, err)
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s fails %q (got %v)", strings.TrimPrefix(fe.Namespace(), "Method."), fe.Tag()+paramSuffix(fe.Param()), fe.Value())
	}
	return fmt.Errorf("%w: %s", ErrInvalidMethod, strings.Join(msgs, "; "))
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

// Options converts the method into processor options. yRange is the
// response range of the trace and is only used with a prominence fraction.
func (m *Method) Options(yRange float64) []chromatogram.Option {
	prominence := m.Detection.Prominence
	if m.Detection.ProminenceFraction > 0 {
		prominence = m.Detection.ProminenceFraction * yRange
	}

	return []chromatogram.Option{
		chromatogram.WithTruncation(m.Truncation.SolventFront, m.Truncation.LateElution),
		chromatogram.WithTruncationFactors(m.Truncation.SolventFrontFactor, m.Truncation.LateElutionFactor),
		chromatogram.WithPeakDetection(m.Detection.MinDistance, m.Detection.MinWidth, prominence),
		chromatogram.WithSmoothingFilter(chromatogram.SmoothingFilter(m.Smoothing.Filter)),
		chromatogram.WithBaseline(m.Baseline.Enabled, m.Baseline.PolyOrder),
		chromatogram.WithBorderMethod(chromatogram.BorderMethod(m.Peaks.BorderMethod)),
		chromatogram.WithIntegrationMethod(chromatogram.IntegrationMethod(m.Peaks.IntegrationMethod)),
	}
}

// SlogLevel returns the configured log level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
