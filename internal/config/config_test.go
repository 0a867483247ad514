package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-chrom/chromatogram"
)

func TestLoadDefaults(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), m)

	d := chromatogram.DefaultConfig()
	assert.Equal(t, d.MinPeakDistance, m.Detection.MinDistance)
	assert.Equal(t, string(d.BorderMethod), m.Peaks.BorderMethod)
	assert.Equal(t, slog.LevelInfo, m.Logging.SlogLevel())
}

func TestLoadFile(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "method.yaml"))
	require.NoError(t, err)

	assert.True(t, m.Truncation.SolventFront)
	assert.False(t, m.Truncation.LateElution)
	assert.InDelta(t, 0.05, m.Truncation.SolventFrontFactor, 1e-12)
	assert.InDelta(t, 0.15, m.Truncation.LateElutionFactor, 1e-12, "unset keys keep defaults")
	assert.Equal(t, 20, m.Detection.MinDistance)
	assert.Equal(t, 10, m.Detection.MinWidth)
	assert.Equal(t, 2, m.Baseline.PolyOrder)
	assert.True(t, m.Baseline.Enabled)
	assert.Equal(t, "FWHM", m.Peaks.BorderMethod)
	assert.Equal(t, "cumulative_simpson", m.Peaks.IntegrationMethod)
	assert.Equal(t, slog.LevelDebug, m.Logging.SlogLevel())
	assert.Equal(t, "json", m.Logging.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CHROM_DETECTION_MIN_DISTANCE", "30")
	t.Setenv("CHROM_BASELINE_ENABLED", "false")
	t.Setenv("CHROM_PEAKS_BORDER_METHOD", "prominence")

	m, err := Load(filepath.Join("testdata", "method.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 30, m.Detection.MinDistance)
	assert.False(t, m.Baseline.Enabled)
	assert.Equal(t, "prominence", m.Peaks.BorderMethod)
	assert.Equal(t, "cumulative_simpson", m.Peaks.IntegrationMethod)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		env     map[string]string
		invalid bool
	}{
		{name: "missing file", path: filepath.Join("testdata", "absent.yaml")},
		{name: "unknown key", path: filepath.Join("testdata", "unknown_key.yaml")},
		{name: "bad env value", env: map[string]string{"CHROM_DETECTION_MIN_WIDTH": "wide"}},
		{name: "constraint violations", path: filepath.Join("testdata", "invalid.yaml"), invalid: true},
		{name: "unknown integration", env: map[string]string{"CHROM_PEAKS_INTEGRATION_METHOD": "romberg"}, invalid: true},
		{name: "order not below width", env: map[string]string{"CHROM_BASELINE_POLY_ORDER": "10"}, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(tc.path)
			require.Error(t, err)
			if tc.invalid {
				assert.ErrorIs(t, err, ErrInvalidMethod)
			} else {
				assert.NotErrorIs(t, err, ErrInvalidMethod)
			}
		})
	}
}

func TestValidateReportsYAMLNames(t *testing.T) {
	m := Default()
	m.Detection.MinWidth = 0
	m.Peaks.BorderMethod = "tangent"

	err := m.Validate()
	require.ErrorIs(t, err, ErrInvalidMethod)
	assert.Contains(t, err.Error(), "detection.min_width")
	assert.Contains(t, err.Error(), "peaks.border_method")
}

func TestOptions(t *testing.T) {
	m := Default()
	m.Detection.ProminenceFraction = 0.05
	m.Peaks.BorderMethod = "FWHM"

	tr, err := chromatogram.NewTrace([]string{"t", "y"}, [][]float64{{0, 1, 2}, {0, 1, 0}})
	require.NoError(t, err)

	p, err := chromatogram.NewProcessor(tr, "t", "y", m.Options(40)...)
	require.NoError(t, err)

	cfg := p.Config()
	assert.InDelta(t, 2.0, cfg.PeakProminence, 1e-12)
	assert.Equal(t, chromatogram.BorderFWHM, cfg.BorderMethod)
	assert.Equal(t, m.Detection.MinDistance, cfg.MinPeakDistance)

	m.Detection.ProminenceFraction = 0
	p, err = chromatogram.NewProcessor(tr, "t", "y", m.Options(40)...)
	require.NoError(t, err)
	assert.InDelta(t, m.Detection.Prominence, p.Config().PeakProminence, 1e-12)
}
