package chromatogram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-chrom/internal/testutil"
)

const (
	timeColumn  = "Time (min)"
	valueColumn = "Value (EU)"
)

// syntheticTrace returns a trace with a 0.01 min time step and the given
// response.
func syntheticTrace(t *testing.T, y []float64) *Trace {
	t.Helper()
	tr, err := NewTrace([]string{timeColumn, valueColumn}, [][]float64{testutil.TimeAxis(0, 0.01, len(y)), y})
	require.NoError(t, err)
	return tr
}

func syntheticSignal(t *testing.T, y []float64) Signal {
	t.Helper()
	sig, err := NewSignal(syntheticTrace(t, y), timeColumn, valueColumn)
	require.NoError(t, err)
	return sig
}

// gaussianOnRamp is a single Gaussian (centre 150, sigma 10, amplitude 100)
// on a 0.5/sample ramp over 300 samples with a little deterministic noise.
func gaussianOnRamp() []float64 {
	return testutil.Sum(
		testutil.GaussianPeak(300, 150, 10, 100),
		testutil.Ramp(0, 0.5, 300),
		testutil.DeterministicNoise(42, 0.2, 300),
	)
}
