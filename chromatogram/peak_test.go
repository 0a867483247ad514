package chromatogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-chrom/dsp/peaks"
	"github.com/cwbudde/algo-chrom/internal/testutil"
)

// measuredPeak returns a Gaussian peak on a flat, slightly noisy floor with
// its detection measurements attached.
func measuredPeak(t *testing.T, methods PeakMethods) *Peak {
	t.Helper()
	y := testutil.Sum(
		testutil.GaussianPeak(300, 150, 10, 100),
		testutil.DeterministicNoise(3, 0.05, 300),
		testutil.DC(0.1, 300),
	)
	found, err := peaks.Find(y, peaks.Options{Prominence: 10, MeasureProminence: true, MeasureWidth: true})
	require.NoError(t, err)
	require.Len(t, found, 1)

	pk, err := NewPeak(syntheticSignal(t, y), found[0].Index, found[0].Properties, methods)
	require.NoError(t, err)
	return pk
}

func TestNewPeakValidation(t *testing.T) {
	sig := syntheticSignal(t, testutil.DC(1, 20))

	_, err := NewPeak(sig, 5, peaks.Properties{}, PeakMethods{Border: "tangent"})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewPeak(sig, 5, peaks.Properties{}, PeakMethods{Integration: "romberg"})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewPeak(sig, 20, peaks.Properties{}, PeakMethods{})
	assert.ErrorIs(t, err, ErrPrecondition)

	pk, err := NewPeak(sig, 5, peaks.Properties{}, PeakMethods{})
	require.NoError(t, err)
	assert.Equal(t, PeakMethods{Border: BorderGradient, Integration: IntegrationTrapezoid}, pk.Methods())
}

func TestPeakOwnsItsTrace(t *testing.T) {
	sig := syntheticSignal(t, testutil.Ramp(0, 1, 20))
	pk, err := NewPeak(sig, 10, peaks.Properties{}, PeakMethods{})
	require.NoError(t, err)

	sig.Trace.column(valueColumn)[10] = -1

	assert.Equal(t, 10.0, pk.Height())
	assert.Equal(t, 10.0, pk.Signal().YValues()[10])
	assert.InDelta(t, 0.1, pk.Time(), 1e-12)
}

func TestIntegrateBeforeBorders(t *testing.T) {
	pk := measuredPeak(t, PeakMethods{})

	err := pk.Integrate()
	assert.ErrorIs(t, err, ErrPrecondition)

	_, ok := pk.Area()
	assert.False(t, ok)
}

func TestBordersNeedMeasurements(t *testing.T) {
	sig := syntheticSignal(t, testutil.GaussianPeak(100, 50, 5, 10))

	for _, m := range []BorderMethod{BorderFWHM, BorderProminence} {
		pk, err := NewPeak(sig, 50, peaks.Properties{}, PeakMethods{Border: m})
		require.NoError(t, err)
		assert.ErrorIs(t, pk.DefineBorders(), ErrPrecondition, string(m))
	}
}

func TestBorderMethods(t *testing.T) {
	tests := []struct {
		method   BorderMethod
		minWidth int
	}{
		{BorderGradient, 40},
		{BorderFWHM, 20},
		{BorderProminence, 60},
	}

	for _, tc := range tests {
		t.Run(string(tc.method), func(t *testing.T) {
			pk := measuredPeak(t, PeakMethods{Border: tc.method})
			require.NoError(t, pk.DefineBorders())

			left, right, ok := pk.Borders()
			require.True(t, ok)
			assert.LessOrEqual(t, left, pk.Center())
			assert.GreaterOrEqual(t, right, pk.Center())
			assert.GreaterOrEqual(t, right-left, tc.minWidth)
		})
	}
}

func TestFWHMBordersFollowInterpolatedCrossings(t *testing.T) {
	pk := measuredPeak(t, PeakMethods{Border: BorderFWHM})
	require.NoError(t, pk.DefineBorders())

	left, right, _ := pk.Borders()
	props := pk.Properties()
	assert.Equal(t, int(props.LeftIP), left)
	assert.Equal(t, int(props.RightIP), right)
	// FWHM of a Gaussian is 2*sqrt(2 ln 2)*sigma, about 23.5 samples.
	assert.InDelta(t, 23.5, props.Width, 0.5)
}

func TestGradientBordersEdgePolicy(t *testing.T) {
	// A tent never flattens: both sides keep the centre.
	tent := make([]float64, 51)
	for i := range tent {
		tent[i] = -float64(abs(i - 25))
	}
	left, right := gradientBorders(tent, 25, GradientPadding)
	assert.Equal(t, 25, left)
	assert.Equal(t, 25, right)

	sig := syntheticSignal(t, tent)
	pk, err := NewPeak(sig, 25, peaks.Properties{}, PeakMethods{})
	require.NoError(t, err)
	require.NoError(t, pk.DefineBorders())
	assert.ErrorIs(t, pk.Integrate(), ErrNumerical)
}

func TestGradientBordersStopAtFlank(t *testing.T) {
	y := make([]float64, 60)
	for i := range y {
		switch {
		case i < 10 || i > 50:
			y[i] = 0
		case i <= 30:
			y[i] = float64(i - 10)
		default:
			y[i] = float64(50 - i)
		}
	}
	left, right := gradientBorders(y, 30, GradientPadding)
	assert.Equal(t, 9, left)
	assert.Equal(t, 51, right)
}

func TestIntegrationRules(t *testing.T) {
	for _, m := range []IntegrationMethod{IntegrationTrapezoid, IntegrationSimpson} {
		t.Run(string(m), func(t *testing.T) {
			pk := measuredPeak(t, PeakMethods{Border: BorderProminence, Integration: m})
			require.NoError(t, pk.DefineBorders())
			require.NoError(t, pk.Integrate())

			area, ok := pk.Area()
			require.True(t, ok)

			left, right, _ := pk.Borders()
			x := pk.Signal().XValues()
			want := testutil.GaussianArea(150, 10, 100, float64(left), float64(right-1))*0.01 +
				0.1*(x[right-1]-x[left])
			assert.InEpsilon(t, want, area, 0.01)
		})
	}
}

func TestAreaSignFollowsResponse(t *testing.T) {
	dip := testutil.GaussianPeak(200, 100, 8, 40)
	found, err := peaks.Find(dip, peaks.Options{Prominence: 10, MeasureProminence: true})
	require.NoError(t, err)
	require.Len(t, found, 1)

	for i := range dip {
		dip[i] = -dip[i]
	}
	pk, err := NewPeak(syntheticSignal(t, dip), found[0].Index, found[0].Properties,
		PeakMethods{Border: BorderProminence})
	require.NoError(t, err)
	require.NoError(t, pk.DefineBorders())
	require.NoError(t, pk.Integrate())

	area, _ := pk.Area()
	assert.Negative(t, area)
}

func TestRedefiningBordersDiscardsArea(t *testing.T) {
	pk := measuredPeak(t, PeakMethods{Border: BorderFWHM})
	require.NoError(t, pk.DefineBorders())
	require.NoError(t, pk.Integrate())

	require.NoError(t, pk.DefineBorders())
	_, ok := pk.Area()
	assert.False(t, ok)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
