package chromatogram_test

import (
	"fmt"

	"github.com/cwbudde/algo-chrom/chromatogram"
	"github.com/cwbudde/algo-chrom/internal/testutil"
)

func ExampleProcessor() {
	n := 400
	x := testutil.TimeAxis(0, 0.01, n)
	y := testutil.Sum(
		testutil.GaussianPeak(n, 120, 6, 40),
		testutil.GaussianPeak(n, 260, 8, 25),
		testutil.DeterministicNoise(1, 0.05, n),
	)

	trace, err := chromatogram.NewTrace([]string{"Time (min)", "Value (EU)"}, [][]float64{x, y})
	if err != nil {
		panic(err)
	}

	p, err := chromatogram.NewProcessor(trace, "Time (min)", "Value (EU)",
		chromatogram.WithTruncation(false, false),
		chromatogram.WithPeakDetection(15, 10, 5),
		chromatogram.WithBorderMethod(chromatogram.BorderFWHM),
	)
	if err != nil {
		panic(err)
	}
	if err := p.Run(); err != nil {
		panic(err)
	}

	for _, pk := range p.Peaks() {
		_, ok := pk.Area()
		fmt.Printf("retention %.1f min, integrated %v\n", pk.Time(), ok)
	}
	// Output:
	// retention 1.2 min, integrated true
	// retention 2.6 min, integrated true
}
