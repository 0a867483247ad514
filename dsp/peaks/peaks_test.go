package peaks

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-chrom/internal/testutil"
)

func TestLocalMaxima(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want []int
	}{
		{name: "single", x: []float64{0, 1, 0}, want: []int{1}},
		{name: "edges excluded", x: []float64{5, 1, 0, 1, 5}, want: nil},
		{name: "plateau midpoint", x: []float64{0, 2, 2, 2, 0}, want: []int{2}},
		{name: "even plateau rounds down", x: []float64{0, 2, 2, 2, 2, 0}, want: []int{2}},
		{name: "shoulder is not a peak", x: []float64{0, 2, 2, 3, 0}, want: []int{3}},
		{name: "plateau running to end", x: []float64{0, 2, 2, 2}, want: nil},
		{name: "two peaks", x: []float64{0, 3, 1, 4, 1}, want: []int{1, 3}},
		{name: "flat", x: testutil.DC(7, 20), want: nil},
		{name: "too short", x: []float64{1, 2}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalMaxima(tt.x)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("LocalMaxima = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDistanceKeepsHighest(t *testing.T) {
	x := []float64{0, 2, 0, 5, 0, 3, 0, 0, 0, 0, 4, 0}

	got, err := Find(x, Options{Distance: 4})
	if err != nil {
		t.Fatal(err)
	}

	want := []int{3, 10}
	if idx := indices(got); !reflect.DeepEqual(idx, want) {
		t.Fatalf("indices = %v, want %v", idx, want)
	}
	if got[0].Properties.Has(SetProminence) {
		t.Fatal("prominence measured although not requested")
	}
}

func TestFindProminence(t *testing.T) {
	x := []float64{0, 4, 3, 5, 1, 2, 1, 0}

	got, err := Find(x, Options{Prominence: 1.5})
	if err != nil {
		t.Fatal(err)
	}

	// Peak 1 only rises 1 above the saddle at index 2, peak 5 rises 1 over
	// index 4. Peak 3 is the global maximum with bases at 0 and 7.
	if idx := indices(got); !reflect.DeepEqual(idx, []int{3}) {
		t.Fatalf("indices = %v, want [3]", idx)
	}

	p := got[0].Properties
	if p.Prominence != 5 || p.LeftBase != 0 || p.RightBase != 7 {
		t.Fatalf("properties = %+v", p)
	}
	if !p.Has(SetProminence) || p.Has(SetWidth) {
		t.Fatalf("unexpected property sets: %+v", p)
	}
}

func TestFindWidthOfTriangle(t *testing.T) {
	// Symmetric triangle of height 4 on a zero floor: half height 2 is
	// crossed exactly halfway up each flank.
	x := []float64{0, 0, 1, 2, 3, 4, 3, 2, 1, 0, 0}

	got, err := Find(x, Options{Width: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d peaks, want 1", len(got))
	}

	p := got[0].Properties
	if !p.Has(SetProminence | SetWidth) {
		t.Fatal("width implies prominence")
	}
	if p.WidthHeight != 2 || p.LeftIP != 3 || p.RightIP != 7 || p.Width != 4 {
		t.Fatalf("properties = %+v", p)
	}
	// The first strict minimum met while walking outwards is the base.
	if p.LeftBase != 1 || p.RightBase != 9 {
		t.Fatalf("bases = %d, %d", p.LeftBase, p.RightBase)
	}
}

func TestFindWidthInterpolates(t *testing.T) {
	x := []float64{0, 1, 5, 1, 0}

	got, err := Find(x, Options{MeasureWidth: true})
	if err != nil {
		t.Fatal(err)
	}

	p := got[0].Properties
	// height 2.5: between 1 and 5 at 1 + 1.5/4 on the left, mirrored right.
	if math.Abs(p.LeftIP-1.375) > 1e-12 || math.Abs(p.RightIP-2.625) > 1e-12 {
		t.Fatalf("ips = %v, %v", p.LeftIP, p.RightIP)
	}
}

func TestFindWidthFilter(t *testing.T) {
	narrow := testutil.GaussianPeak(200, 50, 1, 10)
	wide := testutil.GaussianPeak(200, 140, 8, 10)
	x := testutil.Sum(narrow, wide)

	got, err := Find(x, Options{Width: 5})
	if err != nil {
		t.Fatal(err)
	}
	if idx := indices(got); !reflect.DeepEqual(idx, []int{140}) {
		t.Fatalf("indices = %v, want [140]", idx)
	}

	// FWHM of a Gaussian is 2*sqrt(2 ln 2)*sigma.
	want := 2 * math.Sqrt(2*math.Ln2) * 8
	if math.Abs(got[0].Properties.Width-want) > 0.1 {
		t.Fatalf("width = %v, want ~%v", got[0].Properties.Width, want)
	}
}

func TestFindGaussianOnRamp(t *testing.T) {
	x := testutil.Sum(testutil.GaussianPeak(300, 150, 10, 100), testutil.Ramp(0, 0.5, 300))

	got, err := Find(x, Options{Distance: 15, Width: 10, Prominence: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d peaks, want 1", len(got))
	}
	if d := got[0].Index - 150; d < -2 || d > 2 {
		t.Fatalf("center = %d, want 150 +/- 2", got[0].Index)
	}
}

func TestFindFlatSignal(t *testing.T) {
	got, err := Find(testutil.DC(3, 100), Options{Distance: 15, Width: 10, Prominence: 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d peaks on a flat signal", len(got))
	}
}

func TestFindErrors(t *testing.T) {
	if _, err := Find([]float64{0, 1, 0}, Options{Distance: -1}); !errors.Is(err, ErrInvalidDistance) {
		t.Fatalf("expected ErrInvalidDistance, got %v", err)
	}
	if _, err := Find([]float64{0, 1, 0}, Options{RelHeight: -0.5}); !errors.Is(err, ErrInvalidRelHeight) {
		t.Fatalf("expected ErrInvalidRelHeight, got %v", err)
	}
}

func TestProminencesAndWidthsHelpers(t *testing.T) {
	x := []float64{0, 0, 1, 2, 3, 4, 3, 2, 1, 0, 0}

	prom, left, right, err := Prominences(x, []int{5})
	if err != nil {
		t.Fatal(err)
	}
	if prom[0] != 4 || left[0] != 1 || right[0] != 9 {
		t.Fatalf("prominence = %v bases = %v,%v", prom, left, right)
	}

	widths, heights, lips, rips, err := Widths(x, []int{5}, prom, left, right, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Full prominence reaches the floor: crossings at the last zero before
	// and the first zero after the apex.
	if heights[0] != 0 || lips[0] != 1 || rips[0] != 9 || widths[0] != 8 {
		t.Fatalf("widths=%v heights=%v ips=%v,%v", widths, heights, lips, rips)
	}

	if _, _, _, err := Prominences(x, []int{11}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, _, _, _, err := Widths(x, []int{5}, nil, left, right, 0.5); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func indices(ps []Peak) []int {
	var out []int
	for _, p := range ps {
		out = append(out, p.Index)
	}
	return out
}
