package integrate

// Gradient returns the discrete first derivative of y with unit sample
// spacing: central differences in the interior and one-sided differences at
// both ends. A single sample has zero gradient; empty input yields nil.
func Gradient(y []float64) []float64 {
	n := len(y)
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{0}
	}

	g := make([]float64, n)
	g[0] = y[1] - y[0]
	g[n-1] = y[n-1] - y[n-2]
	for i := 1; i < n-1; i++ {
		g[i] = (y[i+1] - y[i-1]) / 2
	}
	return g
}
