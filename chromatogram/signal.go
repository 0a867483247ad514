package chromatogram

import "fmt"

// Signal selects the time (X) and response (Y) columns of a trace.
type Signal struct {
	Trace *Trace
	X     string
	Y     string
}

// NewSignal checks that both columns exist in t.
func NewSignal(t *Trace, x, y string) (Signal, error) {
	if t == nil {
		return Signal{}, fmt.Errorf("%w: nil trace", ErrConfiguration)
	}
	for _, name := range []string{x, y} {
		if !t.Has(name) {
			return Signal{}, fmt.Errorf("%w: %w: %q", ErrConfiguration, ErrUnknownColumn, name)
		}
	}
	return Signal{Trace: t, X: x, Y: y}, nil
}

// Len returns the number of samples.
func (s Signal) Len() int { return s.Trace.Len() }

// XValues returns a copy of the time column.
func (s Signal) XValues() []float64 {
	v, _ := s.Trace.Column(s.X)
	return v
}

// YValues returns a copy of the active response column.
func (s Signal) YValues() []float64 {
	v, _ := s.Trace.Column(s.Y)
	return v
}

// Clone returns a Signal over a deep copy of the trace.
func (s Signal) Clone() Signal {
	return Signal{Trace: s.Trace.Clone(), X: s.X, Y: s.Y}
}

// derive returns a Signal whose Y is the new column name holding values.
func (s Signal) derive(name string, values []float64) (Signal, error) {
	t, err := s.Trace.WithColumn(name, values)
	if err != nil {
		return Signal{}, err
	}
	return Signal{Trace: t, X: s.X, Y: name}, nil
}

func (s Signal) x() []float64 { return s.Trace.column(s.X) }
func (s Signal) y() []float64 { return s.Trace.column(s.Y) }
