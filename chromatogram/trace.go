package chromatogram

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-chrom/dsp/core"
)

// Trace is a rectangular table of named float64 columns. Columns are never
// modified after they are added, so traces derived from one another share
// column storage.
type Trace struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// NewTrace builds a trace from parallel slices of column names and values.
// The values are copied.
func NewTrace(names []string, columns [][]float64) (*Trace, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrColumnLength, len(names), len(columns))
	}

	t := &Trace{cols: make(map[string][]float64, len(names))}
	for i, name := range names {
		if _, ok := t.cols[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		if i == 0 {
			t.rows = len(columns[i])
		} else if len(columns[i]) != t.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrColumnLength, name, len(columns[i]), t.rows)
		}
		t.names = append(t.names, name)
		t.cols[name] = core.Clone(columns[i])
	}

	return t, nil
}

// Len returns the number of rows.
func (t *Trace) Len() int { return t.rows }

// Columns returns the column names in insertion order.
func (t *Trace) Columns() []string { return slices.Clone(t.names) }

// Has reports whether the trace holds a column called name.
func (t *Trace) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Trace) Column(name string) ([]float64, error) {
	c, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return core.Clone(c), nil
}

// WithColumn returns a new trace with values stored under name. An existing
// column of that name is replaced in place; otherwise the column is
// appended. The receiver is left unchanged.
func (t *Trace) WithColumn(name string, values []float64) (*Trace, error) {
	if len(t.names) > 0 && len(values) != t.rows {
		return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrColumnLength, name, len(values), t.rows)
	}

	out := &Trace{
		names: slices.Clone(t.names),
		cols:  make(map[string][]float64, len(t.cols)+1),
		rows:  len(values),
	}
	for k, v := range t.cols {
		out.cols[k] = v
	}
	if _, ok := out.cols[name]; !ok {
		out.names = append(out.names, name)
	}
	out.cols[name] = core.Clone(values)

	return out, nil
}

// SelectRows returns a new trace holding the rows for which keep returns
// true, renumbered contiguously from zero.
func (t *Trace) SelectRows(keep func(row int) bool) *Trace {
	var idx []int
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}

	out := &Trace{
		names: slices.Clone(t.names),
		cols:  make(map[string][]float64, len(t.cols)),
		rows:  len(idx),
	}
	for k, v := range t.cols {
		out.cols[k] = core.Take(v, idx)
	}
	return out
}

// Clone returns a deep copy of the trace.
func (t *Trace) Clone() *Trace {
	out := &Trace{
		names: slices.Clone(t.names),
		cols:  make(map[string][]float64, len(t.cols)),
		rows:  t.rows,
	}
	for k, v := range t.cols {
		out.cols[k] = core.Clone(v)
	}
	return out
}

// column returns the stored slice without copying. Callers must not modify it.
func (t *Trace) column(name string) []float64 { return t.cols[name] }
