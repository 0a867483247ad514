package acquity

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-chrom/chromatogram"
)

// Default column names of Acquity exports.
const (
	TimeColumn  = "Time (min)"
	ValueColumn = "Value (EU)"
)

const dataMarker = "Chromatogram Data:"

// Errors returned by the parser.
var (
	ErrFileExtension = errors.New("acquity: file extension must be .txt")
	ErrNoData        = errors.New("acquity: no chromatogram data in export")
)

// Export is a parsed Acquity text export.
type Export struct {
	Filename     string
	Injection    InjectionMetadata
	Chromatogram ChromatogramMetadata
	Signal       SignalMetadata

	// Header names the data columns; Rows holds one value per column, NaN
	// where a cell was missing or not a number.
	Header []string
	Rows   [][]float64

	// Warnings lists metadata values and rows that could not be read
	// as expected.
	Warnings []string
}

// ParseFile opens and parses the export at path. Only .txt files are
// accepted.
func ParseFile(path string) (*Export, error) {
	if filepath.Ext(path) != ".txt" {
		return nil, fmt.Errorf("%w: %q", ErrFileExtension, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("acquity: open export: %w", err)
	}
	defer f.Close()

	e, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("acquity: %s: %w", filepath.Base(path), err)
	}
	e.Filename = filepath.Base(path)
	return e, nil
}

// Parse reads an export from r.
func Parse(r io.Reader) (*Export, error) {
	e := &Export{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inData := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if !inData {
			if kv := strings.Split(line, "\t"); len(kv) == 2 {
				e.setMetadata(lineNo, kv[0], kv[1])
			}
			if strings.HasPrefix(strings.TrimSpace(line), dataMarker) {
				inData = true
			}
			continue
		}

		if e.Header == nil {
			e.Header = strings.Split(strings.TrimSpace(line), "\t")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		e.addRow(lineNo, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("acquity: read export: %w", err)
	}

	return e, nil
}

func (e *Export) addRow(line int, fields []string) {
	if len(fields) > len(e.Header) {
		e.Warnings = append(e.Warnings,
			fmt.Sprintf("line %d: %d values for %d columns, extra values dropped", line, len(fields), len(e.Header)))
		fields = fields[:len(e.Header)]
	}

	row := make([]float64, len(e.Header))
	for i := range row {
		row[i] = math.NaN()
		if i < len(fields) {
			if v, err := strconv.ParseFloat(fields[i], 64); err == nil {
				row[i] = v
			}
		}
	}
	e.Rows = append(e.Rows, row)
}

// Column returns the values of the named data column.
func (e *Export) Column(name string) ([]float64, error) {
	for j, h := range e.Header {
		if h != name {
			continue
		}
		out := make([]float64, len(e.Rows))
		for i, row := range e.Rows {
			out[i] = row[j]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", chromatogram.ErrUnknownColumn, name)
}

// Trace returns a two-column trace of x and y, skipping rows where either
// value is NaN.
func (e *Export) Trace(x, y string) (*chromatogram.Trace, error) {
	if len(e.Rows) == 0 {
		return nil, ErrNoData
	}

	xs, err := e.Column(x)
	if err != nil {
		return nil, err
	}
	ys, err := e.Column(y)
	if err != nil {
		return nil, err
	}

	keptX := xs[:0]
	keptY := ys[:0]
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		keptX = append(keptX, xs[i])
		keptY = append(keptY, ys[i])
	}
	if len(keptX) == 0 {
		return nil, fmt.Errorf("%w: no complete %q/%q rows", ErrNoData, x, y)
	}

	return chromatogram.NewTrace([]string{x, y}, [][]float64{keptX, keptY})
}

// Process builds a Processor over the default time and value columns and
// runs preprocessing and integration.
func (e *Export) Process(opts ...chromatogram.Option) (*chromatogram.Processor, error) {
	tr, err := e.Trace(TimeColumn, ValueColumn)
	if err != nil {
		return nil, err
	}

	p, err := chromatogram.NewProcessor(tr, TimeColumn, ValueColumn, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Run(); err != nil {
		return nil, err
	}
	return p, nil
}
