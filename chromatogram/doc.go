// Package chromatogram turns a raw chromatographic trace into a list of
// integrated peaks.
//
// A [Trace] is a table of named float64 columns, one of which is the
// retention-time axis and one the detector response. A [Signal] names the
// pair of columns currently in use. Each preprocessing stage reads a Signal,
// appends a derived column to a new Trace and returns a Signal pointing at
// it, so every intermediate result stays available for inspection:
//
//	Truncate -> Smooth -> DetectPeakCenters -> CorrectBaseline -> Shift
//
// [Processor] runs those stages in order and builds one [Peak] per detected
// centre once the trace is final. [Processor.IntegratePeaks] then resolves
// each peak's borders and integrates its area.
//
// Failures are classified by the sentinel errors [ErrConfiguration],
// [ErrPrecondition] and [ErrNumerical]; use errors.Is to test for them.
package chromatogram
