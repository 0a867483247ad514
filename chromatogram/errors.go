package chromatogram

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// these, in addition to the lower-level cause where there is one.
var (
	// ErrConfiguration reports an invalid option or column name.
	ErrConfiguration = errors.New("chromatogram: invalid configuration")
	// ErrPrecondition reports an operation invoked out of order or on a
	// peak that lacks the data it needs.
	ErrPrecondition = errors.New("chromatogram: precondition not met")
	// ErrNumerical reports a failing numeric routine, such as a degenerate
	// baseline fit or an integration window with fewer than two samples.
	ErrNumerical = errors.New("chromatogram: numerical failure")
)

// Trace errors.
var (
	ErrUnknownColumn   = errors.New("chromatogram: unknown column")
	ErrDuplicateColumn = errors.New("chromatogram: duplicate column")
	ErrColumnLength    = errors.New("chromatogram: column length mismatch")
)
