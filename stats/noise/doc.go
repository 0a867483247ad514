// Package noise summarises baseline noise of chromatographic traces.
//
// Moments are accumulated with Welford's online update, so a baseline made
// of several disjoint segments can be summarised without concatenating
// them first.
package noise
