// Package peaks locates local maxima in a sampled signal and measures them.
//
// [Find] works in batch over the whole signal:
//
//  1. every local maximum is located; flat tops report their midpoint
//  2. maxima closer than Options.Distance samples to a higher one are dropped
//  3. the prominence of each survivor is measured and filtered
//  4. the width at Options.RelHeight of the prominence is measured and filtered
//
// Each returned [Peak] carries a [Properties] bundle with the prominence,
// its bases and the interpolated width crossings. [Properties.Has] reports
// which measurements were requested.
package peaks
