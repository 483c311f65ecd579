// Package stats provides online (streaming) mean/variance estimation via
// Welford's algorithm, and derives percentile-based thresholds from it.
//
// What
//
//   - RunningStats accumulates mean, M2 (sum of squared deviations), and a
//     sample count in O(1) per observation, with no buffering of history.
//   - PercentileThreshold(p) turns that running mean/variance into a
//     concrete value (mean + z(p)*stddev) using a fixed normal
//     z-score approximation — pure math, not a tunable behavior.
//   - Quad bundles the four RunningStats the engine needs: activation
//     magnitude, decision confidence, prediction error, and output path
//     length (see core.Graph and the pipeline packages).
//
// Why
//
//	The engine's governing constraint is that no decision may compare a
//	value against a hardcoded constant. RunningStats is how "compare
//	against what this graph has actually seen so far" is made concrete:
//	every adaptive threshold in encode/refine/decode/hebbian/hierarchy is
//	either a RunningStats query or a purely local ratio (e.g.
//	edge.Weight / node.CachedWeightAvg()).
//
// Undefined vs. zero
//
//	A RunningStats with Count() < 2 has no meaningful variance yet.
//	StdDev() returns 0 in that case (by definition, not as a disguised
//	default), but PercentileThreshold returns (0, false) so that callers
//	can tell "not yet defined" apart from "the threshold happens to be
//	zero" and defer their decision instead of substituting a number.
package stats
