package stats

// OfGroup computes a one-shot RunningStats over a slice of values.
// REFINE uses this to derive its lateral-inhibition threshold, and
// hebbian a node's outgoing-weight spread, independently of the Graph's
// long-running Quad:
// the group's own shape this cycle is the relevant local reference, per
// the "relative comparison" rule (never a hardcoded constant, and here
// not even the graph's historical average — the group's own variance).
func OfGroup(values []float64) RunningStats {
	var r RunningStats
	for _, v := range values {
		r.Observe(v)
	}
	return r
}

// CoefficientOfVariation returns stddev/mean for a RunningStats, clamped
// to [0, 1], or (0, false) if the mean is zero or the statistic is
// undefined. This is the local "how spread out is this distribution"
// signal used to size damping/suppression factors without any fixed
// constant.
func CoefficientOfVariation(r RunningStats) (float64, bool) {
	if !r.Defined() || r.Mean() == 0 {
		return 0, false
	}
	cv := r.StdDev() / r.Mean()
	if cv < 0 {
		cv = -cv
	}
	if cv > 1 {
		cv = 1
	}
	return cv, true
}
