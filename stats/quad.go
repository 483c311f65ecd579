package stats

// Quad bundles the four RunningStats instances a Graph maintains:
// activation magnitudes, decision confidence, prediction error, and
// emitted-output path length. See DATA MODEL (RunningStats (x4)).
type Quad struct {
	Activation RunningStats
	Confidence RunningStats
	Error      RunningStats
	PathLength RunningStats
}

// QuadSnapshot is the serializable form of a Quad (4 x (mean, M2, count)),
// matching the persisted-state layout of §6.
type QuadSnapshot struct {
	Activation Snapshot
	Confidence Snapshot
	Error      Snapshot
	PathLength Snapshot
}

// Snapshot captures all four accumulators.
func (q *Quad) Snapshot() QuadSnapshot {
	return QuadSnapshot{
		Activation: q.Activation.Snapshot(),
		Confidence: q.Confidence.Snapshot(),
		Error:      q.Error.Snapshot(),
		PathLength: q.PathLength.Snapshot(),
	}
}

// Restore overwrites all four accumulators from a QuadSnapshot.
func (q *Quad) Restore(s QuadSnapshot) {
	q.Activation.Restore(s.Activation)
	q.Confidence.Restore(s.Confidence)
	q.Error.Restore(s.Error)
	q.PathLength.Restore(s.PathLength)
}
