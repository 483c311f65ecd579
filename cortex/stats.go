package cortex

import "github.com/hebbgraph/hebbgraph/stats"

// Snapshot is the read-only diagnostic view §6's stats() row returns:
// node/edge counts, mean degree, hierarchy counts per level, and the
// RunningStats quadruple.
type Snapshot struct {
	NodeCount        int
	EdgeCount        uint64
	AverageOutDegree float64
	HierarchyByLevel map[uint8]int
	RunningStats     stats.QuadSnapshot
}

// Stats returns a read-only snapshot of the Engine's Graph. Safe to call
// concurrently with an in-flight cycle (§5's "concurrent read-only
// queries ... are permitted" — none of the accessors it calls take
// cycleMu).
func (e *Engine) Stats() Snapshot {
	avgDegree, _ := e.g.AverageOutDegree()
	return Snapshot{
		NodeCount:        e.g.NodeCount(),
		EdgeCount:        e.g.EdgeCount(),
		AverageOutDegree: avgDegree,
		HierarchyByLevel: e.g.HierarchyLevelCounts(),
		RunningStats:     e.g.StatsSnapshot(),
	}
}
