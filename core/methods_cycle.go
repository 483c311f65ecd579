package core

import "github.com/hebbgraph/hebbgraph/stats"

// BeginCycle increments and returns the wave generation counter. Called
// once at the start of every cycle; any cache tagged with an older
// generation is treated as invalid on next read. This is how the engine
// invalidates per-node caches in O(1) without a lock-based scheme (§5).
func (g *Graph) BeginCycle() uint64 {
	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	g.waveGeneration++
	return g.waveGeneration
}

// WaveGeneration returns the current wave generation without advancing
// it. Safe to call concurrently with a running cycle (read-only).
func (g *Graph) WaveGeneration() uint64 {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	return g.waveGeneration
}

// SetLastEmittedPath records the edges traversed by the most recently
// completed DECODE, so FeedbackError (§4.6) can replay a Hebbian sweep
// along them. Passing nil clears it (done at the start of the next
// cycle's ENCODE, per the "transient, per cycle" rule applied to the
// emitted-path record).
func (g *Graph) SetLastEmittedPath(path []*Edge) {
	g.muEdges.Lock()
	defer g.muEdges.Unlock()
	g.lastEmittedPath = path
}

// LastEmittedPath returns the edges traversed by the most recently
// completed DECODE, or nil if none has completed since the last ENCODE.
func (g *Graph) LastEmittedPath() []*Edge {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	return append([]*Edge(nil), g.lastEmittedPath...)
}

// StatsSnapshot returns a read-only snapshot of the Graph's RunningStats
// quad. Safe to call concurrently with a running cycle.
func (g *Graph) StatsSnapshot() stats.QuadSnapshot {
	g.muStats.RLock()
	defer g.muStats.RUnlock()
	return g.statsQuad.Snapshot()
}

// RestoreStats overwrites the Graph's RunningStats quad from a snapshot
// (used by persistbound.Load).
func (g *Graph) RestoreStats(s stats.QuadSnapshot) {
	g.muStats.Lock()
	defer g.muStats.Unlock()
	g.statsQuad.Restore(s)
}

// WithStats runs fn with exclusive access to the Graph's RunningStats
// quad, for the pipeline phases to record observations (ENCODE records
// activation magnitudes, DECODE records confidence/path length, Hebbian
// records prediction error via FeedbackError).
func (g *Graph) WithStats(fn func(q *stats.Quad)) {
	g.muStats.Lock()
	defer g.muStats.Unlock()
	fn(&g.statsQuad)
}
