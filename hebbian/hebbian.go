package hebbian

import (
	"errors"

	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/stats"
)

// ErrNoEmittedPath indicates FeedbackError was called with no completed
// cycle's path on record (§7's External error kind: feedback received
// outside a completed cycle is ignored, but the caller is told so).
var ErrNoEmittedPath = errors.New("hebbian: no emitted path to apply feedback to")

// ApplyTraversal strengthens e per §4.6: weight moves toward the
// saturation ceiling (255) by a fraction of its remaining headroom equal
// to r, the contextual relevance of this traversal (target activation
// divided by the continuation group's max, always in [0,1]). A
// fully-saturated edge (weight 255) has zero headroom and is left
// unchanged regardless of r; this is the saturation-awareness the rule
// requires, with no separate learning-rate constant.
func ApplyTraversal(g *core.Graph, fromID core.NodeID, e *core.Edge, r float64, gen uint64) error {
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	headroom := 255 - float64(e.Weight)
	newWeight := float64(e.Weight) + headroom*r
	return g.SetEdgeWeight(fromID, e, clampWeight(newWeight), true, gen)
}

// ApplyNonTraversal decays every outgoing edge of fromID other than
// skip (the edge traversed this step, nil if none) per §4.6: the decay
// fraction is the node's own coefficient of variation across its
// outgoing weights, so a node whose weights are already uniform (stable)
// loses very little, while a node with wildly uneven weights (volatile)
// forgets faster. A node with fewer than two outgoing edges has no local
// variance to derive a fraction from, so its edges are left untouched
// this step rather than decayed by a guessed amount.
func ApplyNonTraversal(g *core.Graph, fromID core.NodeID, skip *core.Edge, gen uint64) error {
	node, err := g.Node(fromID)
	if err != nil {
		return err
	}

	outgoing := node.Outgoing()
	if len(outgoing) < 2 {
		return nil
	}

	values := make([]float64, len(outgoing))
	for i, e := range outgoing {
		values[i] = float64(e.Weight)
	}
	weightStats := stats.OfGroup(values)
	cv, ok := stats.CoefficientOfVariation(weightStats)
	if !ok {
		return nil
	}

	for _, e := range outgoing {
		if e == skip {
			continue
		}
		delta := float64(e.Weight) * cv
		newWeight := float64(e.Weight) - delta
		if err := g.SetEdgeWeight(fromID, e, clampWeight(newWeight), false, gen); err != nil {
			return err
		}
	}
	return nil
}

// Sweep(g, fromID, traversed, r, gen) is the convenience composition DECODE calls
// after every step: strengthen the traversed edge, decay the rest of
// fromID's outgoing edges, then remove any edge that has decayed to zero
// and gone stale beyond the adaptive inactivity window.
func Sweep(g *core.Graph, fromID core.NodeID, traversed *core.Edge, r float64, gen uint64) error {
	if traversed != nil {
		if err := ApplyTraversal(g, fromID, traversed, r, gen); err != nil {
			return err
		}
	}
	if err := ApplyNonTraversal(g, fromID, traversed, gen); err != nil {
		return err
	}
	return pruneStaleZeroEdges(g, fromID, gen)
}

// pruneStaleZeroEdges removes every outgoing edge of fromID whose weight
// has decayed to 0 and whose last_used is older than the adaptive
// inactivity window, the window itself taken from the Graph's own
// path-length RunningStats median. With that statistic undefined (too
// little history), no edge is removed this step — a not-yet-reliable
// window must never be replaced by a guessed one.
func pruneStaleZeroEdges(g *core.Graph, fromID core.NodeID, gen uint64) error {
	node, err := g.Node(fromID)
	if err != nil {
		return err
	}

	snap := g.StatsSnapshot()
	var pathLen stats.RunningStats
	pathLen.Restore(snap.PathLength)
	window, ok := pathLen.PercentileThreshold(0.5)
	if !ok || window < 0 {
		return nil
	}
	inactivityWindow := uint64(window)

	stale := make([]*core.Edge, 0)
	for _, e := range node.Outgoing() {
		if e.Weight != 0 {
			continue
		}
		if gen > e.LastUsed && gen-e.LastUsed > inactivityWindow {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		if err := g.RemoveEdge(e); err != nil {
			return err
		}
	}
	return nil
}

// FeedbackError applies one additional Hebbian sweep along g's most
// recently emitted path (§4.6): every edge on that path has its
// strengthening term scaled by (1-e) and its weakening term scaled by e,
// so e near 0 (low reported error) reinforces the path and e near 1
// (high reported error) pushes it toward removal. Feedback never creates
// an edge; it only adjusts the ones already on the recorded path.
//
// Returns core.ErrEdgeNotFound-wrapping errors untouched if the recorded
// path has gone stale (an edge on it was since removed); it is not
// mapped to ErrNoEmittedPath.
func FeedbackError(g *core.Graph, e float64) error {
	if e < 0 {
		e = 0
	}
	if e > 1 {
		e = 1
	}

	path := g.LastEmittedPath()
	if len(path) == 0 {
		return ErrNoEmittedPath
	}
	for _, edge := range path {
		headroom := 255 - float64(edge.Weight)
		plus := headroom * (1 - e)
		minus := float64(edge.Weight) * e
		newWeight := float64(edge.Weight) + plus - minus
		if err := g.SetEdgeWeight(edge.From, edge, clampWeight(newWeight), false, 0); err != nil {
			return err
		}
	}
	return nil
}

func clampWeight(w float64) uint8 {
	if w < 0 {
		return 0
	}
	if w > 255 {
		return 255
	}
	return uint8(w)
}
