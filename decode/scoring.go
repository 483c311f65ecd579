package decode

import (
	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/core"
)

// candidate is one node DECODE could select at a step, carrying whatever
// local evidence is available for it: membership in the (refined)
// continuation group, and/or the edge that reaches it from the current
// node. A node can carry both when it is both an active continuation
// and directly reachable.
type candidate struct {
	node          core.NodeID
	viaEdge       *core.Edge // nil if reached only through the continuation group
	inGroup       bool
	groupActiv    float64
}

// score computes the three multiplicative terms of §4.5 step 2 plus the
// repetition guard of step 6, and returns their product. Any term that
// does not apply to this candidate (no traversing edge, no current node
// to compare embeddings against) contributes its neutral value, 1,
// rather than a hardcoded fallback weight.
func score(g *core.Graph, c candidate, maxGroupActivation float64, currentNode core.NodeID, haveCurrent bool, emittedSoFar []byte, toNode *core.Node, fromNode *core.Node) float64 {
	edgeTerm := 1.0
	if c.viaEdge != nil && fromNode != nil {
		if avg, ok := fromNode.CachedWeightAvg(); ok && avg > 0 {
			edgeTerm = float64(c.viaEdge.Weight) / avg
		}
	}

	activTerm := 1.0
	if c.inGroup {
		if maxGroupActivation > 0 {
			activTerm = c.groupActiv / maxGroupActivation
		} else {
			activTerm = 0
		}
	}

	contextTerm := 1.0
	if haveCurrent {
		fromEmb, err1 := activation.Build(g, currentNode)
		toEmb, err2 := activation.Build(g, c.node)
		if err1 == nil && err2 == nil {
			contextTerm = activation.CosineSimilarity(fromEmb, toEmb)
		}
	}

	repTerm := 1.0
	if toNode != nil {
		candidateBytes := toNode.Payload
		hypothetical := append(append([]byte(nil), emittedSoFar...), candidateBytes...)
		repTerm = 1 - repetitionFraction(hypothetical)
	}

	return edgeTerm * activTerm * contextTerm * repTerm
}

// naturalStopScore implements §4.5 step 8: clamp(1 - best/avg, 0, 1)
// over the given candidate scores. With no candidates (avg undefined or
// zero), returns 1 — the strongest possible stop signal, since there is
// nothing locally to justify continuing.
func naturalStopScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 1
	}
	var sum, best float64
	for _, s := range scores {
		sum += s
		if s > best {
			best = s
		}
	}
	avg := sum / float64(len(scores))
	if avg <= 0 {
		return 1
	}
	v := 1 - best/avg
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}
