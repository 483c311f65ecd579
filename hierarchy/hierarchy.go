package hierarchy

import (
	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/core"
)

// Form runs both Hierarchy Former phases of §4.7 against one cycle's
// input sequence and ActivationPattern. It never scans the graph
// globally: phase 1 walks only the consecutive input pairs, phase 2
// walks only the outgoing edges of nodes already present in pattern.
func Form(g *core.Graph, inputIDs []core.NodeID, pattern *activation.Pattern) error {
	if err := sequencePairs(g, inputIDs); err != nil {
		return err
	}
	return coActivatedPairs(g, pattern)
}

// sequencePairs implements phase 1: for each consecutive pair of input
// nodes, consolidate the pair if their edge is strictly above the
// source's own local average weight.
func sequencePairs(g *core.Graph, inputIDs []core.NodeID) error {
	for i := 1; i < len(inputIDs); i++ {
		a, b := inputIDs[i-1], inputIDs[i]
		if a == b {
			continue
		}
		if _, err := consolidatePair(g, a, b); err != nil {
			return err
		}
	}
	return nil
}

// coActivatedPairs implements phase 2: for every node a present in
// pattern, walk a's outgoing edges and consolidate any pair (a, b) where
// b is also present in pattern and the edge clears the same relative
// bar as phase 1. This is what lets (hierarchy + byte), (hierarchy +
// hierarchy), and (byte + hierarchy) pairs consolidate, since pattern
// entries are not restricted to primitive nodes.
func coActivatedPairs(g *core.Graph, pattern *activation.Pattern) error {
	for _, entry := range pattern.Entries() {
		node, err := g.Node(entry.Node)
		if err != nil {
			return err
		}
		for _, edge := range node.Outgoing() {
			if _, ok := pattern.Get(edge.To); !ok {
				continue
			}
			if _, err := consolidatePair(g, entry.Node, edge.To); err != nil {
				return err
			}
		}
	}
	return nil
}

// consolidatePair applies the single consolidation rule shared by both
// phases: if edge(a,b) exists and its weight is strictly above a's own
// cached_weight_avg, and no hierarchy with payload a‖b already exists,
// create one. Level is one more than the deeper of the two components;
// port_id is inherited from a (the first component), per §4.7 and the
// port-id tiebreak chosen in DESIGN.md. Returns whether a new hierarchy
// was actually created (false if the edge didn't clear the bar, or the
// hierarchy already existed).
func consolidatePair(g *core.Graph, a, b core.NodeID) (bool, error) {
	nodeA, err := g.Node(a)
	if err != nil {
		return false, err
	}
	nodeB, err := g.Node(b)
	if err != nil {
		return false, err
	}

	edge, ok := nodeA.EdgeTo(b)
	if !ok {
		return false, nil
	}

	avg, ok := nodeA.CachedWeightAvg()
	if !ok || avg <= 0 {
		return false, nil
	}
	if float64(edge.Weight)/avg <= 1 {
		return false, nil
	}

	payload := make([]byte, 0, len(nodeA.Payload)+len(nodeB.Payload))
	payload = append(payload, nodeA.Payload...)
	payload = append(payload, nodeB.Payload...)

	level := nodeA.AbstractionLevel
	if nodeB.AbstractionLevel > level {
		level = nodeB.AbstractionLevel
	}
	level++

	_, created, err := g.FindOrCreateHierarchy(payload, level, nodeA.PortID, []core.NodeID{a, b})
	return created, err
}
