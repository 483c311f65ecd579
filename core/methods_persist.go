package core

// NewEmptyGraph constructs a Graph with no STOP sentinel pre-seeded —
// used only by persistbound.Load and persistbound.LoadYAMLFixture, which
// reconstruct every node
// (including the original STOP sentinel) from a saved blob and must not
// have NewGraph silently add a second one ahead of it.
func NewEmptyGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:          make([]*Node, 1),
		trie:           newPatternTrie(),
		hierarchyIndex: make(map[uint8][]NodeID),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// StopPayload exposes the reserved STOP sentinel payload so boundary
// code (persistbound) can recognize a restored node as the sentinel
// without duplicating the reserved byte sequence itself.
func StopPayload() []byte { return stopPayload() }

// RestoreNode appends a node exactly as recorded in a saved blob,
// preserving arena order (the caller is responsible for replaying
// records in their original id order, so ids come out identical to the
// saved graph's). Complexity: O(|payload|) for the trie insert.
func (g *Graph) RestoreNode(payload []byte, level uint8, portID uint8, components []NodeID) (NodeID, error) {
	if len(payload) == 0 {
		return invalidNodeID, ErrEmptyPayload
	}

	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	n := g.allocNode(payload, level, portID, components)
	g.trie.insert(n.Payload, n.ID)
	if level > 0 {
		g.hierarchyIndex[level] = append(g.hierarchyIndex[level], n.ID)
	}
	return n.ID, nil
}

// RestoreEdge appends an edge exactly as recorded in a saved blob,
// trusting the caller's weight and last_used rather than bootstrapping.
// A second edge for the same from->to pair is rejected with
// ErrCorruptGraph; no other consistency check is made here.
func (g *Graph) RestoreEdge(from, to NodeID, weight uint8, lastUsed uint64) error {
	g.muNodes.RLock()
	if int(from) <= 0 || int(from) >= len(g.nodes) || g.nodes[from] == nil {
		g.muNodes.RUnlock()
		return ErrNodeNotFound
	}
	if int(to) <= 0 || int(to) >= len(g.nodes) || g.nodes[to] == nil {
		g.muNodes.RUnlock()
		return ErrNodeNotFound
	}
	fromNode := g.nodes[from]
	g.muNodes.RUnlock()

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	if _, ok := fromNode.outIndex[to]; ok {
		return ErrCorruptGraph
	}

	e := &Edge{From: from, To: to, Weight: weight, LastUsed: lastUsed}
	fromNode.outgoing = append(fromNode.outgoing, e)
	fromNode.outIndex[to] = e
	fromNode.weightSum += uint64(weight)
	g.totalOutEdges++
	return nil
}

// MarkStopNode designates id as the Graph's STOP sentinel, used by
// persistbound's loaders after replaying the node whose payload equals
// StopPayload().
func (g *Graph) MarkStopNode(id NodeID) {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.stopNodeID = id
}
