package core

// AddEdge creates the edge from->to with bootstrap weight 1 if one does
// not already exist, appends it to from's outgoing list, and updates the
// cached weight sum. If the edge already exists, it is returned unchanged
// (idempotent; callers that want to strengthen an existing edge use
// hebbian.ApplyTraversal, not AddEdge again).
//
// Returns ErrNodeNotFound if either endpoint is unknown, ErrSelfEdge for
// from == to. Complexity: O(1), no global scan.
func (g *Graph) AddEdge(from, to NodeID, gen uint64) (*Edge, error) {
	if from == to {
		return nil, ErrSelfEdge
	}

	g.muNodes.RLock()
	if int(from) <= 0 || int(from) >= len(g.nodes) || g.nodes[from] == nil {
		g.muNodes.RUnlock()
		return nil, ErrNodeNotFound
	}
	if int(to) <= 0 || int(to) >= len(g.nodes) || g.nodes[to] == nil {
		g.muNodes.RUnlock()
		return nil, ErrNodeNotFound
	}
	fromNode := g.nodes[from]
	g.muNodes.RUnlock()

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	if e, ok := fromNode.outIndex[to]; ok {
		return e, nil
	}

	e := &Edge{From: from, To: to, Weight: 1, LastUsed: gen}
	fromNode.outgoing = append(fromNode.outgoing, e)
	fromNode.outIndex[to] = e
	fromNode.weightSum += uint64(e.Weight)
	g.totalOutEdges++

	return e, nil
}

// RemoveEdge unlinks e from its owning node's outgoing list and
// decrements the cached weight sum. Returns ErrEdgeNotFound if e is not
// currently present (e.g. already removed). Complexity: O(deg(from))
// for the slice compaction, O(1) for the index map.
//
// Per §4.1, the caller is responsible for never removing the last path
// to a hierarchy node (abstraction_level > 0); primitive nodes may become
// orphans and simply persist.
func (g *Graph) RemoveEdge(e *Edge) error {
	g.muNodes.RLock()
	if int(e.From) <= 0 || int(e.From) >= len(g.nodes) || g.nodes[e.From] == nil {
		g.muNodes.RUnlock()
		return ErrNodeNotFound
	}
	fromNode := g.nodes[e.From]
	g.muNodes.RUnlock()

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	existing, ok := fromNode.outIndex[e.To]
	if !ok || existing != e {
		return ErrEdgeNotFound
	}

	delete(fromNode.outIndex, e.To)
	for i, cand := range fromNode.outgoing {
		if cand == e {
			fromNode.outgoing = append(fromNode.outgoing[:i], fromNode.outgoing[i+1:]...)
			break
		}
	}
	fromNode.weightSum -= uint64(existing.Weight)
	g.totalOutEdges--

	return nil
}

// EdgeCount returns the running total number of edges across every node's
// outgoing list. Maintained incrementally; never a global scan.
func (g *Graph) EdgeCount() uint64 {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	return g.totalOutEdges
}

// AverageOutDegree returns the running mean out-degree across all nodes
// (totalOutEdges / NodeCount), or (0, false) if the graph has no nodes
// yet. Maintained incrementally; never a global scan. Used to size the
// ENCODE spreading hop budget (§4.3): denser graphs get a smaller budget.
func (g *Graph) AverageOutDegree() (float64, bool) {
	g.muNodes.RLock()
	n := len(g.nodes) - 1
	g.muNodes.RUnlock()
	if n <= 0 {
		return 0, false
	}

	g.muEdges.RLock()
	total := g.totalOutEdges
	g.muEdges.RUnlock()

	return float64(total) / float64(n), true
}

// SetEdgeWeight overwrites e.Weight and keeps from's cached weight sum
// consistent with the change. When touched is true, e.LastUsed is also
// set to gen (a weight change driven by traversal always touches LastUsed; a
// non-traversal decay does not, since the node wasn't used this cycle).
// Complexity: O(1).
func (g *Graph) SetEdgeWeight(fromID NodeID, e *Edge, newWeight uint8, touched bool, gen uint64) error {
	g.muNodes.RLock()
	if int(fromID) <= 0 || int(fromID) >= len(g.nodes) || g.nodes[fromID] == nil {
		g.muNodes.RUnlock()
		return ErrNodeNotFound
	}
	fromNode := g.nodes[fromID]
	g.muNodes.RUnlock()

	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	if _, ok := fromNode.outIndex[e.To]; !ok {
		return ErrEdgeNotFound
	}

	fromNode.weightSum = fromNode.weightSum - uint64(e.Weight) + uint64(newWeight)
	e.Weight = newWeight
	if touched {
		e.LastUsed = gen
	}

	return nil
}

// VerifyWeightSum recomputes from's outgoing weight sum from scratch and
// compares it to the cached value, raising ErrCorruptGraph on mismatch.
// This is the check described in §7 ("Cache consistency ... rechecked
// lazily on next access"); no cycle or load path calls it automatically.
func (g *Graph) VerifyWeightSum(fromID NodeID) error {
	g.muNodes.RLock()
	if int(fromID) <= 0 || int(fromID) >= len(g.nodes) || g.nodes[fromID] == nil {
		g.muNodes.RUnlock()
		return ErrNodeNotFound
	}
	fromNode := g.nodes[fromID]
	g.muNodes.RUnlock()

	g.muEdges.RLock()
	defer g.muEdges.RUnlock()

	var sum uint64
	for _, e := range fromNode.outgoing {
		sum += uint64(e.Weight)
	}
	if sum != fromNode.weightSum {
		return ErrCorruptGraph
	}
	return nil
}
