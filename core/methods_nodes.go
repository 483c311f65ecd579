package core

// allocNode appends a new Node to the arena and returns it. Caller must
// hold muNodes for writing. The new node's ID is its arena index, so
// NodeIDs are dense and stable for the Graph's lifetime.
func (g *Graph) allocNode(payload []byte, level uint8, portID uint8, components []NodeID) *Node {
	n := &Node{
		ID:               NodeID(len(g.nodes)),
		Payload:          append([]byte(nil), payload...), // defensive copy: caller's slice may be reused
		AbstractionLevel: level,
		PortID:           portID,
		Components:       components,
		outIndex:         make(map[NodeID]*Edge),
	}
	g.nodes = append(g.nodes, n)
	return n
}

// FindOrCreateNode resolves payload to its primitive Node, creating one on
// a trie miss. Complexity: O(|payload|), one trie walk plus at most one
// allocation; no global scan.
//
// Returns ErrEmptyPayload for a zero-length payload. This is the only
// entry point that creates abstraction-level-0 nodes inline; hierarchy
// nodes (level >= 1) are only ever created by the hierarchy Former.
func (g *Graph) FindOrCreateNode(payload []byte) (NodeID, error) {
	if len(payload) == 0 {
		return invalidNodeID, ErrEmptyPayload
	}

	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	if id, ok := g.trie.lookup(payload); ok {
		return id, nil
	}

	n := g.allocNode(payload, 0, 0, nil)
	g.trie.insert(n.Payload, n.ID)

	return n.ID, nil
}

// FindOrCreateHierarchy is the hierarchy Former's analogue of
// FindOrCreateNode: it never creates a level-0 node, and the resulting
// node's payload is always the concatenation of the component payloads.
// The caller supplies level and portID (inherited from the first
// component per §4.7's port-id tiebreak) and the concatenated payload.
// Returns (id, created, err) where created is false when an identical
// hierarchy payload already existed (never duplicated, per the trie
// lookup guarantee).
func (g *Graph) FindOrCreateHierarchy(payload []byte, level uint8, portID uint8, components []NodeID) (NodeID, bool, error) {
	if level == 0 {
		return invalidNodeID, false, ErrCorruptGraph
	}

	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	if id, ok := g.trie.lookup(payload); ok {
		return id, false, nil
	}

	n := g.allocNode(payload, level, portID, components)
	g.trie.insert(n.Payload, n.ID)

	g.hierarchyIndex[level] = append(g.hierarchyIndex[level], n.ID)

	return n.ID, true, nil
}

// Node returns the Node for id. Returns ErrNodeNotFound for an id outside
// the arena (never created, or a stale id from a different Graph).
func (g *Graph) Node(id NodeID) (*Node, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	if int(id) <= 0 || int(id) >= len(g.nodes) {
		return nil, ErrNodeNotFound
	}
	n := g.nodes[id]
	if n == nil {
		return nil, ErrNodeNotFound
	}
	return n, nil
}

// NodeCount returns the number of nodes ever allocated (including the
// STOP sentinel and any orphans). Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return len(g.nodes) - 1 // exclude the reserved zero slot
}

// HierarchiesAtLevel returns the node ids at abstraction level k, in
// creation order. Complexity: O(1) access to the maintained list (the
// returned slice is a defensive copy; O(|result|) to produce it).
func (g *Graph) HierarchiesAtLevel(k uint8) []NodeID {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	src := g.hierarchyIndex[k]
	out := make([]NodeID, len(src))
	copy(out, src)
	return out
}

// ResetInputFlags clears IsInputNode on every node that currently has it
// set. Called at the start of ENCODE so the previous cycle's input
// tagging never leaks into the new cycle. Complexity: O(previously
// tagged), not a global scan, since callers pass the exact set of nodes
// tagged last cycle.
func (g *Graph) ResetInputFlags(ids []NodeID) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	for _, id := range ids {
		if int(id) <= 0 || int(id) >= len(g.nodes) || g.nodes[id] == nil {
			return ErrNodeNotFound
		}
		g.nodes[id].IsInputNode = false
	}
	return nil
}

// MarkInputNode tags id as input for the current cycle.
func (g *Graph) MarkInputNode(id NodeID) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	if int(id) <= 0 || int(id) >= len(g.nodes) || g.nodes[id] == nil {
		return ErrNodeNotFound
	}
	g.nodes[id].IsInputNode = true
	return nil
}

// TagPortIfUnset sets id's PortID to portID, but only if the node is
// currently untagged (PortID == 0) and portID != 0. A node's port tag is
// first-writer-wins: the port a byte pattern was first observed on is
// the one it keeps, since a primitive node is shared across every cycle
// that happens to produce the same byte. Untagged (0) stays unrestricted
// forever if portID is also 0, or if the node was never retagged.
func (g *Graph) TagPortIfUnset(id NodeID, portID uint8) error {
	if portID == 0 {
		return nil
	}

	g.muNodes.Lock()
	defer g.muNodes.Unlock()

	if int(id) <= 0 || int(id) >= len(g.nodes) || g.nodes[id] == nil {
		return ErrNodeNotFound
	}
	if g.nodes[id].PortID == 0 {
		g.nodes[id].PortID = portID
	}
	return nil
}

// HierarchyLevelCounts returns, for every abstraction level that has at
// least one hierarchy node, the count of hierarchy nodes at that level.
// Used by the stats() boundary operation (§6); complexity O(levels),
// never a scan over all nodes.
func (g *Graph) HierarchyLevelCounts() map[uint8]int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	out := make(map[uint8]int, len(g.hierarchyIndex))
	for level, ids := range g.hierarchyIndex {
		if len(ids) > 0 {
			out[level] = len(ids)
		}
	}
	return out
}
