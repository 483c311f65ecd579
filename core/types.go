package core

import (
	"errors"
	"sync"

	"github.com/hebbgraph/hebbgraph/stats"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyPayload indicates FindOrCreateNode was called with an empty payload.
	ErrEmptyPayload = errors.New("core: payload is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node id.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrSelfEdge indicates an edge from a node to itself was requested;
	// the engine has no concept of a self-loop (every edge represents an
	// observed byte transition, which is never a node following itself).
	ErrSelfEdge = errors.New("core: self-edges are not supported")

	// ErrCorruptGraph indicates a structural invariant (cached weight sum,
	// trie uniqueness, hierarchy payload concatenation) was violated.
	ErrCorruptGraph = errors.New("core: structural invariant violated")

	// ErrOutOfMemory indicates an allocation failed; the caller's mutation
	// is rolled back before this is returned, so the Graph remains
	// consistent.
	ErrOutOfMemory = errors.New("core: resource exhausted")
)

// NodeID stably identifies a Node for its entire lifetime. Nodes are never
// moved or renumbered; a NodeID remains valid for as long as the Graph
// that created it exists, even if the node becomes an unreachable orphan.
type NodeID uint64

// invalidNodeID is the zero value, reserved to mean "no node" in contexts
// where a NodeID is optional (e.g. DECODE's "no current node yet").
const invalidNodeID NodeID = 0

// Edge is a directed, single-weight connection from one Node to another.
// Edge has no per-edge context storage and no "kind" field: differences in
// how an edge was created (sequential traversal vs. hierarchy component)
// live entirely in how it is scored, never in a type tag the scoring
// logic branches on (see DESIGN NOTES, "duck-typed edge roles").
type Edge struct {
	From NodeID
	To   NodeID

	// Weight is the Hebbian-learned strength, in [0, 255]. A freshly
	// created edge bootstraps at 1 (never 0: a zero-weight edge is, by
	// invariant #2, either already removed or on its way out).
	Weight uint8

	// LastUsed is the wave generation during which this edge was last
	// traversed (ENCODE spread, DECODE selection, or DECODE emitting a
	// hierarchy built on this edge). Used to compute the adaptive inactivity window for
	// edge removal.
	LastUsed uint64
}

// Node is a byte pattern (abstraction level 0) or a learned hierarchical
// abstraction over component nodes (abstraction level >= 1).
type Node struct {
	ID NodeID

	// Payload is this node's byte pattern. For a primitive node it is a
	// single byte (the STOP sentinel's is two reserved bytes); for a
	// hierarchy node it is the concatenation of its
	// components' payloads (invariant: payload(h) == concat(payload(c))).
	Payload []byte

	// AbstractionLevel is 0 for a primitive byte node, >=1 for a
	// hierarchy node.
	AbstractionLevel uint8

	// PortID tags this node for multi-modal port routing. 0 means
	// untagged/unrestricted. The core only stores and honors this tag;
	// routing policy itself is an external boundary concern.
	PortID uint8

	// Components lists, in order, the node ids this hierarchy node was
	// formed from. Nil for primitive nodes (AbstractionLevel == 0).
	Components []NodeID

	// IsInputNode is a transient, per-cycle flag: true while this node is
	// seeded as input during the current cycle's ENCODE phase. It is
	// cleared at the start of the next cycle and is never persisted.
	IsInputNode bool

	// outgoing is the ordered list of outgoing edges, unique by target.
	// Order is insertion order (first-observed-first), matching the
	// "ordered, unique by target" invariant.
	outgoing []*Edge

	// outIndex maps target NodeID to the *Edge in outgoing, for O(1)
	// existence checks without a linear scan.
	outIndex map[NodeID]*Edge

	// weightSum caches Σ weights of outgoing, kept in lockstep with every
	// mutation of outgoing (invariant #1).
	weightSum uint64
}

// Outgoing returns the node's outgoing edges in insertion order. The
// returned slice is owned by the Graph; callers must not mutate it.
func (n *Node) Outgoing() []*Edge { return n.outgoing }

// OutDegree returns the number of outgoing edges.
func (n *Node) OutDegree() int { return len(n.outgoing) }

// CachedWeightSum returns the cached Σ weights of outgoing edges.
func (n *Node) CachedWeightSum() uint64 { return n.weightSum }

// CachedWeightAvg returns weightSum / OutDegree, or (0, false) if the node
// has no outgoing edges — callers must treat this as undefined, never
// substitute a default ratio.
func (n *Node) CachedWeightAvg() (float64, bool) {
	if len(n.outgoing) == 0 {
		return 0, false
	}
	return float64(n.weightSum) / float64(len(n.outgoing)), true
}

// EdgeTo returns the outgoing edge to target, if one exists.
func (n *Node) EdgeTo(target NodeID) (*Edge, bool) {
	e, ok := n.outIndex[target]
	return e, ok
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithCapacityHint pre-sizes the node arena to reduce reallocation for
// callers that know roughly how many distinct byte patterns to expect.
// This is a structural hint, never a behavioral threshold.
func WithCapacityHint(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.nodes = make([]*Node, 1, n+1) // slot 0 reserved (invalidNodeID)
		}
	}
}

// Graph owns every Node and Edge by stable id, the pattern trie, the
// hierarchy index, the RunningStats quad, and the monotonic wave
// generation counter. See §5 for the concurrency and ownership model.
type Graph struct {
	muNodes sync.RWMutex // guards nodes arena + trie
	muEdges sync.RWMutex // guards outgoing edges, adjacency caches, waveGeneration
	muStats sync.RWMutex // guards the RunningStats quad

	nodes []*Node // index 0 reserved/unused; NodeID doubles as slice index
	trie  *patternTrie

	hierarchyIndex map[uint8][]NodeID // abstraction level -> node ids at that level

	statsQuad stats.Quad

	waveGeneration uint64

	// totalOutEdges is the running total edge count, maintained
	// incrementally by AddEdge/RemoveEdge so AverageOutDegree is O(1)
	// instead of a global scan.
	totalOutEdges uint64

	stopNodeID NodeID

	// lastEmittedPath records the edges traversed by the most recent
	// successful DECODE, for FeedbackError (§4.6) to replay against.
	// Cleared at the start of the next cycle's ENCODE.
	lastEmittedPath []*Edge
}

// NewGraph constructs an empty Graph with a well-defined STOP sentinel
// node (abstraction level 0, empty payload is disallowed for ordinary
// nodes, so STOP uses the reserved two-byte payload 0x00 0x00 with PortID
// 0 and is never produced by FindOrCreateNode for ordinary input — see
// stopPayload). Complexity: O(1) plus O(len(opts)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:          make([]*Node, 1), // slot 0 == invalidNodeID, left nil
		trie:           newPatternTrie(),
		hierarchyIndex: make(map[uint8][]NodeID),
	}
	for _, opt := range opts {
		opt(g)
	}

	stop := g.allocNode(stopPayload(), 0, 0, nil)
	g.stopNodeID = stop.ID
	// The sentinel's payload is reserved: ordinary FindOrCreateNode calls
	// use single real input bytes, so collision is impossible in-band;
	// trie.insert still records it for consistency with "every node is
	// reachable from exactly one trie path" (invariant #3's sibling rule).
	g.trie.insert(stop.Payload, stop.ID)

	return g
}

// stopPayload is the reserved byte pattern for the STOP sentinel. It is a
// 2-byte sequence so it can never collide with a single input byte (every
// primitive node created from real input is exactly 1 byte).
func stopPayload() []byte { return []byte{0x00, 0x00} }

// StopNode returns the id of the graph-wide STOP sentinel created by
// NewGraph. Selecting STOP as a DECODE candidate terminates the cycle
// (§4.5 step 7b) purely through its score, never a special case.
func (g *Graph) StopNode() NodeID { return g.stopNodeID }
