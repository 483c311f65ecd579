// Package core defines the central Graph, Node, and Edge types of the
// associative graph engine, and the thread-safe primitives for building
// and querying graphs that the encode/refine/decode/hebbian/
// hierarchy packages operate on.
//
// All core APIs use separate sync.RWMutex locks internally (muNodes for
// the node arena and pattern trie, muEdges for edges/adjacency/wave
// generation, muStats for the RunningStats quad), so read-only queries
// against a Graph that is not mid-cycle remain safe from other
// goroutines, while a single cycle still owns the graph mutably
// end-to-end (see §5 of the design).
//
// Node, Edge, Graph, GraphOption, and sentinel errors live in types.go,
// the pattern trie in trie.go, node/edge mutation in methods_nodes.go and
// methods_edges.go, hierarchy bookkeeping in methods_nodes.go, load-time
// restoration in methods_persist.go, and the per-cycle wave-generation
// counter in methods_cycle.go.
//
// Errors:
//
//	ErrEmptyPayload  - empty payload passed to FindOrCreateNode.
//	ErrNodeNotFound  - requested node id does not exist.
//	ErrEdgeNotFound  - requested edge does not exist between two nodes.
//	ErrSelfEdge      - an edge from a node to itself was requested.
//	ErrCorruptGraph  - a structural invariant was found violated on read.
//	ErrOutOfMemory   - allocation failed; no partial structural change survives.
package core
