// Package persistbound implements the save/load boundary of §6: a
// binary, append-only, versioned dump of a core.Graph's full state
// (every node, every edge, the RunningStats quadruple), plus a
// human-readable YAML debug dump and fixture loader for callers who
// want to inspect or hand-author a small graph.
//
// The binary layout: a header (version, node count), then one record
// per node (id implied by record order, abstraction_level, port_id,
// payload), then the edge count and one record per edge (from, to,
// weight, last_used), then the four RunningStats triples. No
// hierarchy-level count and no hierarchy component list is written. New fields may only ever be appended at the end
// of a record, never inserted, so older blobs keep loading.
//
// Save only ever runs outside a cycle (§5); this package does not itself
// enforce that — it is the caller's (cortex's) responsibility, since
// persistbound has no notion of "cycle" at all.
package persistbound
