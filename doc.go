// Package hebbgraph is a byte-level, online-learning associative graph
// engine: feed it a stream of bytes and it grows a directed graph whose
// nodes are byte patterns (and learned abstractions of them), whose edges
// carry Hebbian-learned weights, and from which continuations are produced
// by spreading activation and autoregressive decoding.
//
// 🚀 What is hebbgraph?
//
//	A single-threaded-per-cycle, zero-global-state engine that brings
//	together:
//
//	  • Core primitives: nodes, edges, a byte-pattern trie, a hierarchy
//	    index — all owned by one Graph, mutated under split locks.
//	  • A three-phase pipeline: ENCODE (seed + spread activation),
//	    REFINE (competition + lateral inhibition), DECODE (autoregressive
//	    byte emission).
//	  • Hebbian learning along traversed edges, and organic hierarchy
//	    formation from repeated co-activation.
//
// ✨ Why choose hebbgraph?
//
//   - Fully local    — every decision compares a value to a locally derived
//     reference (a node's own edge-weight average, a group's own variance);
//     never to a hardcoded constant.
//   - Data-driven    — all thresholds come from RunningStats (Welford
//     mean/variance) over what the graph has actually seen.
//   - Pure Go        — no cgo; third-party deps are limited to testify
//     (tests) and yaml.v3 (persistence fixtures/debug dump).
//
// Under the hood, everything is organized under single-purpose
// subpackages:
//
//	stats/        — RunningStats (Welford), percentile-based thresholds
//	core/         — Node, Edge, Graph, PatternTrie, hierarchy index
//	activation/   — ActivationPattern, on-demand SparseEmbedding
//	encode/       — ENCODE phase
//	refine/       — REFINE phase
//	decode/       — DECODE phase (autoregressive generation)
//	hebbian/      — Hebbian weight updates, error-feedback sweep
//	hierarchy/    — Hierarchy Former (organic multi-level abstraction)
//	portfilter/   — port_id candidate filtering (boundary seam)
//	persistbound/ — save/load blob boundary + YAML debug dump
//	cortex/       — top-level facade wiring the above into one engine
//
// Quick conceptual example:
//
//	"ab" fed five times grows a→b (strengthened) plus a level-1
//	hierarchy node "ab"; feeding "a" afterward emits "b".
//
// See cortex/doc.go for the external interface (Create, ProcessInput,
// FeedbackError, SetRouting, Stats, Save/Load) and SPEC_FULL.md for the
// full design.
//
//	go get github.com/hebbgraph/hebbgraph
package hebbgraph
