// Package encode implements the ENCODE phase of the processing pipeline
// (§4.3): turning an ordered sequence of input nodes into an
// activation.Pattern by seeding weak, recency-shaped input activation and
// then spreading it along outgoing edges.
//
// Spreading hop budget and per-hop decay are both derived from the
// Graph's own structure (average out-degree, a node's local edge-weight
// distribution) rather than any fixed constant, per the engine's
// relative-comparison rule. The only bound on spread magnitude comes from
// the Graph's RunningStats on activation, expressed as a ratio to the
// local maximum rather than an absolute ceiling.
package encode
