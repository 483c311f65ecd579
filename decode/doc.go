// Package decode implements the DECODE phase of the processing pipeline
// (§4.5): autoregressive byte emission driven by a multiplicative,
// strictly local scoring rule over the REFINE output.
//
// Each step assembles a candidate set from the continuation group plus
// (once a current node exists) that node's outgoing neighbors, scores
// every candidate as the product of a relative edge-strength term, a
// group-relative activation term, an optional cosine-similarity
// context-attention term, and a repetition-guard term, then selects the
// argmax with a smallest-node-id tiebreak. Input-tagged nodes are never
// selectable. A winning hierarchy node is emitted atomically. Hebbian
// updates and the adaptive termination checks both happen inline, one
// step at a time, per the ordering guarantee of §5.
package decode
