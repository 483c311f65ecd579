// Package activation holds the two cycle-scoped data structures the
// pipeline passes between phases: ActivationPattern (here, Pattern) and
// the on-demand SparseEmbedding.
//
// Pattern is the working set for one cycle: a sparse, insertion-ordered
// map from node to activation, with a hash index for O(1) lookup and
// O(1) amortized insert/update. It must be walkable twice per cycle
// (REFINE, then DECODE) in the same order it was built — this is
// deliberately not a free-form set (see DESIGN NOTES,
// "generators/iterators").
//
// SparseEmbedding is a temporary sparse vector derived from a node's
// payload n-grams, neighbor set, and abstraction level, built on demand
// during DECODE's optional context-attention scoring term and discarded
// at cycle end; nothing here is persisted.
package activation
