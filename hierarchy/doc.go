// Package hierarchy implements the Hierarchy Former (§4.7): consuming
// only the cycle's ActivationPattern (never a global graph scan), it
// consolidates strongly co-activated edges into new abstraction nodes.
//
// Two phases run every cycle, after REFINE: sequence pairs (consecutive
// input-tagged nodes) and co-activated pairs (any two nodes both present
// in the ActivationPattern with an edge between them). Both apply the
// same relative rule — an edge strictly above the source node's own
// cached average weight — and both go through core.Graph's trie-backed
// FindOrCreateHierarchy, so a hierarchy payload already present is never
// duplicated.
package hierarchy
