// Package refine implements the REFINE phase of the processing pipeline
// (§4.4): sharpening the activation.Pattern produced by ENCODE through
// local competition and lateral inhibition, before DECODE draws
// candidates from it.
//
// Competition runs once per group (input, continuation), each scaled
// against its own maximum so a high-activation group can never shadow
// the other; lateral inhibition then runs only over the continuation
// group, since that is the one DECODE draws candidates from. Every
// comparison is to a quantity derived from the group itself (its
// maximum, its own RunningStats) — never to a fixed constant. REFINE is
// idempotent within one wave generation: calling it twice on the same
// Pattern without an intervening ENCODE is a no-op, which Pattern's
// RefinedAt/MarkRefined pair enforces in O(1).
package refine
