// Package hebbian implements the weight-update rules of §4.6: saturation
// aware strengthening for a traversed edge, variance-proportional decay
// for a from-node's non-traversed outgoing edges, and removal of edges
// that have decayed to zero weight and gone stale beyond an adaptive
// inactivity window.
//
// Every delta here is derived from the edge or node's own local state
// (current weight, local weight variance, wave generation gap) — never
// a fixed learning rate. FeedbackError replays one additional sweep
// along a Graph's most recently emitted path, scaling the same rules by
// the externally supplied error signal instead of running them fresh.
package hebbian
