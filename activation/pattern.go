package activation

import (
	"errors"

	"github.com/hebbgraph/hebbgraph/core"
)

// ErrAlreadySeeded indicates InsertInput was called twice for the same
// node within one cycle; a node appears at most once in a Pattern
// (invariant from DATA MODEL).
var ErrAlreadySeeded = errors.New("activation: node already present in pattern")

// Entry pairs a node with its current activation and whether it was
// seeded as input this cycle.
type Entry struct {
	Node       core.NodeID
	Activation float64
	IsInput    bool
}

// Pattern is the ActivationPattern for one processing cycle: an ordered
// sparse list of (node, activation) plus a hash index for O(1) lookup.
// Order is insertion order and is never reshuffled — REFINE and DECODE
// both walk it in that order.
type Pattern struct {
	entries []Entry
	index   map[core.NodeID]int

	// refinedAt records the wave generation at which REFINE last ran to
	// completion on this Pattern, giving REFINE an O(1) idempotence check
	// (re-running REFINE within the same generation is a no-op) — the
	// same cache-invalidation idiom the Graph uses for wave generation.
	refinedAt uint64
}

// New creates an empty Pattern.
func New() *Pattern {
	return &Pattern{index: make(map[core.NodeID]int)}
}

// InsertInput seeds node as an input-tagged node with the given
// activation. Returns ErrAlreadySeeded if node is already present
// (whether as input or continuation) — ENCODE calls this once per
// distinct input node, in input order.
func (p *Pattern) InsertInput(node core.NodeID, activation float64) error {
	if _, ok := p.index[node]; ok {
		return ErrAlreadySeeded
	}
	p.index[node] = len(p.entries)
	p.entries = append(p.entries, Entry{Node: node, Activation: activation, IsInput: true})
	return nil
}

// AddActivation adds delta to node's current activation, inserting it as
// a continuation-group entry (IsInput == false) if not already present.
// This is how ENCODE's spreading step accumulates energy onto targets:
// existing input-tagged entries are never retagged, only their
// activation changes if they happen to also be spread-reached (input
// status is permanent for the cycle once seeded).
func (p *Pattern) AddActivation(node core.NodeID, delta float64) {
	if idx, ok := p.index[node]; ok {
		p.entries[idx].Activation += delta
		return
	}
	p.index[node] = len(p.entries)
	p.entries = append(p.entries, Entry{Node: node, Activation: delta, IsInput: false})
}

// SetActivation overwrites node's activation in place (used by REFINE's
// competition/inhibition scaling). No-op if node is absent.
func (p *Pattern) SetActivation(node core.NodeID, value float64) {
	if idx, ok := p.index[node]; ok {
		p.entries[idx].Activation = value
	}
}

// Get returns the entry for node, if present.
func (p *Pattern) Get(node core.NodeID) (Entry, bool) {
	idx, ok := p.index[node]
	if !ok {
		return Entry{}, false
	}
	return p.entries[idx], true
}

// Entries returns all entries in insertion order. The returned slice is
// owned by the Pattern; callers must not retain it across mutation.
func (p *Pattern) Entries() []Entry { return p.entries }

// Len returns the number of distinct nodes in the pattern.
func (p *Pattern) Len() int { return len(p.entries) }

// InputGroup returns the subsequence of entries tagged IsInput, in
// insertion order.
func (p *Pattern) InputGroup() []Entry {
	out := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		if e.IsInput {
			out = append(out, e)
		}
	}
	return out
}

// ContinuationGroup returns the subsequence of entries not tagged
// IsInput, in insertion order — the candidate set DECODE draws from.
func (p *Pattern) ContinuationGroup() []Entry {
	out := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		if !e.IsInput {
			out = append(out, e)
		}
	}
	return out
}

// MarkRefined records that REFINE completed at wave generation gen.
func (p *Pattern) MarkRefined(gen uint64) { p.refinedAt = gen }

// RefinedAt returns the wave generation at which REFINE last completed
// (0 if never).
func (p *Pattern) RefinedAt() uint64 { return p.refinedAt }
