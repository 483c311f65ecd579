package encode

import (
	"errors"

	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/stats"
)

// ErrNoContinuations indicates that, after ENCODE, the activation
// pattern has no non-input (continuation) nodes at all. This is not a
// fault (§4.8): DECODE must observe it and terminate early, emitting
// nothing.
var ErrNoContinuations = errors.New("encode: no continuation candidates activated")

// ErrEmptyInput indicates Encode was called with a zero-length byte
// sequence; this is a no-op cycle per the Boundary Behaviors of §8, not
// an error condition callers need to branch on specially, but it is
// surfaced distinctly from ErrNoContinuations so callers can tell
// "nothing to do" apart from "something was input but produced no
// candidates".
var ErrEmptyInput = errors.New("encode: input is empty")

// Result is ENCODE's output: the activation pattern, and the ordered
// list of input node ids (for the hierarchy Former's sequence-pair phase
// and for clearing IsInputNode at the next cycle).
type Result struct {
	Pattern   *activation.Pattern
	InputIDs  []core.NodeID
	HopBudget int
}

// Options configures one Encode call. The zero value is the unrestricted
// default: input bytes are not tagged to any port.
type Options struct {
	// PortID tags every node resolved from this cycle's input bytes
	// (first-writer-wins; see core.Graph.TagPortIfUnset), per
	// process_input(port_id, bytes) in §6. 0 means untagged.
	PortID uint8
}

// Option configures Encode via functional arguments.
type Option func(*Options)

// DefaultOptions returns the unrestricted default (PortID 0).
func DefaultOptions() Options { return Options{} }

// WithPortID tags resolved input nodes with portID (§6's per-node
// port_id tag), honoring first-writer-wins so a byte pattern's port
// reflects the port it was first observed on.
func WithPortID(portID uint8) Option {
	return func(o *Options) { o.PortID = portID }
}

// Encode resolves each byte of input to its primitive node (creating one
// on a trie miss), seeds weak recency-shaped activation for the input
// sequence, and spreads that activation along outgoing edges.
//
// gen is the wave generation for this cycle (see core.Graph.BeginCycle),
// used to stamp traversed edges' LastUsed during spreading.
func Encode(g *core.Graph, input []byte, gen uint64, opts ...Option) (Result, error) {
	if len(input) == 0 {
		return Result{}, ErrEmptyInput
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	pattern := activation.New()
	inputIDs := make([]core.NodeID, 0, len(input))

	n := len(input)
	for i, b := range input {
		id, err := g.FindOrCreateNode([]byte{b})
		if err != nil {
			return Result{}, err
		}
		inputIDs = append(inputIDs, id)

		if err := g.TagPortIfUnset(id, options.PortID); err != nil {
			return Result{}, err
		}

		activationVal := recencyActivation(i, n)
		seedOrBoost(pattern, id, activationVal)

		if err := g.MarkInputNode(id); err != nil {
			return Result{}, err
		}
	}

	if err := connectSequentialPairs(g, inputIDs, gen); err != nil {
		return Result{}, err
	}

	hopBudget := hopBudgetFor(g)
	spread(g, pattern, inputIDs, hopBudget, gen)

	clampToLocalCeiling(g, pattern)

	recordActivationStats(g, pattern)

	if len(pattern.ContinuationGroup()) == 0 {
		return Result{Pattern: pattern, InputIDs: inputIDs, HopBudget: hopBudget}, ErrNoContinuations
	}

	return Result{Pattern: pattern, InputIDs: inputIDs, HopBudget: hopBudget}, nil
}

// recencyActivation produces a value in [0,1], monotone non-decreasing
// with recency (later positions score at least as high as earlier ones),
// by combining a normalized position weight with a decaying trace
// multiplicatively (never additively, per §4.3 step 1 and the Open
// Question on recency shape, which leaves the precise curve to the
// implementer).
func recencyActivation(i, n int) float64 {
	posWeight := float64(i+1) / float64(n) // in (0,1], monotone increasing
	recency := 1 - (1-posWeight)*(1-posWeight)
	return posWeight * recency
}

// seedOrBoost inserts node as a fresh input-tagged entry, or — if the
// same byte occurred earlier in this input sequence — raises its
// activation to the larger of the two (recency activation is monotone
// non-decreasing, so a later occurrence never lowers the node's value).
func seedOrBoost(p *activation.Pattern, id core.NodeID, value float64) {
	if e, ok := p.Get(id); ok {
		if value > e.Activation {
			p.SetActivation(id, value)
		}
		return
	}
	_ = p.InsertInput(id, value) // cannot fail: id was just confirmed absent
}

// connectSequentialPairs creates (or leaves untouched, if already
// present) an edge between each pair of consecutive input nodes, per
// the Data Model's lifecycle rule: "an edge is created when ENCODE
// observes two consecutive nodes in the input sequence and no edge
// exists between them." A repeated byte produces a self-referential
// pair, which AddEdge already rejects as a self-edge; that case is
// skipped rather than treated as a fault, since seeing the same byte
// twice in a row is ordinary input, not a structural violation.
func connectSequentialPairs(g *core.Graph, inputIDs []core.NodeID, gen uint64) error {
	for i := 1; i < len(inputIDs); i++ {
		from, to := inputIDs[i-1], inputIDs[i]
		if from == to {
			continue
		}
		if _, err := g.AddEdge(from, to, gen); err != nil {
			return err
		}
	}
	return nil
}

// hopBudgetFor derives the spreading hop budget from the Graph's running
// average out-degree: denser graphs get fewer hops so that spreading
// activation stays a local operation bounded by O(degree), not a global
// sweep. With no edges yet, the budget is 3 (the graph has nothing to
// spread through anyway).
func hopBudgetFor(g *core.Graph) int {
	avgDegree, ok := g.AverageOutDegree()
	if !ok || avgDegree <= 0 {
		return 3
	}
	budget := int(4.0/(1.0+avgDegree) + 0.5)
	if budget < 1 {
		budget = 1
	}
	return budget
}

// spread propagates activation from every input node along outgoing
// edges for up to hopBudget hops. Each hop's contribution to a target is
// the source's current activation times the traversed edge's share of
// its source node's cached weight sum — a purely local, relative
// quantity that naturally decays faster across evenly-weighted fan-out
// and slower along a dominant edge.
func spread(g *core.Graph, pattern *activation.Pattern, inputIDs []core.NodeID, hopBudget int, gen uint64) {
	type frontierItem struct {
		node       core.NodeID
		activation float64
	}

	frontier := make([]frontierItem, 0, len(inputIDs))
	for _, id := range inputIDs {
		entry, ok := pattern.Get(id)
		if !ok {
			continue
		}
		frontier = append(frontier, frontierItem{node: id, activation: entry.Activation})
	}

	for hop := 0; hop < hopBudget && len(frontier) > 0; hop++ {
		next := make([]frontierItem, 0, len(frontier))
		for _, item := range frontier {
			node, err := g.Node(item.node)
			if err != nil {
				continue
			}
			sum := node.CachedWeightSum()
			if sum == 0 {
				continue
			}
			for _, edge := range node.Outgoing() {
				if edge.To == item.node {
					continue // self-edges are disallowed, but guard regardless
				}
				share := float64(edge.Weight) / float64(sum)
				contribution := item.activation * share
				if contribution <= 0 {
					continue
				}
				pattern.AddActivation(edge.To, contribution)
				edge.LastUsed = gen
				next = append(next, frontierItem{node: edge.To, activation: contribution})
			}
		}
		frontier = next
	}
}

// clampToLocalCeiling enforces the single bound ENCODE places on spread
// activation: no continuation activation may exceed the group's local
// maximum times a ceiling ratio derived from the Graph's RunningStats on
// activation magnitude (the 90th-percentile threshold expressed relative
// to the mean). When that statistic is not yet defined (fewer than two
// observations across the Graph's lifetime), no cap is applied — the
// caller defers rather than substituting a hardcoded ceiling.
func clampToLocalCeiling(g *core.Graph, pattern *activation.Pattern) {
	group := pattern.ContinuationGroup()
	if len(group) == 0 {
		return
	}

	localMax := 0.0
	for _, e := range group {
		if e.Activation > localMax {
			localMax = e.Activation
		}
	}
	if localMax <= 0 {
		return
	}

	snap := g.StatsSnapshot()
	var r stats.RunningStats
	r.Restore(snap.Activation)
	if !r.Defined() || r.Mean() <= 0 {
		return
	}
	threshold, ok := r.PercentileThreshold(0.9)
	if !ok || threshold <= 0 {
		return
	}
	ratio := threshold / r.Mean()
	if ratio <= 0 {
		return
	}
	ceiling := localMax * ratio
	if ceiling >= localMax {
		return
	}

	for _, e := range group {
		if e.Activation > ceiling {
			pattern.SetActivation(e.Node, ceiling)
		}
	}
}

// recordActivationStats folds every continuation-group activation value
// produced this cycle into the Graph's running activation statistic, so
// future cycles' clampToLocalCeiling (and other consumers of the
// activation RunningStats) reflect the graph's own observed history.
func recordActivationStats(g *core.Graph, pattern *activation.Pattern) {
	group := pattern.ContinuationGroup()
	if len(group) == 0 {
		return
	}
	g.WithStats(func(q *stats.Quad) {
		for _, e := range group {
			q.Activation.Observe(e.Activation)
		}
	})
}
