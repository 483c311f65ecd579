package decode

import (
	"context"
	"errors"

	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/hebbian"
	"github.com/hebbgraph/hebbgraph/portfilter"
	"github.com/hebbgraph/hebbgraph/stats"
)

// TerminationReason names why a DECODE cycle stopped, for CycleSummary
// consumers; it is diagnostic only and never branched on internally
// beyond the one switch that produces it.
type TerminationReason string

const (
	ReasonNoCandidates   TerminationReason = "no_candidates"
	ReasonNaturalStop    TerminationReason = "natural_stop"
	ReasonStopEdge       TerminationReason = "stop_edge"
	ReasonPathLengthCap  TerminationReason = "path_length_cap"
	ReasonPortNotAllowed TerminationReason = "port_not_permitted"
	ReasonCancelled      TerminationReason = "cancelled"
)

// ErrCancelled indicates the context passed via WithContext was done
// between two DECODE steps (§5's cooperative cancellation boundary).
// Steps already completed — including their Hebbian updates — remain;
// only the pending continuation of this cycle's emission is dropped.
var ErrCancelled = errors.New("decode: cancelled between steps")

// Result is DECODE's output for one cycle.
type Result struct {
	Bytes     []byte
	Path      []*core.Edge
	Reason    TerminationReason
	StepCount int
}

// Options configures one Decode call. The zero value disables
// cancellation (ctx defaults to context.Background()).
type Options struct {
	Ctx context.Context
}

// Option configures Decode via functional arguments.
type Option func(*Options)

// DefaultOptions returns the uncancellable default.
func DefaultOptions() Options { return Options{Ctx: context.Background()} }

// WithContext threads ctx through the DECODE loop so the cycle can be
// cancelled cooperatively between steps (§5), mirroring bfs.WithContext.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// Decode runs the autoregressive emission loop against pattern (the
// REFINE output) until one of §4.5 step 7's termination conditions
// fires, or the supplied context (via WithContext) is done between
// steps. gen is the cycle's wave generation, used to stamp traversed
// edges' LastUsed during Hebbian updates.
func Decode(g *core.Graph, pattern *activation.Pattern, filter portfilter.Filter, gen uint64, opts ...Option) (Result, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	ctx := options.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	inputSet := make(map[core.NodeID]struct{})
	for _, e := range pattern.InputGroup() {
		inputSet[e.Node] = struct{}{}
	}

	maxGroupActivation := 0.0
	for _, e := range pattern.ContinuationGroup() {
		if e.Activation > maxGroupActivation {
			maxGroupActivation = e.Activation
		}
	}

	lengthCap := pathLengthCap(g)

	var emitted []byte
	var path []*core.Edge
	var currentNode core.NodeID
	haveCurrent := false
	steps := 0

	for {
		select {
		case <-ctx.Done():
			res, err := finish(g, emitted, path, ReasonCancelled, steps, currentNode, haveCurrent)
			if err != nil {
				return res, err
			}
			return res, ErrCancelled
		default:
		}

		if len(emitted) >= lengthCap {
			return finish(g, emitted, path, ReasonPathLengthCap, steps, currentNode, haveCurrent)
		}

		cands, err := buildCandidates(g, pattern, inputSet, currentNode, haveCurrent, filter)
		if err != nil {
			return Result{}, err
		}
		if len(cands) == 0 {
			// At step 0 every candidate comes from the continuation group, so
			// an empty set means routing excluded everything only when that
			// group had a positive entry to exclude.
			if steps == 0 {
				for _, e := range pattern.ContinuationGroup() {
					if e.Activation > 0 {
						return finish(g, emitted, path, ReasonPortNotAllowed, steps, currentNode, haveCurrent)
					}
				}
			}
			return finish(g, emitted, path, ReasonNoCandidates, steps, currentNode, haveCurrent)
		}

		var fromNode *core.Node
		if haveCurrent {
			fromNode, err = g.Node(currentNode)
			if err != nil {
				return Result{}, err
			}
		}

		scores := make([]float64, len(cands))
		var bestIdx int
		bestFound := false
		for i, c := range cands {
			toNode, err := g.Node(c.node)
			if err != nil {
				return Result{}, err
			}
			scores[i] = score(g, c, maxGroupActivation, currentNode, haveCurrent, emitted, toNode, fromNode)
			if !bestFound || scores[i] > scores[bestIdx] ||
				(scores[i] == scores[bestIdx] && c.node < cands[bestIdx].node) {
				bestIdx = i
				bestFound = true
			}
		}

		ns := naturalStopScore(scores)
		if scores[bestIdx] <= ns {
			return finish(g, emitted, path, ReasonNaturalStop, steps, currentNode, haveCurrent)
		}

		best := cands[bestIdx]
		steps++

		// best may have been reached only through continuation-group
		// activation, with no edge yet from currentNode (a
		// hierarchy-implied or spreading-activation transition). The
		// Data Model's lifecycle rule allows edge creation during DECODE
		// for exactly this case; creating it here, before scoring's
		// traversal is recorded, is what lets every selected step — not
		// only the ones that happened to already have an edge — receive
		// its Hebbian traversal update and its from-node's non-traversal
		// decay sweep.
		if haveCurrent && best.viaEdge == nil {
			edge, err := g.AddEdge(currentNode, best.node, gen)
			if err != nil {
				return Result{}, err
			}
			best.viaEdge = edge
		}

		if best.node == g.StopNode() {
			if best.viaEdge != nil {
				r := relevanceOf(best, maxGroupActivation)
				if err := hebbian.Sweep(g, currentNode, best.viaEdge, r, gen); err != nil {
					return Result{}, err
				}
			}
			return finish(g, emitted, path, ReasonStopEdge, steps, currentNode, haveCurrent)
		}

		toNode, err := g.Node(best.node)
		if err != nil {
			return Result{}, err
		}
		emitted = append(emitted, toNode.Payload...)

		if toNode.AbstractionLevel >= 1 {
			if err := touchHierarchyComponents(g, toNode, gen); err != nil {
				return Result{}, err
			}
		}

		if best.viaEdge != nil {
			path = append(path, best.viaEdge)
			r := relevanceOf(best, maxGroupActivation)
			if err := hebbian.Sweep(g, currentNode, best.viaEdge, r, gen); err != nil {
				return Result{}, err
			}
		}

		currentNode = best.node
		haveCurrent = true
	}
}

// touchHierarchyComponents marks the edges between h's immediate
// components as used at gen (§4.5 step 5: "its constituent traversal is
// marked in edge.last_used"). The hierarchy shortcut emits h's payload
// atomically and never walks its component edges directly, so without
// this an actively-used hierarchy's backing edges would still decay
// toward zero from simple non-use and eventually be pruned by
// hebbian.Sweep's stale-edge removal elsewhere in the graph.
func touchHierarchyComponents(g *core.Graph, h *core.Node, gen uint64) error {
	for i := 1; i < len(h.Components); i++ {
		fromID, toID := h.Components[i-1], h.Components[i]
		fromComponent, err := g.Node(fromID)
		if err != nil {
			return err
		}
		edge, ok := fromComponent.EdgeTo(toID)
		if !ok {
			continue // pruned or never materialized; nothing to touch
		}
		if err := g.SetEdgeWeight(fromID, edge, edge.Weight, true, gen); err != nil {
			return err
		}
	}
	return nil
}

func relevanceOf(c candidate, maxGroupActivation float64) float64 {
	if !c.inGroup || maxGroupActivation <= 0 {
		return 0
	}
	r := c.groupActiv / maxGroupActivation
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return r
}

func finish(g *core.Graph, emitted []byte, path []*core.Edge, reason TerminationReason, steps int, currentNode core.NodeID, haveCurrent bool) (Result, error) {
	g.SetLastEmittedPath(path)
	g.WithStats(func(q *stats.Quad) {
		q.PathLength.Observe(float64(len(emitted)))
	})
	return Result{Bytes: emitted, Path: path, Reason: reason, StepCount: steps}, nil
}

// buildCandidates assembles the candidate set of §4.5 step 1: every
// continuation-group node with positive activation, plus — once a
// current node exists — its outgoing neighbors that are not input-group
// nodes, subject to filter.
func buildCandidates(g *core.Graph, pattern *activation.Pattern, inputSet map[core.NodeID]struct{}, currentNode core.NodeID, haveCurrent bool, filter portfilter.Filter) ([]candidate, error) {
	byNode := make(map[core.NodeID]*candidate)
	order := make([]core.NodeID, 0)

	for _, e := range pattern.ContinuationGroup() {
		if e.Activation <= 0 {
			continue
		}
		c := &candidate{node: e.Node, inGroup: true, groupActiv: e.Activation}
		byNode[e.Node] = c
		order = append(order, e.Node)
	}

	if haveCurrent {
		fromNode, err := g.Node(currentNode)
		if err != nil {
			return nil, err
		}
		for _, edge := range fromNode.Outgoing() {
			if _, isInput := inputSet[edge.To]; isInput {
				continue
			}
			if existing, ok := byNode[edge.To]; ok {
				existing.viaEdge = edge
				continue
			}
			c := &candidate{node: edge.To, viaEdge: edge}
			byNode[edge.To] = c
			order = append(order, edge.To)
		}
	}

	out := make([]candidate, 0, len(order))
	for _, id := range order {
		n, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		if !filter.Allows(n) {
			continue
		}
		out = append(out, *byNode[id])
	}
	return out, nil
}

// pathLengthCap derives the adaptive output-length cap from the Graph's
// path-length RunningStats (§4.5 step 7c), using the 95th percentile
// threshold. Before that statistic has enough history to be defined,
// a bootstrap cap of four times the graph's own node count, and never
// less than 8, is used purely as a resource safety bound until real
// history accumulates.
func pathLengthCap(g *core.Graph) int {
	snap := g.StatsSnapshot()
	var r stats.RunningStats
	r.Restore(snap.PathLength)
	if threshold, ok := r.PercentileThreshold(0.95); ok && threshold >= 1 {
		return int(threshold + 0.5)
	}
	bootstrap := g.NodeCount() * 4
	if bootstrap < 8 {
		bootstrap = 8
	}
	return bootstrap
}
