package refine

import (
	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/stats"
)

// Refine sharpens pattern in place: competition scales the input group
// and the continuation group each relative to its own maximum (so the
// strongest member of each reaches 1), then lateral inhibition zeroes
// out whatever in the continuation group falls below a percentile
// threshold derived from that group's own (post-competition)
// distribution.
//
// Refine is idempotent per wave generation: if pattern was already
// refined at gen, this is a no-op (mirrors the Graph's own wave
// generation cache-invalidation idiom, and is what makes a second call
// within the same cycle safe rather than progressively over-suppressing
// the group).
func Refine(pattern *activation.Pattern, gen uint64) {
	if pattern.RefinedAt() == gen {
		return
	}

	compete(pattern, pattern.InputGroup())
	compete(pattern, pattern.ContinuationGroup())
	inhibit(pattern)

	pattern.MarkRefined(gen)
}

// compete rescales every entry in group relative to the group's own
// maximum, so the strongest member reaches exactly 1 and every other
// member's value expresses its strength purely as a fraction of the
// winner's — never against an absolute activation constant. Called once
// per group (input, continuation) so a group with a high raw activation
// can never shadow the other: each is normalized on its own terms.
func compete(pattern *activation.Pattern, group []activation.Entry) {
	if len(group) == 0 {
		return
	}

	max := 0.0
	for _, e := range group {
		if e.Activation > max {
			max = e.Activation
		}
	}
	if max <= 0 {
		return
	}

	for _, e := range group {
		pattern.SetActivation(e.Node, e.Activation/max)
	}
}

// inhibit computes a RunningStats over the (post-competition)
// continuation group and zeroes every entry below the group's own 25th
// percentile threshold. With fewer than two continuation entries the
// statistic is undefined and inhibition is skipped entirely, leaving the
// sole candidate untouched rather than guessing at a cutoff.
func inhibit(pattern *activation.Pattern) {
	group := pattern.ContinuationGroup()
	if len(group) < 2 {
		return
	}

	values := make([]float64, len(group))
	for i, e := range group {
		values[i] = e.Activation
	}
	groupStats := stats.OfGroup(values)

	threshold, ok := groupStats.PercentileThreshold(0.25)
	if !ok {
		return
	}

	for _, e := range group {
		if e.Activation < threshold {
			pattern.SetActivation(e.Node, 0)
		}
	}
}
