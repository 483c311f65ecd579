package refine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/refine"
)

func buildPattern(t *testing.T) *activation.Pattern {
	t.Helper()
	p := activation.New()
	require.NoError(t, p.InsertInput(1, 1))
	p.AddActivation(2, 10)
	p.AddActivation(3, 9)
	p.AddActivation(4, 0.01)
	return p
}

func TestRefine_CompetitionScalesMaxToOne(t *testing.T) {
	t.Parallel()

	p := buildPattern(t)
	refine.Refine(p, 1)

	var max float64
	for _, e := range p.ContinuationGroup() {
		if e.Activation > max {
			max = e.Activation
		}
	}
	assert.InDelta(t, 1.0, max, 1e-9)
}

func TestRefine_InhibitsFarOutlier(t *testing.T) {
	t.Parallel()

	p := buildPattern(t)
	refine.Refine(p, 1)

	entry, ok := p.Get(4)
	require.True(t, ok)
	assert.Equal(t, 0.0, entry.Activation)
}

func TestRefine_CompetesInputGroupIndependently(t *testing.T) {
	t.Parallel()

	p := activation.New()
	require.NoError(t, p.InsertInput(1, 4))
	require.NoError(t, p.InsertInput(2, 2))
	p.AddActivation(9, 10) // continuation group, should not affect input scaling

	refine.Refine(p, 1)

	winner, ok := p.Get(1)
	require.True(t, ok)
	assert.InDelta(t, 1.0, winner.Activation, 1e-9, "input group's own max must reach 1")

	other, ok := p.Get(2)
	require.True(t, ok)
	assert.InDelta(t, 0.5, other.Activation, 1e-9, "input group is scaled against its own max, not the continuation group's")
}

func TestRefine_IdempotentWithinGeneration(t *testing.T) {
	t.Parallel()

	p := buildPattern(t)
	refine.Refine(p, 5)
	first := snapshot(p)

	refine.Refine(p, 5) // same generation: must be a no-op
	second := snapshot(p)

	assert.Equal(t, first, second)
}

func TestRefine_SingleCandidateSkipsInhibition(t *testing.T) {
	t.Parallel()

	p := activation.New()
	p.AddActivation(9, 0.3)

	refine.Refine(p, 1)

	entry, ok := p.Get(9)
	require.True(t, ok)
	assert.InDelta(t, 1.0, entry.Activation, 1e-9)
}

func snapshot(p *activation.Pattern) map[uint64]float64 {
	out := make(map[uint64]float64)
	for _, e := range p.Entries() {
		out[uint64(e.Node)] = e.Activation
	}
	return out
}
