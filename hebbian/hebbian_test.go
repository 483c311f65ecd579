package hebbian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/hebbian"
)

func TestApplyTraversal_StrengthensTowardSaturation(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	gen := g.BeginCycle()
	e, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)

	before := e.Weight
	require.NoError(t, hebbian.ApplyTraversal(g, a, e, 1.0, gen))
	assert.Greater(t, e.Weight, before)
}

func TestApplyTraversal_FullySaturatedUnchanged(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	gen := g.BeginCycle()
	e, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	require.NoError(t, g.SetEdgeWeight(a, e, 255, true, gen))

	require.NoError(t, hebbian.ApplyTraversal(g, a, e, 1.0, gen))
	assert.Equal(t, uint8(255), e.Weight)
}

func TestApplyNonTraversal_SkipsWithFewerThanTwoEdges(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	gen := g.BeginCycle()
	e, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)

	require.NoError(t, hebbian.ApplyNonTraversal(g, a, nil, gen))
	assert.Equal(t, uint8(1), e.Weight)
}

func TestApplyNonTraversal_DecaysUntouchedEdges(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	c, _ := g.FindOrCreateNode([]byte{'c'})
	gen := g.BeginCycle()
	eb, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	ec, err := g.AddEdge(a, c, gen)
	require.NoError(t, err)
	require.NoError(t, g.SetEdgeWeight(a, eb, 200, true, gen))
	require.NoError(t, g.SetEdgeWeight(a, ec, 10, true, gen))

	require.NoError(t, hebbian.ApplyNonTraversal(g, a, eb, gen))
	assert.Less(t, ec.Weight, uint8(10))
	assert.Equal(t, uint8(200), eb.Weight) // skipped edge untouched
}

func TestFeedbackError_NoPathYieldsSentinel(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	assert.ErrorIs(t, hebbian.FeedbackError(g, 0.5), hebbian.ErrNoEmittedPath)
}

func TestFeedbackError_LowErrorStrengthensPath(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	gen := g.BeginCycle()
	e, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	g.SetLastEmittedPath([]*core.Edge{e})

	before := e.Weight
	require.NoError(t, hebbian.FeedbackError(g, 0.0))
	assert.Greater(t, e.Weight, before)
}
