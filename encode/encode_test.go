package encode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/encode"
)

func TestEncode_EmptyInputIsNoOp(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	_, err := encode.Encode(g, nil, g.BeginCycle())
	assert.ErrorIs(t, err, encode.ErrEmptyInput)
}

func TestEncode_SeedsInputNodesAsInputGroup(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	gen := g.BeginCycle()
	res, err := encode.Encode(g, []byte("ab"), gen)
	// ENCODE creates the sequential a->b edge on the fly (Data Model
	// lifecycle rule) and immediately spreads across it, so "b" surfaces
	// as a continuation candidate even on a freshly created graph.
	require.NoError(t, err)

	require.Len(t, res.InputIDs, 2)
	assert.Len(t, res.Pattern.InputGroup(), 2)
	assert.Len(t, res.Pattern.ContinuationGroup(), 1)
}

func TestEncode_RepeatedByteBoostsNotDuplicates(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	gen := g.BeginCycle()
	res, err := encode.Encode(g, []byte("aa"), gen)
	require.ErrorIs(t, err, encode.ErrNoContinuations)

	assert.Equal(t, res.InputIDs[0], res.InputIDs[1])
	assert.Len(t, res.Pattern.InputGroup(), 1)

	entry, ok := res.Pattern.Get(res.InputIDs[0])
	require.True(t, ok)
	// Second occurrence has a strictly later position, so its recency
	// activation is >= the first's; the seeded value reflects the max.
	assert.Greater(t, entry.Activation, 0.0)
}

func TestEncode_SpreadsAlongExistingEdges(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, err := g.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)
	b, err := g.FindOrCreateNode([]byte{'b'})
	require.NoError(t, err)
	setupGen := g.BeginCycle()
	_, err = g.AddEdge(a, b, setupGen)
	require.NoError(t, err)

	gen := g.BeginCycle()
	res, err := encode.Encode(g, []byte{'a'}, gen)
	require.NoError(t, err)

	cont := res.Pattern.ContinuationGroup()
	require.Len(t, cont, 1)
	assert.Equal(t, b, cont[0].Node)
	assert.Greater(t, cont[0].Activation, 0.0)
}

func TestEncode_MarksInputNodesOnGraph(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	gen := g.BeginCycle()
	res, _ := encode.Encode(g, []byte("z"), gen)

	node, err := g.Node(res.InputIDs[0])
	require.NoError(t, err)
	assert.True(t, node.IsInputNode)
}

func TestEncode_CreatesSequentialEdgeBetweenConsecutiveInputBytes(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	gen := g.BeginCycle()
	_, err := encode.Encode(g, []byte("ab"), gen)
	require.NoError(t, err)

	a, err := g.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)
	b, err := g.FindOrCreateNode([]byte{'b'})
	require.NoError(t, err)
	node, err := g.Node(a)
	require.NoError(t, err)
	edge, ok := node.EdgeTo(b)
	require.True(t, ok)
	assert.Equal(t, uint8(1), edge.Weight)
}

func TestEncode_RepeatedByteSkipsSelfEdge(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	gen := g.BeginCycle()
	res, err := encode.Encode(g, []byte("aa"), gen)
	require.ErrorIs(t, err, encode.ErrNoContinuations)

	node, err := g.Node(res.InputIDs[0])
	require.NoError(t, err)
	assert.Equal(t, 0, node.OutDegree())
}

func TestEncode_HopBudgetShrinksWithDensity(t *testing.T) {
	t.Parallel()

	sparse := core.NewGraph()
	_, err := sparse.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)

	dense := core.NewGraph()
	hub, err := dense.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)
	gen := dense.BeginCycle()
	for i := byte(1); i <= 20; i++ {
		target, err := dense.FindOrCreateNode([]byte{i})
		require.NoError(t, err)
		_, err = dense.AddEdge(hub, target, gen)
		require.NoError(t, err)
	}

	sparseRes, _ := encode.Encode(sparse, []byte{'a'}, sparse.BeginCycle())
	denseRes, _ := encode.Encode(dense, []byte{'a'}, dense.BeginCycle())

	assert.GreaterOrEqual(t, sparseRes.HopBudget, denseRes.HopBudget)
}
