package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebbgraph/hebbgraph/core"
)

func TestNewGraph_HasStopSentinel(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	stop := g.StopNode()

	n, err := g.Node(stop)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), n.AbstractionLevel)
	assert.Equal(t, uint8(0), n.PortID)
}

func TestFindOrCreateNode_TrieUniqueness(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()

	id1, err := g.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)

	id2, err := g.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "identical payloads must resolve to the same node")

	id3, err := g.FindOrCreateNode([]byte{'b'})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

func TestFindOrCreateNode_EmptyPayload(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	_, err := g.FindOrCreateNode(nil)
	assert.ErrorIs(t, err, core.ErrEmptyPayload)
}

func TestAddEdge_BootstrapWeightAndCachedSum(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})

	gen := g.BeginCycle()
	e, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	assert.EqualValues(t, 1, e.Weight, "bootstrap weight must be 1, never 0")

	node, err := g.Node(a)
	require.NoError(t, err)
	assert.EqualValues(t, 1, node.CachedWeightSum())

	avg, ok := node.CachedWeightAvg()
	require.True(t, ok)
	assert.InDelta(t, 1.0, avg, 1e-9)
}

func TestAddEdge_Idempotent(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})

	gen := g.BeginCycle()
	e1, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	e2, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	assert.Same(t, e1, e2, "a second AddEdge for the same pair must return the existing edge")

	node, _ := g.Node(a)
	assert.Len(t, node.Outgoing(), 1)
}

func TestAddEdge_RejectsSelfEdge(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})

	_, err := g.AddEdge(a, a, g.BeginCycle())
	assert.ErrorIs(t, err, core.ErrSelfEdge)
}

func TestRemoveEdge_UnlinksAndUpdatesCache(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})

	gen := g.BeginCycle()
	e, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)

	require.NoError(t, g.RemoveEdge(e))

	node, _ := g.Node(a)
	assert.Empty(t, node.Outgoing())
	assert.EqualValues(t, 0, node.CachedWeightSum())

	assert.ErrorIs(t, g.RemoveEdge(e), core.ErrEdgeNotFound)
}

func TestSetEdgeWeight_KeepsCacheConsistent(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	c, _ := g.FindOrCreateNode([]byte{'c'})

	gen := g.BeginCycle()
	e1, _ := g.AddEdge(a, b, gen)
	_, _ = g.AddEdge(a, c, gen)

	require.NoError(t, g.SetEdgeWeight(a, e1, 200, true, gen))
	require.NoError(t, g.VerifyWeightSum(a))

	node, _ := g.Node(a)
	assert.EqualValues(t, 201, node.CachedWeightSum()) // 200 + bootstrap 1 on a->c
}

func TestHierarchiesAtLevel_EmptyUntilFormed(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	assert.Empty(t, g.HierarchiesAtLevel(1))
}

func TestWaveGeneration_StrictlyIncreasing(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	var prev uint64
	for i := 0; i < 5; i++ {
		gen := g.BeginCycle()
		assert.Greater(t, gen, prev)
		prev = gen
	}
}

func TestAverageOutDegree_IncrementalNotGlobalScan(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})
	c, _ := g.FindOrCreateNode([]byte{'c'})

	gen := g.BeginCycle()
	_, err := g.AddEdge(a, b, gen)
	require.NoError(t, err)
	_, err = g.AddEdge(a, c, gen)
	require.NoError(t, err)

	avg, ok := g.AverageOutDegree()
	require.True(t, ok)
	// STOP sentinel + a,b,c == 4 nodes, 2 edges total.
	assert.InDelta(t, 2.0/4.0, avg, 1e-9)
}

func TestFindOrCreateHierarchy_NeverDuplicated(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})
	b, _ := g.FindOrCreateNode([]byte{'b'})

	id1, created1, err := g.FindOrCreateHierarchy([]byte("ab"), 1, 0, []core.NodeID{a, b})
	require.NoError(t, err)
	assert.True(t, created1)

	id2, created2, err := g.FindOrCreateHierarchy([]byte("ab"), 1, 0, []core.NodeID{a, b})
	require.NoError(t, err)
	assert.False(t, created2)
	assert.Equal(t, id1, id2)

	levels := g.HierarchiesAtLevel(1)
	require.Len(t, levels, 1)
	assert.Equal(t, id1, levels[0])

	hNode, err := g.Node(id1)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), hNode.Payload)
	assert.Equal(t, []core.NodeID{a, b}, hNode.Components)
}

func TestResetAndMarkInputFlags(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, _ := g.FindOrCreateNode([]byte{'a'})

	require.NoError(t, g.MarkInputNode(a))
	node, _ := g.Node(a)
	assert.True(t, node.IsInputNode)

	require.NoError(t, g.ResetInputFlags([]core.NodeID{a}))
	node, _ = g.Node(a)
	assert.False(t, node.IsInputNode)
}
