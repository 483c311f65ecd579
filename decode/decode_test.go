package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebbgraph/hebbgraph/activation"
	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/decode"
	"github.com/hebbgraph/hebbgraph/encode"
	"github.com/hebbgraph/hebbgraph/portfilter"
	"github.com/hebbgraph/hebbgraph/refine"
)

func trainAB(t *testing.T, times int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < times; i++ {
		gen := g.BeginCycle()
		res, err := encode.Encode(g, []byte("ab"), gen)
		if err != nil {
			require.ErrorIs(t, err, encode.ErrNoContinuations)
		}
		refine.Refine(res.Pattern, gen)
		_, err = decode.Decode(g, res.Pattern, portfilter.None(), gen)
		require.NoError(t, err)
	}
	return g
}

func TestDecode_EmptyContinuationGroupTerminatesImmediately(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	p := activation.New()
	require.NoError(t, p.InsertInput(1, 1))

	res, err := decode.Decode(g, p, portfilter.None(), g.BeginCycle())
	require.NoError(t, err)
	assert.Empty(t, res.Bytes)
}

func TestDecode_EmitsAlongTrainedEdge(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	a, err := g.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)
	b, err := g.FindOrCreateNode([]byte{'b'})
	require.NoError(t, err)

	setupGen := g.BeginCycle()
	e, err := g.AddEdge(a, b, setupGen)
	require.NoError(t, err)
	require.NoError(t, g.SetEdgeWeight(a, e, 250, true, setupGen))

	gen := g.BeginCycle()
	res, err := encode.Encode(g, []byte{'a'}, gen)
	require.NoError(t, err)
	refine.Refine(res.Pattern, gen)

	out, err := decode.Decode(g, res.Pattern, portfilter.None(), gen)
	require.NoError(t, err)
	assert.Contains(t, string(out.Bytes), "b")
}

func TestDecode_InputNodeNeverEmitted(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	gen := g.BeginCycle()
	res, err := encode.Encode(g, []byte{'a'}, gen)
	require.ErrorIs(t, err, encode.ErrNoContinuations) // freshly created, no edges yet
	refine.Refine(res.Pattern, gen)

	out, err := decode.Decode(g, res.Pattern, portfilter.None(), gen)
	require.NoError(t, err)
	assert.Empty(t, out.Bytes)
}

func TestDecode_PortFilterExcludesAllYieldsPortNotAllowed(t *testing.T) {
	t.Parallel()

	g := core.NewGraph()
	node, err := g.FindOrCreateNode([]byte{'z'})
	require.NoError(t, err)
	g2Node, err := g.Node(node)
	require.NoError(t, err)
	g2Node.PortID = 5

	p := activation.New()
	p.AddActivation(node, 1)

	out, err := decode.Decode(g, p, portfilter.Filter{OutputPort: 9}, g.BeginCycle())
	require.NoError(t, err)
	assert.Equal(t, decode.ReasonPortNotAllowed, out.Reason)
	assert.Empty(t, out.Bytes)
}

func TestDecode_RepeatedTrainingIncreasesEdgeWeight(t *testing.T) {
	t.Parallel()

	g := trainAB(t, 5)
	a, err := g.FindOrCreateNode([]byte{'a'})
	require.NoError(t, err)
	b, err := g.FindOrCreateNode([]byte{'b'})
	require.NoError(t, err)
	node, err := g.Node(a)
	require.NoError(t, err)
	e, ok := node.EdgeTo(b)
	require.True(t, ok)
	assert.Greater(t, e.Weight, uint8(1))
}
