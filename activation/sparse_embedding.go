package activation

import (
	"math"

	"github.com/hebbgraph/hebbgraph/core"
)

// SparseEmbedding is a temporary sparse feature vector built on demand
// for one node during one cycle, used only by DECODE's optional
// context-attention scoring term (§4.5 step 2). It is never cached past
// the cycle that built it.
//
// Features come from three local sources, each namespaced to avoid
// collisions:
//
//	"g:<n>:<bytes>" - the node's payload n-grams (n = 1..3, bounded by
//	                  payload length), weighted by n-gram length so
//	                  longer, more specific grams dominate shorter ones.
//	"n:<id>"        - the node's outgoing neighbor set, weighted by each
//	                  edge's share of the node's cached weight sum (a
//	                  relative quantity, never an absolute weight).
//	"l:"            - the node's abstraction level, weighted so deeper
//	                  hierarchies are distinguishable from primitives.
type SparseEmbedding struct {
	features map[string]float64
}

// Build constructs a SparseEmbedding for node id from its current payload,
// outgoing neighbor set, and abstraction level. Complexity:
// O(|payload| + degree(id)).
func Build(g *core.Graph, id core.NodeID) (*SparseEmbedding, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}

	e := &SparseEmbedding{features: make(map[string]float64)}

	for gramLen := 1; gramLen <= 3 && gramLen <= len(n.Payload); gramLen++ {
		for i := 0; i+gramLen <= len(n.Payload); i++ {
			key := "g:" + string(rune(gramLen)) + ":" + string(n.Payload[i:i+gramLen])
			e.features[key] += float64(gramLen)
		}
	}

	if sum := n.CachedWeightSum(); sum > 0 {
		for _, edge := range n.Outgoing() {
			key := "n:" + nodeIDKey(edge.To)
			e.features[key] += float64(edge.Weight) / float64(sum)
		}
	}

	e.features["l:"] = float64(n.AbstractionLevel) / float64(n.AbstractionLevel+1)

	return e, nil
}

// nodeIDKey renders a NodeID as a compact map key without pulling in
// strconv for a single call site.
func nodeIDKey(id core.NodeID) string {
	if id == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	v := uint64(id)
	for v > 0 {
		pos--
		buf[pos] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[pos:])
}

// CosineSimilarity returns the cosine similarity of two SparseEmbeddings,
// normalized from [-1, 1] to [0, 1] so it combines multiplicatively with
// the rest of DECODE's scoring terms without ever going negative.
// Returns 0 when either embedding has no features (no fallback value is
// substituted; a featureless node simply contributes no attention term).
func CosineSimilarity(a, b *SparseEmbedding) float64 {
	if len(a.features) == 0 || len(b.features) == 0 {
		return 0
	}

	small, large := a.features, b.features
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot, normA, normB float64
	for _, v := range a.features {
		normA += v * v
	}
	for _, v := range b.features {
		normB += v * v
	}
	for k, v := range small {
		if ov, ok := large[k]; ok {
			dot += v * ov
		}
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos < -1 {
		cos = -1
	}
	if cos > 1 {
		cos = 1
	}
	return (cos + 1) / 2
}
