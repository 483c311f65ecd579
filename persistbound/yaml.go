package persistbound

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hebbgraph/hebbgraph/core"
)

// yamlNode and yamlEdge are the human-authored fixture shape: node and
// edge ids are whatever the fixture author wrote, not necessarily
// sequential or matching the Graph's eventual arena ids — LoadYAML
// remaps them via idMap so fixtures stay easy to hand-write.
type yamlNode struct {
	ID         uint64   `yaml:"id"`
	Level      uint8    `yaml:"level"`
	PortID     uint8    `yaml:"port_id"`
	Payload    []byte   `yaml:"payload"`
	Components []uint64 `yaml:"components,omitempty"`
}

type yamlEdge struct {
	From     uint64 `yaml:"from"`
	To       uint64 `yaml:"to"`
	Weight   uint8  `yaml:"weight"`
	LastUsed uint64 `yaml:"last_used"`
}

type yamlGraph struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

// DumpYAML renders g as a human-readable node/edge list, for debugging
// and for authoring new fixtures from a real graph's state. It is a
// read-only introspection dump, not a second save format: round-tripping
// through Load/Save always uses the binary blob, never this.
func DumpYAML(g *core.Graph) ([]byte, error) {
	var out yamlGraph

	n := g.NodeCount()
	for id := 1; id <= n; id++ {
		node, err := g.Node(core.NodeID(id))
		if err != nil {
			return nil, err
		}
		components := make([]uint64, len(node.Components))
		for i, c := range node.Components {
			components[i] = uint64(c)
		}
		out.Nodes = append(out.Nodes, yamlNode{
			ID:         uint64(id),
			Level:      node.AbstractionLevel,
			PortID:     node.PortID,
			Payload:    node.Payload,
			Components: components,
		})
		for _, e := range node.Outgoing() {
			out.Edges = append(out.Edges, yamlEdge{
				From: uint64(e.From), To: uint64(e.To), Weight: e.Weight, LastUsed: e.LastUsed,
			})
		}
	}

	return yaml.Marshal(out)
}

// LoadYAMLFixture builds a fresh *core.Graph from a hand-authored YAML
// fixture (node list + edge list). Fixture ids are author-chosen and
// remapped to the Graph's real arena ids as nodes are created in listed
// order; a node's components must reference ids already listed earlier
// in the fixture, matching the Data Model's "hierarchies are never
// created before their components" lifecycle rule.
func LoadYAMLFixture(data []byte) (*core.Graph, error) {
	var yg yamlGraph
	if err := yaml.Unmarshal(data, &yg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	g := core.NewEmptyGraph()
	stopPayload := core.StopPayload()
	idMap := make(map[uint64]core.NodeID, len(yg.Nodes))

	for _, n := range yg.Nodes {
		components := make([]core.NodeID, 0, len(n.Components))
		for _, compID := range n.Components {
			real, ok := idMap[compID]
			if !ok {
				return nil, fmt.Errorf("%w: fixture node %d references unknown component %d", ErrCorrupt, n.ID, compID)
			}
			components = append(components, real)
		}
		id, err := g.RestoreNode(n.Payload, n.Level, n.PortID, components)
		if err != nil {
			return nil, fmt.Errorf("%w: restoring fixture node %d: %v", ErrCorrupt, n.ID, err)
		}
		idMap[n.ID] = id
		if bytes.Equal(n.Payload, stopPayload) {
			g.MarkStopNode(id)
		}
	}

	for _, e := range yg.Edges {
		fromID, ok := idMap[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: edge references unknown from-id %d", ErrCorrupt, e.From)
		}
		toID, ok := idMap[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: edge references unknown to-id %d", ErrCorrupt, e.To)
		}
		if err := g.RestoreEdge(fromID, toID, e.Weight, e.LastUsed); err != nil {
			return nil, fmt.Errorf("%w: restoring edge %d->%d: %v", ErrCorrupt, e.From, e.To, err)
		}
	}

	return g, nil
}
