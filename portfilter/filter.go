package portfilter

import "github.com/hebbgraph/hebbgraph/core"

// Filter restricts DECODE's candidate set to one output port. The zero
// value (OutputPort 0) allows every candidate — port 0 means
// unrestricted, both for a node's own PortID and for the filter itself.
type Filter struct {
	OutputPort uint8
}

// None is the unrestricted Filter, equivalent to the zero value; named
// for callers that want to be explicit about "no routing restriction"
// at the call site.
func None() Filter { return Filter{} }

// Allows reports whether a candidate node may be selected under this
// filter. A node with PortID 0 is unrestricted and always allowed.
// Otherwise the node is allowed only when its PortID matches the
// filter's OutputPort exactly.
func (f Filter) Allows(n *core.Node) bool {
	if f.OutputPort == 0 {
		return true
	}
	if n.PortID == 0 {
		return true
	}
	return n.PortID == f.OutputPort
}

// ExcludesAll reports whether applying f to candidates would exclude
// every one of them — the PortNotPermitted boundary signal of §6.
func (f Filter) ExcludesAll(candidates []*core.Node) bool {
	if len(candidates) == 0 {
		return false
	}
	for _, n := range candidates {
		if f.Allows(n) {
			return false
		}
	}
	return true
}
