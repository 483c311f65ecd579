package cortex

import (
	"sync"

	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/portfilter"
)

// Engine is the external boundary of the associative graph engine: one
// core.Graph plus the cycle-ordering and routing state needed to honor
// §5's single-cycle-owner rule and §6's external interface table.
//
// An Engine is safe for concurrent use: ProcessInput, ProcessInputCtx,
// FeedbackError, and Save serialize on cycleMu (only one of them touches
// the Graph at a time), SetRouting takes only routingMu, and Stats is a
// read-only snapshot
// callable at any time, including while a cycle is in flight elsewhere
// (§5's "concurrent read-only queries ... are permitted").
type Engine struct {
	cycleMu sync.Mutex // enforces "Graph owned by one cycle at a time"

	g *core.Graph

	// outputPort is the current SetRouting selection: the portfilter.Filter
	// applied to every ProcessInput call's DECODE candidate set until
	// SetRouting changes it again. 0 means unrestricted.
	routingMu  sync.RWMutex
	outputPort uint8

	// lastInputIDs holds the previous cycle's input-tagged node ids, so
	// the next ProcessInput call can clear their transient IsInputNode
	// flag before seeding its own (core.Graph.ResetInputFlags).
	lastInputIDs []core.NodeID
}

// Create initializes an empty Engine: a fresh Graph with a well-defined
// STOP sentinel node (§6's create(options) row).
func Create(opts ...Option) *Engine {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Engine{g: core.NewGraph(options.graphOptions()...)}
}

// newFromGraph wraps an already-constructed Graph (used by Load).
func newFromGraph(g *core.Graph) *Engine {
	return &Engine{g: g}
}

// SetRouting selects the output port ProcessInput's DECODE step filters
// candidates against (§6: "the core honors node.port_id during candidate
// selection: when output_port != 0, continuation nodes whose port_id !=
// 0 and != output_port are excluded"). The full routing table mapping
// port numbers to external devices is out of scope (§1); this is the one
// scalar the core needs to apply that filter. Passing 0 restores the
// unrestricted default.
func (e *Engine) SetRouting(outputPort uint8) {
	e.routingMu.Lock()
	defer e.routingMu.Unlock()
	e.outputPort = outputPort
}

func (e *Engine) currentFilter() portfilter.Filter {
	e.routingMu.RLock()
	defer e.routingMu.RUnlock()
	return portfilter.Filter{OutputPort: e.outputPort}
}
