package cortex

import "github.com/hebbgraph/hebbgraph/persistbound"

// Save dumps the Engine's full Graph state into the append-only binary
// layout of §6 (every node, every edge, the RunningStats quadruple).
// Save only ever runs outside a cycle; acquiring cycleMu here is what
// enforces that against a concurrent ProcessInput/FeedbackError call.
func (e *Engine) Save() ([]byte, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	return persistbound.Save(e.g)
}

// Load reconstructs an Engine from a blob produced by Save. The result
// is observationally identical to the original: same outputs on the
// same input sequence, same stats snapshot (§8's round-trip law).
func Load(blob []byte) (*Engine, error) {
	g, err := persistbound.Load(blob)
	if err != nil {
		return nil, wrapLoadErr(err)
	}
	return newFromGraph(g), nil
}
