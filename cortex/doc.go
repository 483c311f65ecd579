// Package cortex is the top-level facade wiring together stats, core,
// activation, encode, refine, decode, hebbian, hierarchy, portfilter,
// and persistbound into the external interface table of §6: Create,
// ProcessInput, FeedbackError, SetRouting, Stats, Save/Load.
//
// An Engine owns exactly one core.Graph and serializes every operation
// that touches it (§5's single-cycle-owner rule): ProcessInput,
// FeedbackError, and Save/Load never run concurrently against the same
// Engine, though Stats (a read-only snapshot) may be called at any time.
//
//	e := cortex.Create()
//	for i := 0; i < 5; i++ {
//	    e.ProcessInput(0, []byte("ab"))
//	}
//	res, _ := e.ProcessInput(0, []byte("a"))
//	// res.Bytes contains "b", possibly via the learned "ab" hierarchy.
//
// Each cycle runs ENCODE, REFINE, DECODE, the Hebbian sweeps DECODE
// triggers per step, and finally the Hierarchy Former, in that order
// (§5's ordering guarantees). ProcessInputCtx threads a context.Context
// through DECODE so a caller can cancel cooperatively between steps;
// completed steps' Hebbian updates are never rolled back.
package cortex
