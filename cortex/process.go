package cortex

import (
	"context"
	"errors"

	"github.com/hebbgraph/hebbgraph/decode"
	"github.com/hebbgraph/hebbgraph/encode"
	"github.com/hebbgraph/hebbgraph/hierarchy"
	"github.com/hebbgraph/hebbgraph/refine"
)

// CycleSummary is the optional per-cycle summary §6's process_input row
// allows returning alongside the emitted bytes: counts and path length
// for diagnostics, not a decision input for any future cycle.
type CycleSummary struct {
	NodesTouched      int
	EdgesTouched      int
	EmittedLength     int
	TerminationReason decode.TerminationReason
}

// ProcessResult is ProcessInput's/ProcessInputCtx's return value.
type ProcessResult struct {
	Bytes   []byte
	Summary CycleSummary
}

// ProcessInput runs one full ENCODE -> REFINE -> DECODE -> Hebbian ->
// Hierarchy Former cycle on input, tagged with portID (§6's
// process_input(port_id, bytes) row). portID tags the resolved input
// nodes (first-writer-wins); the separate output-port filter applied to
// DECODE's candidate set is whatever SetRouting last configured.
func (e *Engine) ProcessInput(portID uint8, input []byte) (ProcessResult, error) {
	return e.ProcessInputCtx(context.Background(), portID, input)
}

// ProcessInputCtx is ProcessInput with a context threaded through DECODE
// so the cycle can be cancelled cooperatively between steps (§5).
func (e *Engine) ProcessInputCtx(ctx context.Context, portID uint8, input []byte) (ProcessResult, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	if len(input) == 0 {
		// Boundary behavior (§8): empty input is a no-op cycle, no edges
		// created, no output. The previous cycle's emitted path and
		// input tagging are left untouched since no new cycle ran.
		return ProcessResult{}, nil
	}

	if len(e.lastInputIDs) > 0 {
		if err := e.g.ResetInputFlags(e.lastInputIDs); err != nil {
			return ProcessResult{}, wrapCycleErr(err)
		}
	}
	e.lastInputIDs = nil
	e.g.SetLastEmittedPath(nil)

	gen := e.g.BeginCycle()

	encRes, err := encode.Encode(e.g, input, gen, encode.WithPortID(portID))
	noContinuations := errors.Is(err, encode.ErrNoContinuations)
	if err != nil && !noContinuations {
		return ProcessResult{}, wrapCycleErr(err)
	}

	refine.Refine(encRes.Pattern, gen)

	e.lastInputIDs = encRes.InputIDs

	var decRes decode.Result
	cancelled := false
	if noContinuations {
		decRes = decode.Result{Reason: decode.ReasonNoCandidates}
		e.g.SetLastEmittedPath(nil)
	} else {
		filter := e.currentFilter()
		decRes, err = decode.Decode(e.g, encRes.Pattern, filter, gen, decode.WithContext(ctx))
		if err != nil {
			if errors.Is(err, decode.ErrCancelled) {
				cancelled = true
			} else {
				return ProcessResult{}, wrapCycleErr(err)
			}
		}
	}

	// Hierarchy Former consumes only the ActivationPattern and runs last
	// (§5), after every weight update this cycle produced — but a
	// cancelled cycle drops the pending ActivationPattern outright (§5),
	// so it does not run.
	if !cancelled {
		if err := hierarchy.Form(e.g, encRes.InputIDs, encRes.Pattern); err != nil {
			return ProcessResult{}, wrapCycleErr(err)
		}
	}

	result := ProcessResult{
		Bytes: decRes.Bytes,
		Summary: CycleSummary{
			NodesTouched:      len(encRes.InputIDs) + len(encRes.Pattern.ContinuationGroup()),
			EdgesTouched:      len(decRes.Path),
			EmittedLength:     len(decRes.Bytes),
			TerminationReason: decRes.Reason,
		},
	}

	switch {
	case cancelled:
		return result, ErrCancelled
	case decRes.Reason == decode.ReasonPortNotAllowed:
		return result, ErrPortNotPermitted
	default:
		return result, nil
	}
}
