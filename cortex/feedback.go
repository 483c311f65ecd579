package cortex

import "github.com/hebbgraph/hebbgraph/hebbian"

// FeedbackError applies one additional Hebbian sweep along the most
// recently emitted path (§4.6, §6's feedback_error(e) row): e near 0
// reinforces the path, e near 1 pushes it toward removal. Feedback never
// synthesizes a new edge — only edges already on the recorded path are
// adjusted.
//
// If no cycle has completed a DECODE since the last ENCODE (§7's
// External error kind: feedback received outside a completed cycle),
// the call is a no-op and ErrFeedbackIgnored is returned so the caller
// knows the signal was dropped rather than silently accepted.
func (e *Engine) FeedbackError(errorSignal float64) error {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	return wrapFeedbackErr(hebbian.FeedbackError(e.g, errorSignal))
}
