package cortex

import (
	"errors"
	"fmt"

	"github.com/hebbgraph/hebbgraph/core"
	"github.com/hebbgraph/hebbgraph/decode"
	"github.com/hebbgraph/hebbgraph/hebbian"
	"github.com/hebbgraph/hebbgraph/persistbound"
)

// The four boundary error signals of §6, plus ErrFeedbackIgnored for
// §7's External kind. Internal errors of these kinds cross the Engine
// boundary wrapped in the matching signal, so callers can use errors.Is
// against a stable, package-documented set; any other internal error is
// returned unchanged.
var (
	// ErrOutOfMemory wraps core.ErrOutOfMemory: an allocation failed and
	// any partial structural change was rolled back before returning.
	ErrOutOfMemory = errors.New("cortex: resource exhausted")

	// ErrLoadCorrupt wraps persistbound.ErrCorrupt: Load refused a blob
	// that failed a structural check.
	ErrLoadCorrupt = errors.New("cortex: loaded blob is structurally invalid")

	// ErrPortNotPermitted indicates the requested output port excluded
	// every DECODE candidate at the very first step.
	ErrPortNotPermitted = errors.New("cortex: output port excludes all candidates")

	// ErrCancelled indicates ProcessInputCtx's context was done between
	// DECODE steps; bytes emitted by completed steps, and their Hebbian
	// updates, are retained in the returned ProcessResult and the graph
	// respectively.
	ErrCancelled = errors.New("cortex: cycle cancelled")

	// ErrFeedbackIgnored indicates FeedbackError was called with no
	// completed cycle's path on record (§7's External error kind): the
	// call is ignored, but the caller is told so rather than silently
	// doing nothing.
	ErrFeedbackIgnored = errors.New("cortex: feedback has no emitted path to apply to")
)

// wrapCycleErr maps an internal package error from one ProcessInput cycle
// to the boundary signal it corresponds to, preserving the original via
// %w so errors.Is still matches the internal sentinel too.
func wrapCycleErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrOutOfMemory):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case errors.Is(err, decode.ErrCancelled):
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	default:
		return err
	}
}

func wrapLoadErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistbound.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrLoadCorrupt, err)
	}
	return err
}

func wrapFeedbackErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, hebbian.ErrNoEmittedPath) {
		return fmt.Errorf("%w: %w", ErrFeedbackIgnored, err)
	}
	return err
}
