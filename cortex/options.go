package cortex

import "github.com/hebbgraph/hebbgraph/core"

// Options configures Create. Like core.GraphOption, every knob here is
// structural (capacity hints) — never a behavioral/activation threshold;
// those always come from the graph's own stats.RunningStats.
type Options struct {
	capacityHint int
}

// Option configures an Engine via functional arguments, mirroring
// core.GraphOption / bfs.Option.
type Option func(*Options)

// DefaultOptions returns the zero-capacity-hint default.
func DefaultOptions() Options { return Options{} }

// WithCapacityHint pre-sizes the underlying Graph's node arena for
// callers that know roughly how many distinct byte patterns to expect.
func WithCapacityHint(n int) Option {
	return func(o *Options) { o.capacityHint = n }
}

func (o Options) graphOptions() []core.GraphOption {
	if o.capacityHint <= 0 {
		return nil
	}
	return []core.GraphOption{core.WithCapacityHint(o.capacityHint)}
}
