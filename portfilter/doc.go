// Package portfilter implements the single candidate-filtering seam
// DECODE needs to honor node.PortID during candidate-set assembly
// (§6, set_routing row): when an output port is specified, continuation
// candidates tagged for a different, non-zero port are excluded.
//
// Routing policy itself — how an output port is chosen, what table maps
// ports to anything — is an external boundary concern and out of scope
// here; this package only holds the one honoring rule the core must
// apply regardless of where the port number came from.
package portfilter
