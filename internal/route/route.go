// Package route maps a circuit onto a device connectivity graph.
package route

import (
	"fmt"

	"github.com/rs/zerolog"

	"qanalyse/internal/circuit"
	"qanalyse/internal/convert"
	"qanalyse/internal/device"
)

// Routed is a circuit whose two-qubit gates all act on coupled nodes. Qubit
// indices of Circuit are node ids.
type Routed struct {
	Circuit   *circuit.Circuit
	Placement device.Placement // logical qubit to node before routing
	Final     device.Placement // logical qubit to node after routing
	Swaps     int              // SWAPs inserted, before decomposition into CX
	Nodes     []int            // architecture nodes the routed circuit acts on
}

// Router runs placement, SWAP insertion and SWAP decomposition.
type Router struct {
	log zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger for routing events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.log = l.With().Str("component", "route").Logger() }
}

// New returns a Router, or device.ErrCapabilityMissing when the destination
// representation is not compiled in.
func New(opts ...Option) (*Router, error) {
	if !device.Available() {
		return nil, device.ErrCapabilityMissing
	}
	r := &Router{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Route converts c to the destination representation, places and maps it on
// g, decomposes the inserted SWAPs and converts the result back.
func (r *Router) Route(c *circuit.Circuit, g device.Connectivity) (*Routed, error) {
	dc, _, err := convert.ToDestination(c)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	placement, err := device.PlaceDefault(dc, g)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	m, err := device.MapQubits(dc, g, placement)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	decomposed := device.DecomposeSwaps(m.Circuit)
	out, err := convert.FromDestination(decomposed)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	r.log.Debug().
		Int("qubits", c.Qubits()).
		Int("gates_in", c.Len()).
		Int("gates_out", out.Len()).
		Int("swaps", m.Swaps).
		Int("cx", decomposed.Count(device.CX)).
		Msg("routed")

	return &Routed{
		Circuit:   out,
		Placement: m.Initial,
		Final:     m.Final,
		Swaps:     m.Swaps,
		Nodes:     device.UsedNodes(decomposed),
	}, nil
}
