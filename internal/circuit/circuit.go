package circuit

import (
	"errors"
	"fmt"
)

// ErrInvalidGate is returned by Validate for gates that cannot exist on any device.
var ErrInvalidGate = errors.New("circuit: invalid gate")

// Circuit is an immutable ordered sequence of gates over a declared number of qubits.
// New circuits are produced by Append and Concat; the receiver is never modified.
type Circuit struct {
	qubits int
	gates  []Gate
}

// New builds a circuit whose qubit count is one more than the highest index used.
func New(gates ...Gate) *Circuit {
	return WithQubits(0, gates...)
}

// WithQubits builds a circuit declaring at least n qubits.
func WithQubits(n int, gates ...Gate) *Circuit {
	c := &Circuit{qubits: n, gates: make([]Gate, 0, len(gates))}
	for _, g := range gates {
		c.push(g)
	}
	return c
}

func (c *Circuit) push(g Gate) {
	for _, q := range g.Qubits() {
		if q+1 > c.qubits {
			c.qubits = q + 1
		}
	}
	c.gates = append(c.gates, g.clone())
}

// Concat joins circuits in order. The result declares the largest qubit count.
func Concat(circuits ...*Circuit) *Circuit {
	out := &Circuit{}
	for _, c := range circuits {
		if c == nil {
			continue
		}
		out.qubits = max(out.qubits, c.qubits)
		for _, g := range c.gates {
			out.push(g)
		}
	}
	return out
}

// Append returns a new circuit with gates added after the existing ones.
func (c *Circuit) Append(gates ...Gate) *Circuit {
	return Concat(c, WithQubits(0, gates...))
}

// Qubits returns the declared qubit count.
func (c *Circuit) Qubits() int { return c.qubits }

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.gates) }

// Gate returns a copy of the i-th gate.
func (c *Circuit) Gate(i int) Gate { return c.gates[i].clone() }

// Gates returns a copy of the gate sequence.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g.clone()
	}
	return out
}

// Depth is the length of the longest per-qubit dependency chain.
func (c *Circuit) Depth() int {
	return NewDAG(c).Depth()
}

// Variables lists distinct variable identifiers in first-seen order.
func (c *Circuit) Variables() []string {
	seen := make(map[string]bool)
	var vars []string
	for _, g := range c.gates {
		for _, v := range g.Param.Variables() {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	return vars
}

// ParameterMap maps each variable identifier to the indices of the gates referencing it.
func (c *Circuit) ParameterMap() map[string][]int {
	m := make(map[string][]int)
	for i, g := range c.gates {
		for _, v := range g.Param.Variables() {
			m[v] = append(m[v], i)
		}
	}
	return m
}

// Validate checks structural soundness of every gate: at least one target, the
// target count SWAP needs, non-negative and non-repeated qubits, and a parameter
// exactly on the rotation kinds.
func (c *Circuit) Validate() error {
	for i, g := range c.gates {
		if err := validateGate(g); err != nil {
			return fmt.Errorf("gate %d (%s): %w", i, g, err)
		}
	}
	return nil
}

func validateGate(g Gate) error {
	if len(g.Targets) == 0 {
		return fmt.Errorf("%w: no target", ErrInvalidGate)
	}
	if g.Kind == SWAP && len(g.Targets) != 2 {
		return fmt.Errorf("%w: SWAP needs two targets, got %d", ErrInvalidGate, len(g.Targets))
	}
	seen := make(map[int]bool)
	for _, q := range g.Qubits() {
		if q < 0 {
			return fmt.Errorf("%w: negative qubit %d", ErrInvalidGate, q)
		}
		if seen[q] {
			return fmt.Errorf("%w: qubit %d used twice", ErrInvalidGate, q)
		}
		seen[q] = true
	}
	if g.Kind.Parametrized() != g.Parametrized() {
		if g.Kind.Parametrized() {
			return fmt.Errorf("%w: %s needs an angle", ErrInvalidGate, g.Kind)
		}
		return fmt.Errorf("%w: %s takes no parameter", ErrInvalidGate, g.Kind)
	}
	return nil
}
