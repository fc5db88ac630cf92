package device

import (
	"fmt"
	"slices"
)

// Connectivity is the coupling graph a circuit is routed onto.
type Connectivity interface {
	// Nodes returns the node ids in ascending order.
	Nodes() []int
	Adjacent(a, b int) bool
	// ShortestPath returns the nodes from a to b inclusive, or nil when b is
	// unreachable.
	ShortestPath(a, b int) []int
}

// Placement maps logical qubits to architecture nodes.
type Placement map[int]int

// Clone returns an independent copy.
func (p Placement) Clone() Placement {
	out := make(Placement, len(p))
	for q, n := range p {
		out[q] = n
	}
	return out
}

// PlaceDefault assigns logical qubit q to the q-th smallest node id.
func PlaceDefault(c *Circuit, g Connectivity) (Placement, error) {
	nodes := g.Nodes()
	if c.qubits > len(nodes) {
		return nil, fmt.Errorf("%w: circuit uses %d qubits, architecture has %d nodes",
			ErrInsufficientNodes, c.qubits, len(nodes))
	}
	p := make(Placement, c.qubits)
	for q := 0; q < c.qubits; q++ {
		p[q] = nodes[q]
	}
	return p, nil
}

// Mapping is the outcome of MapQubits.
type Mapping struct {
	Circuit *Circuit  // commands over node ids, with inserted SWAP commands
	Initial Placement // placement the mapping started from
	Final   Placement // placement after all inserted swaps
	Swaps   int
}

// MapQubits rewrites c onto node ids, inserting SWAP commands so that every
// two-qubit command acts on adjacent nodes. Commands over more than two qubits
// cannot be routed.
func MapQubits(c *Circuit, g Connectivity, initial Placement) (*Mapping, error) {
	current := initial.Clone()
	occupant := make(map[int]int, len(current))
	for q, n := range current {
		occupant[n] = q
	}

	node := func(q int) (int, error) {
		n, ok := current[q]
		if !ok {
			return 0, fmt.Errorf("%w: qubit %d has no placement", ErrUnroutable, q)
		}
		return n, nil
	}

	swap := func(a, b int) {
		qa, okA := occupant[a]
		qb, okB := occupant[b]
		delete(occupant, a)
		delete(occupant, b)
		if okA {
			current[qa] = b
			occupant[b] = qa
		}
		if okB {
			current[qb] = a
			occupant[a] = qb
		}
	}

	out := c.derive()
	out.qubits = 0
	for _, n := range current {
		out.qubits = max(out.qubits, n+1)
	}
	swaps := 0

	for i, cmd := range c.commands {
		nodes := make([]int, len(cmd.Args))
		for j, q := range cmd.Args {
			n, err := node(q)
			if err != nil {
				return nil, fmt.Errorf("command %d: %w", i, err)
			}
			nodes[j] = n
		}

		switch len(nodes) {
		case 0, 1:
		case 2:
			if !g.Adjacent(nodes[0], nodes[1]) {
				path := g.ShortestPath(nodes[0], nodes[1])
				if path == nil {
					return nil, fmt.Errorf("%w: command %d (%s): nodes %d and %d are disconnected",
						ErrUnroutable, i, cmd.Op, nodes[0], nodes[1])
				}
				// Walk the first qubit along the path until it neighbours the second.
				for k := 0; k < len(path)-2; k++ {
					out.Add(SWAP, []int{path[k], path[k+1]})
					swap(path[k], path[k+1])
					swaps++
				}
				nodes[0] = path[len(path)-2]
			}
		default:
			return nil, fmt.Errorf("%w: command %d (%s) acts on %d qubits",
				ErrUnroutable, i, cmd.Op, len(nodes))
		}

		out.Add(cmd.Op, nodes, cmd.Params...)
	}

	return &Mapping{Circuit: out, Initial: initial.Clone(), Final: current, Swaps: swaps}, nil
}

// DecomposeSwaps replaces every uncontrolled SWAP with three CX commands.
func DecomposeSwaps(c *Circuit) *Circuit {
	out := c.derive()
	for _, cmd := range c.commands {
		if cmd.Op != SWAP {
			out.Add(cmd.Op, cmd.Args, cmd.Params...)
			continue
		}
		a, b := cmd.Args[0], cmd.Args[1]
		out.Add(CX, []int{a, b}).
			Add(CX, []int{b, a}).
			Add(CX, []int{a, b})
	}
	return out
}

// UsedNodes returns the distinct qubit arguments of c in ascending order.
func UsedNodes(c *Circuit) []int {
	var used []int
	for _, cmd := range c.commands {
		for _, a := range cmd.Args {
			if !slices.Contains(used, a) {
				used = append(used, a)
			}
		}
	}
	slices.Sort(used)
	return used
}
