package circuit

import "slices"

// DAGNode represents a gate in the circuit as a node in a DAG.
// Dependencies represent ordering constraints - a gate cannot execute before
// the earlier gates that touch any of its qubits.
type DAGNode struct {
	Index        int   // Position of the gate in the circuit
	Gate         Gate  // The gate itself
	Dependencies []int // Indices of nodes that must execute before this one
	Layer        int   // Earliest layer the gate can run in, starting at 0
}

// CircuitDAG is the dependency view of a circuit, used for depth and layout.
type CircuitDAG struct {
	Nodes     []*DAGNode
	NumQubits int
	depth     int
}

// NewDAG builds the dependency graph of c.
func NewDAG(c *Circuit) *CircuitDAG {
	dag := &CircuitDAG{
		Nodes:     make([]*DAGNode, 0, len(c.gates)),
		NumQubits: c.qubits,
	}

	// Track the last gate on each qubit to establish dependencies
	lastGateOnQubit := make(map[int]int)

	for i, gate := range c.gates {
		node := &DAGNode{Index: i, Gate: gate.clone()}

		for _, q := range gate.Qubits() {
			if last, ok := lastGateOnQubit[q]; ok && !slices.Contains(node.Dependencies, last) {
				node.Dependencies = append(node.Dependencies, last)
			}
		}
		for _, dep := range node.Dependencies {
			node.Layer = max(node.Layer, dag.Nodes[dep].Layer+1)
		}
		dag.depth = max(dag.depth, node.Layer+1)

		dag.Nodes = append(dag.Nodes, node)

		// Update last gate for each qubit used
		for _, q := range gate.Qubits() {
			lastGateOnQubit[q] = i
		}
	}

	return dag
}

// Depth returns the number of layers, i.e. the length of the critical path.
func (dag *CircuitDAG) Depth() int {
	return dag.depth
}
