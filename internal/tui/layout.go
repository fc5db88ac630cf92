package tui

import (
	"slices"

	"qanalyse/internal/circuit"
)

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *circuit.Gate
	isControl   bool
	isTarget    bool // drawn as a wire symbol rather than a box
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// grid places gates in columns. A gate takes the first column after every
// earlier gate that touches a qubit in its vertical span, so connectors never
// cross another gate.
type grid struct {
	qubits  int
	gates   []circuit.Gate
	columns [][]int // gate indices per column
	column  []int   // column of each gate
}

func span(g circuit.Gate) (lo, hi int) {
	qs := g.Qubits()
	return slices.Min(qs), slices.Max(qs)
}

func newGrid(c *circuit.Circuit) *grid {
	gr := &grid{qubits: c.Qubits(), gates: c.Gates()}
	next := make([]int, c.Qubits())
	for i, g := range gr.gates {
		lo, hi := span(g)
		col := 0
		for q := lo; q <= hi; q++ {
			col = max(col, next[q])
		}
		for q := lo; q <= hi; q++ {
			next[q] = col + 1
		}
		for len(gr.columns) <= col {
			gr.columns = append(gr.columns, nil)
		}
		gr.columns[col] = append(gr.columns[col], i)
		gr.column = append(gr.column, col)
	}
	return gr
}

// steps is the number of occupied columns.
func (gr *grid) steps() int { return len(gr.columns) }

// gateAt returns the index of the gate acting on qubit in column step.
func (gr *grid) gateAt(step, qubit int) (int, bool) {
	if step < 0 || step >= len(gr.columns) {
		return 0, false
	}
	for _, i := range gr.columns[step] {
		if slices.Contains(gr.gates[i].Qubits(), qubit) {
			return i, true
		}
	}
	return 0, false
}

// symbolTarget reports whether the target of g is drawn as a wire symbol.
func symbolTarget(g circuit.Gate) bool {
	switch g.Kind {
	case circuit.SWAP:
		return true
	case circuit.X, circuit.Z:
		return len(g.Controls) > 0
	}
	return false
}

// cell returns rendering information for the cell at (step, qubit).
func (gr *grid) cell(step, qubit int) cellInfo {
	var info cellInfo
	if step < 0 || step >= len(gr.columns) {
		return info
	}

	if i, ok := gr.gateAt(step, qubit); ok {
		g := gr.gates[i]
		info.gate = &g
		info.isControl = slices.Contains(g.Controls, qubit)
		info.isTarget = slices.Contains(g.Targets, qubit) && symbolTarget(g)
	}

	// Vertical connections for multi-qubit gates
	for _, i := range gr.columns[step] {
		g := gr.gates[i]
		if g.Arity() < 2 {
			continue
		}
		lo, hi := span(g)
		if qubit < lo || qubit > hi {
			continue
		}
		info.vertAbove = info.vertAbove || qubit > lo
		info.vertBelow = info.vertBelow || qubit < hi
		if info.gate == nil {
			info.passThrough = true
		}
	}
	return info
}

// without returns c minus gate i.
func without(c *circuit.Circuit, i int) *circuit.Circuit {
	gates := c.Gates()
	return circuit.WithQubits(c.Qubits(), slices.Delete(gates, i, i+1)...)
}
