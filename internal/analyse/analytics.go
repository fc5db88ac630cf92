package analyse

import (
	"fmt"
	"strings"

	"qanalyse/internal/circuit"
)

// LabelCount is one entry of the gate histogram.
type LabelCount struct {
	Label string `json:"label" msgpack:"label"`
	Count int    `json:"count" msgpack:"count"`
}

// ArityCount is one entry of the qubit arity histogram.
type ArityCount struct {
	Qubits int `json:"qubits" msgpack:"qubits"`
	Count  int `json:"count" msgpack:"count"`
}

// Report holds the structural metrics of a circuit. Histograms are in
// first-seen order so identical circuits render identically.
type Report struct {
	QubitCount      int          `json:"qubit_count" msgpack:"qubit_count"`
	GateDepth       int          `json:"gate_depth" msgpack:"gate_depth"`
	GateCount       int          `json:"gate_count" msgpack:"gate_count"`
	ParameterCount  int          `json:"parameter_count" msgpack:"parameter_count"`
	GateCounts      []LabelCount `json:"gate_counts" msgpack:"gate_counts"`
	GateQubitCounts []ArityCount `json:"gate_qubit_counts" msgpack:"gate_qubit_counts"`
}

// Compute measures c as it is; callers canonicalize or route beforehand.
func Compute(c *circuit.Circuit) *Report {
	r := &Report{
		QubitCount:      c.Qubits(),
		GateDepth:       c.Depth(),
		GateCount:       c.Len(),
		ParameterCount:  len(c.Variables()),
		GateCounts:      []LabelCount{},
		GateQubitCounts: []ArityCount{},
	}

	labelIdx := make(map[string]int)
	arityIdx := make(map[int]int)
	for _, g := range c.Gates() {
		label := g.Label()
		if i, ok := labelIdx[label]; ok {
			r.GateCounts[i].Count++
		} else {
			labelIdx[label] = len(r.GateCounts)
			r.GateCounts = append(r.GateCounts, LabelCount{Label: label, Count: 1})
		}

		arity := g.Arity()
		if i, ok := arityIdx[arity]; ok {
			r.GateQubitCounts[i].Count++
		} else {
			arityIdx[arity] = len(r.GateQubitCounts)
			r.GateQubitCounts = append(r.GateQubitCounts, ArityCount{Qubits: arity, Count: 1})
		}
	}
	return r
}

// CountOf returns the number of gates with the given label.
func (r *Report) CountOf(label string) int {
	for _, lc := range r.GateCounts {
		if lc.Label == label {
			return lc.Count
		}
	}
	return 0
}

// ArityOf returns the number of gates acting on n qubits.
func (r *Report) ArityOf(n int) int {
	for _, ac := range r.GateQubitCounts {
		if ac.Qubits == n {
			return ac.Count
		}
	}
	return 0
}

func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Qubit Count:             %d\n", r.QubitCount)
	fmt.Fprintf(&sb, "Gate Depth:              %d\n", r.GateDepth)
	fmt.Fprintf(&sb, "Gate Count:              %d\n", r.GateCount)
	fmt.Fprintf(&sb, "Parameter Count:         %d\n", r.ParameterCount)
	for _, ac := range r.GateQubitCounts {
		fmt.Fprintf(&sb, "Number of %d Qubit Gates: %d\n", ac.Qubits, ac.Count)
	}
	return sb.String()
}

// Info is the verbose rendering: a banner, the summary and every gate label.
func (r *Report) Info() string {
	var sb strings.Builder
	sb.WriteString("========== CIRCUIT INFO ==========\n")
	sb.WriteString(r.String())
	sb.WriteString("\nGate Counts:\n")
	for _, lc := range r.GateCounts {
		fmt.Fprintf(&sb, "%s: %d\n", lc.Label, lc.Count)
	}
	sb.WriteString("\n")
	return sb.String()
}
