package arch

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrArchitectureNotFound = errors.New("arch: architecture not found")
	ErrArchitectureTooSmall = errors.New("arch: architecture too small")
	ErrMissingQubitCount    = errors.New("arch: qubit count required")
	ErrArchitectureTooLarge = errors.New("arch: architecture too large")
)

// MaxNodes bounds the qubit count Select accepts.
const MaxNodes = 1024

type entry struct {
	build    func(qubits int) *Architecture
	scalable bool
}

var catalog = map[string]entry{
	"ourense":      fixed("ourense", ourense),
	"valencia":     fixed("valencia", ourense),
	"vigo":         fixed("vigo", ourense),
	"yorktown":     fixed("yorktown", yorktown),
	"melbourne":    fixed("melbourne", melbourne),
	"almaden":      fixed("almaden", almaden),
	"boeblingen":   fixed("boeblingen", almaden),
	"singapore":    fixed("singapore", almaden),
	"johannesburg": fixed("johannesburg", johannesburg),
	"poughkeepsie": fixed("poughkeepsie", johannesburg),
	"falcon":       fixed("falcon", falcon),
	"hummingbird":  fixed("hummingbird", hummingbird),
	"sycamore":     fixed("sycamore", sycamore),
	"aspen9":       fixed("aspen9", aspen9),
	"line":         {build: Line, scalable: true},
}

func fixed(name string, edges func() []Edge) entry {
	return entry{build: func(int) *Architecture { return FromEdges(name, edges()) }}
}

// Names returns the catalog names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Scalable reports whether name is a parametric architecture that needs a qubit count.
func Scalable(name string) bool {
	return catalog[strings.ToLower(name)].scalable
}

// Select builds the named architecture. A qubits value of zero means no size
// requirement for fixed devices; parametric ones require it.
func Select(name string, qubits int) (*Architecture, error) {
	e, ok := catalog[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q, select from %s", ErrArchitectureNotFound, name, strings.Join(Names(), ", "))
	}
	if e.scalable && qubits <= 0 {
		return nil, fmt.Errorf("%w: architecture %q", ErrMissingQubitCount, name)
	}
	if qubits > MaxNodes {
		return nil, fmt.Errorf("%w: %d qubits requested, at most %d supported", ErrArchitectureTooLarge, qubits, MaxNodes)
	}
	a := e.build(qubits)
	if qubits > 0 && a.NodeCount() < qubits {
		return nil, fmt.Errorf("%w: %q has %d nodes, %d qubits requested",
			ErrArchitectureTooSmall, name, a.NodeCount(), qubits)
	}
	return a, nil
}

// Line is a chain of n nodes 0-1-...-(n-1).
func Line(n int) *Architecture {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	return New("line", nodes, chain(0, n-1))
}

// chain couples i to i+1 for every i in [from, to).
func chain(from, to int) []Edge {
	var edges []Edge
	for i := from; i < to; i++ {
		edges = append(edges, Edge{i, i + 1})
	}
	return edges
}

// nodeLine couples consecutive entries of nodes.
func nodeLine(nodes ...int) []Edge {
	edges := make([]Edge, 0, len(nodes))
	for i := 0; i+1 < len(nodes); i++ {
		edges = append(edges, Edge{nodes[i], nodes[i+1]})
	}
	return edges
}

// ring couples from..to in a closed loop.
func ring(from, to int) []Edge {
	return append(chain(from, to), Edge{from, to})
}

func join(parts ...[]Edge) []Edge {
	return slices.Concat(parts...)
}

func ourense() []Edge {
	return []Edge{{0, 1}, {1, 2}, {1, 3}, {3, 4}}
}

func yorktown() []Edge {
	return []Edge{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {2, 4}, {3, 4}}
}

func melbourne() []Edge {
	var rungs []Edge
	for i := 0; i < 6; i++ {
		rungs = append(rungs, Edge{i + 1, 13 - i})
	}
	return join(chain(0, 6), chain(7, 13), rungs)
}

func almaden() []Edge {
	return join(
		chain(0, 4), chain(5, 9), chain(10, 14), chain(15, 19),
		[]Edge{{1, 6}, {3, 8}, {5, 10}, {7, 12}, {9, 14}, {11, 16}, {13, 18}},
	)
}

func johannesburg() []Edge {
	return join(
		chain(0, 4), chain(5, 9), chain(10, 14), chain(15, 19),
		[]Edge{{0, 5}, {5, 10}, {10, 15}, {7, 12}, {4, 9}, {9, 14}, {14, 19}},
	)
}

// falcon is the 27 qubit IBM Falcon r4 heavy-hex layout.
func falcon() []Edge {
	return join(
		nodeLine(0, 1, 4, 7, 10, 12, 15, 18, 21, 23, 24, 25, 22, 19, 16, 14, 11, 8, 5, 3, 2, 1),
		[]Edge{{6, 7}, {17, 18}, {25, 26}, {19, 20}, {8, 9}, {12, 13}, {13, 14}},
	)
}

// hummingbird is the 65 qubit IBM Hummingbird r2 layout.
func hummingbird() []Edge {
	return join(
		chain(0, 9), chain(13, 23), chain(27, 37), chain(41, 51), chain(55, 64),
		nodeLine(0, 10, 13),
		nodeLine(4, 11, 17),
		nodeLine(8, 12, 21),
		nodeLine(15, 24, 29),
		nodeLine(19, 25, 33),
		nodeLine(23, 26, 37),
		nodeLine(27, 38, 41),
		nodeLine(31, 39, 45),
		nodeLine(35, 40, 49),
		nodeLine(43, 52, 56),
		nodeLine(47, 53, 60),
		nodeLine(51, 54, 64),
	)
}

// sycamore is Google's Sycamore grid with every qubit assumed working.
func sycamore() []Edge {
	return nodeLine(
		5, 6, 4, 7, 3, 8, 2, 9, 1, 10, 0, 11,
		12, 10, 13, 9, 14, 8, 15, 7, 16, 6, 17,
		18, 16, 19, 15, 20, 14, 21, 13, 22, 12, 23,
		24, 22, 25, 21, 26, 20, 27, 19, 28, 18, 29,
		30, 28, 31, 27, 32, 26, 33, 25, 34, 24, 35,
		36, 34, 37, 33, 38, 32, 39, 31, 40, 30, 41,
		42, 40, 43, 39, 44, 38, 45, 37, 46, 36, 47,
		58, 46, 49, 45, 50, 44, 51, 43, 52, 42, 53,
	)
}

// aspen9 is Rigetti's Aspen-9: four octagons joined by two couplings each.
func aspen9() []Edge {
	return join(
		ring(0, 7), ring(10, 17), ring(20, 27), ring(30, 37),
		[]Edge{{2, 15}, {1, 16}, {12, 25}, {11, 26}, {22, 35}, {21, 36}},
	)
}
