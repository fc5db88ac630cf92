package circuit

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Kind identifies a gate in the source gate vocabulary.
type Kind int

const (
	I Kind = iota
	X
	Y
	Z
	H
	Rx
	Ry
	Rz
	SWAP
	V
	Vdg
)

var kindNames = [...]string{"I", "X", "Y", "Z", "H", "Rx", "Ry", "Rz", "SWAP", "V", "Vdg"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every gate kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Parametrized reports whether gates of this kind carry a rotation angle.
func (k Kind) Parametrized() bool {
	return k == Rx || k == Ry || k == Rz
}

// TargetCount returns the number of targets a single instance of the kind acts on.
func (k Kind) TargetCount() int {
	if k == SWAP {
		return 2
	}
	return 1
}

// Gate represents a single operation of the source circuit.
type Gate struct {
	Kind     Kind
	Targets  []int // ordered target qubits
	Controls []int // control qubits, kept in the order they were given
	Param    Parameter
}

// NewGate builds a gate from explicit target and control lists.
// The slices are copied so the gate never aliases caller memory.
func NewGate(kind Kind, targets, controls []int, param Parameter) Gate {
	return Gate{
		Kind:     kind,
		Targets:  slices.Clone(targets),
		Controls: slices.Clone(controls),
		Param:    param,
	}
}

func single(kind Kind, target int, controls []int) Gate {
	return NewGate(kind, []int{target}, controls, Parameter{})
}

func rotation(kind Kind, p Parameter, target int, controls []int) Gate {
	return NewGate(kind, []int{target}, controls, p)
}

// NewI returns an identity gate on target.
func NewI(target int) Gate { return single(I, target, nil) }

// NewX returns a Pauli-X gate, controlled by any given qubits.
func NewX(target int, controls ...int) Gate { return single(X, target, controls) }

// NewY returns a Pauli-Y gate.
func NewY(target int, controls ...int) Gate { return single(Y, target, controls) }

// NewZ returns a Pauli-Z gate.
func NewZ(target int, controls ...int) Gate { return single(Z, target, controls) }

// NewH returns a Hadamard gate.
func NewH(target int, controls ...int) Gate { return single(H, target, controls) }

// NewV returns the square-root-of-X gate, defined as Rx(pi/2).
func NewV(target int, controls ...int) Gate { return single(V, target, controls) }

// NewVdg returns the adjoint of V, defined as Rx(-pi/2).
func NewVdg(target int, controls ...int) Gate { return single(Vdg, target, controls) }

// NewRx returns an X rotation by p.
func NewRx(p Parameter, target int, controls ...int) Gate { return rotation(Rx, p, target, controls) }

// NewRy returns a Y rotation by p.
func NewRy(p Parameter, target int, controls ...int) Gate { return rotation(Ry, p, target, controls) }

// NewRz returns a Z rotation by p.
func NewRz(p Parameter, target int, controls ...int) Gate { return rotation(Rz, p, target, controls) }

// NewSWAP exchanges qubits a and b.
func NewSWAP(a, b int, controls ...int) Gate {
	return NewGate(SWAP, []int{a, b}, controls, Parameter{})
}

// NewCX is shorthand for a singly controlled X.
func NewCX(control, target int) Gate { return NewX(target, control) }

// NewCCX is shorthand for the Toffoli gate.
func NewCCX(c1, c2, target int) Gate { return NewX(target, c1, c2) }

// Qubits returns the controls followed by the targets.
func (g Gate) Qubits() []int {
	qubits := make([]int, 0, len(g.Controls)+len(g.Targets))
	qubits = append(qubits, g.Controls...)
	return append(qubits, g.Targets...)
}

// Arity is the number of qubits the gate touches.
func (g Gate) Arity() int {
	return len(g.Controls) + len(g.Targets)
}

// Parametrized reports whether the gate carries a parameter.
func (g Gate) Parametrized() bool {
	return g.Param.Form != ParamNone
}

// Label is the histogram key: one "C" per control, the kind name and the arity.
func (g Gate) Label() string {
	return fmt.Sprintf("%s%s(%d)", strings.Repeat("C", len(g.Controls)), g.Kind, g.Arity())
}

func (g Gate) clone() Gate {
	return NewGate(g.Kind, g.Targets, g.Controls, g.Param.clone())
}

// Equivalent compares two gates by kind, qubits and parameter, allowing tol of
// numeric drift on fixed parameters.
func (g Gate) Equivalent(o Gate, tol float64) bool {
	if g.Kind != o.Kind || !slices.Equal(g.Targets, o.Targets) || !slices.Equal(g.Controls, o.Controls) {
		return false
	}
	if g.Param.Form != o.Param.Form {
		return false
	}
	switch g.Param.Form {
	case ParamFixed:
		return math.Abs(g.Param.Value-o.Param.Value) <= tol
	case ParamNamed:
		return g.Param.Name == o.Param.Name
	case ParamExpression:
		return g.Param.Text == o.Param.Text && slices.Equal(g.Param.Free, o.Param.Free)
	}
	return true
}

func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("C", len(g.Controls)))
	sb.WriteString(g.Kind.String())
	if g.Parametrized() {
		fmt.Fprintf(&sb, "(%s)", g.Param)
	}
	fmt.Fprintf(&sb, " %v", g.Qubits())
	return sb.String()
}
