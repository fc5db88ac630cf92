package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQubitCount(t *testing.T) {
	assert.Equal(t, 0, New().Qubits())
	assert.Equal(t, 3, New(NewCX(0, 2)).Qubits())
	assert.Equal(t, 5, WithQubits(5, NewX(1)).Qubits())
	assert.Equal(t, 4, WithQubits(2, NewX(3)).Qubits())
}

func TestCircuitIsImmutable(t *testing.T) {
	gates := []Gate{NewCX(0, 1)}
	c := New(gates...)
	gates[0].Targets[0] = 7

	assert.Equal(t, []int{1}, c.Gate(0).Targets)

	got := c.Gates()
	got[0].Controls[0] = 9
	assert.Equal(t, []int{0}, c.Gate(0).Controls)

	longer := c.Append(NewH(2))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, longer.Len())
	assert.Equal(t, 3, longer.Qubits())
}

func TestConcat(t *testing.T) {
	a := WithQubits(4, NewH(0))
	b := New(NewCX(0, 1))
	c := Concat(a, nil, b)
	assert.Equal(t, 4, c.Qubits())
	assert.Equal(t, 2, c.Len())
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name  string
		c     *Circuit
		depth int
	}{
		{"empty", New(), 0},
		{"parallel singles", New(NewH(0), NewH(1), NewH(2)), 1},
		{"chain on one qubit", New(NewH(0), NewX(0), NewZ(0)), 3},
		{"entangling ladder", New(NewH(0), NewCX(0, 1), NewCX(1, 2), NewH(0)), 3},
		{"controls count as dependencies", New(NewX(2), NewCCX(0, 1, 2), NewX(0)), 3},
		{"rx then cx", New(NewRx(Named("a"), 0), NewCX(0, 1)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.depth, tt.c.Depth())
		})
	}
}

func TestDAGLayers(t *testing.T) {
	c := New(NewH(0), NewH(1), NewCX(0, 1), NewX(2))
	dag := NewDAG(c)
	layers := make([]int, 0, len(dag.Nodes))
	for _, n := range dag.Nodes {
		layers = append(layers, n.Layer)
	}
	assert.Equal(t, []int{0, 0, 1, 0}, layers)
	assert.Equal(t, 2, dag.Depth())
	assert.ElementsMatch(t, []int{0, 1}, dag.Nodes[2].Dependencies)
}

func TestParameterMap(t *testing.T) {
	c := New(
		NewRx(Named("b"), 0),
		NewRy(Fixed(0.3), 1),
		NewRz(Named("a"), 1),
		NewRx(Expression("a+b", "b", "a"), 2),
	)

	assert.Equal(t, []string{"b", "a"}, c.Variables())
	pm := c.ParameterMap()
	assert.Equal(t, []int{0, 3}, pm["b"])
	assert.Equal(t, []int{2, 3}, pm["a"])
	assert.Len(t, pm, 2)
}

func TestValidate(t *testing.T) {
	require.NoError(t, New(NewSWAP(0, 1, 2), NewRx(Fixed(1), 0)).Validate())

	bad := []Gate{
		NewGate(X, nil, nil, Parameter{}),
		NewGate(SWAP, []int{0}, nil, Parameter{}),
		NewCX(1, 1),
		NewGate(Rx, []int{0}, nil, Parameter{}),
		NewGate(H, []int{0}, nil, Fixed(math.Pi)),
	}
	for _, g := range bad {
		err := New(g).Validate()
		assert.ErrorIs(t, err, ErrInvalidGate, g.String())
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "X(1)", NewX(0).Label())
	assert.Equal(t, "CX(2)", NewCX(0, 1).Label())
	assert.Equal(t, "CCX(3)", NewCCX(0, 1, 2).Label())
	assert.Equal(t, "CSWAP(3)", NewSWAP(1, 2, 0).Label())
	assert.Equal(t, "Rx(1)", NewRx(Named("a"), 0).Label())
}
