//go:build !nodevice

package convert

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

func requireEquivalent(t *testing.T, want, got *circuit.Circuit) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	assert.Equal(t, want.Qubits(), got.Qubits())
	for i := 0; i < want.Len(); i++ {
		assert.Truef(t, want.Gate(i).Equivalent(got.Gate(i), 1e-12),
			"gate %d: want %s, got %s", i, want.Gate(i), got.Gate(i))
	}
}

func TestRoundTrip(t *testing.T) {
	a := circuit.Named("a")
	c := circuit.New(
		circuit.NewI(0),
		circuit.NewX(0),
		circuit.NewCX(0, 1),
		circuit.NewCCX(0, 1, 2),
		circuit.NewY(1), circuit.NewY(1, 2),
		circuit.NewZ(2), circuit.NewZ(2, 0),
		circuit.NewH(0), circuit.NewH(0, 3),
		circuit.NewRx(a, 0), circuit.NewRx(circuit.Fixed(0.3), 1, 0),
		circuit.NewRy(circuit.Fixed(-math.Pi/2), 2), circuit.NewRy(a, 2, 1),
		circuit.NewRz(circuit.Named("b"), 3), circuit.NewRz(circuit.Fixed(1.25), 3, 2),
		circuit.NewSWAP(0, 1), circuit.NewSWAP(2, 3, 0),
		circuit.NewV(1), circuit.NewV(1, 0),
		circuit.NewVdg(2), circuit.NewVdg(2, 3),
	)

	dc, vm, err := ToDestination(c)
	require.NoError(t, err)
	assert.Len(t, vm, 2)
	assert.Equal(t, c.Len(), dc.Len())

	back, err := FromDestination(dc)
	require.NoError(t, err)
	requireEquivalent(t, c, back)
}

func TestRxCXExample(t *testing.T) {
	c := circuit.New(circuit.NewRx(circuit.Named("a"), 0), circuit.NewCX(0, 1))

	dc, _, err := ToDestination(c)
	require.NoError(t, err)

	cmds := dc.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, device.Rx, cmds[0].Op)
	assert.Equal(t, "a", cmds[0].Params[0].Symbol.Name())
	assert.Equal(t, device.CX, cmds[1].Op)
	assert.Equal(t, []int{0, 1}, cmds[1].Args)

	back, err := FromDestination(dc)
	require.NoError(t, err)
	requireEquivalent(t, c, back)
}

func TestAngleConvention(t *testing.T) {
	c := circuit.New(circuit.NewRz(circuit.Fixed(math.Pi/2), 0))
	dc, _, err := ToDestination(c)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dc.Commands()[0].Params[0].Value, 1e-15)

	back := device.NewCircuit(1).Add(device.Ry, []int{0}, device.Value(0.25))
	got, err := FromDestination(back)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, got.Gate(0).Param.Value, 1e-15)
}

func TestSymbolIdentity(t *testing.T) {
	c := circuit.New(
		circuit.NewRx(circuit.Named("theta"), 0),
		circuit.NewRz(circuit.Named("phi"), 1),
		circuit.NewRy(circuit.Named("theta"), 1, 0),
		circuit.NewRz(circuit.Expression("2*theta", "theta"), 0),
	)
	dc, vm, err := ToDestination(c)
	require.NoError(t, err)

	cmds := dc.Commands()
	theta := cmds[0].Params[0].Symbol
	assert.Same(t, theta, cmds[2].Params[0].Symbol)
	assert.Same(t, theta, cmds[3].Params[0].Symbol)
	assert.Same(t, theta, vm["theta"])
	assert.NotSame(t, theta, cmds[1].Params[0].Symbol)

	// a fresh call binds fresh symbols
	dc2, vm2, err := ToDestination(c)
	require.NoError(t, err)
	assert.NotSame(t, theta, vm2["theta"])
	assert.Same(t, vm2["theta"], dc2.Commands()[0].Params[0].Symbol)
}

func TestControlCountOverflow(t *testing.T) {
	for _, kind := range circuit.Kinds() {
		maxControls, ok := MaxControls(kind)
		require.True(t, ok, kind.String())

		controls := make([]int, maxControls+1)
		for i := range controls {
			controls[i] = i + 2
		}
		targets := []int{0}
		if kind == circuit.SWAP {
			targets = []int{0, 1}
		}
		var param circuit.Parameter
		if kind.Parametrized() {
			param = circuit.Fixed(0.1)
		}
		c := circuit.New(circuit.NewGate(kind, targets, controls, param))

		_, _, err := ToDestination(c)
		assert.ErrorIs(t, err, ErrUnsupportedControlCount, kind.String())
	}
}

func TestToDestinationErrors(t *testing.T) {
	tests := []struct {
		name string
		gate circuit.Gate
		want error
	}{
		{"multi target", circuit.NewGate(circuit.X, []int{0, 1}, nil, circuit.Parameter{}), ErrUnsupportedMultiTarget},
		{"swap with one target", circuit.NewGate(circuit.SWAP, []int{0}, nil, circuit.Parameter{}), ErrUnsupportedMultiTarget},
		{"no target", circuit.NewGate(circuit.X, nil, []int{0}, circuit.Parameter{}), ErrMissingTarget},
		{"unknown kind", circuit.NewGate(circuit.Kind(42), []int{0}, nil, circuit.Parameter{}), ErrUnsupportedGate},
		{"ambiguous expression", circuit.NewRx(circuit.Expression("a+b", "a", "b"), 0), ErrAmbiguousParameterExpression},
		{"expression without variables", circuit.NewRx(circuit.Expression("1+1"), 0), ErrAmbiguousParameterExpression},
		{"unknown parameter form", circuit.NewRx(circuit.Parameter{Form: circuit.ParamForm(9)}, 0), ErrUnsupportedParameterRepresentation},
		{"missing angle", circuit.NewGate(circuit.Rz, []int{0}, nil, circuit.Parameter{}), ErrUnsupportedParameterRepresentation},
		{"angle on fixed gate", circuit.NewGate(circuit.H, []int{0}, nil, circuit.Fixed(1)), ErrUnsupportedParameterRepresentation},
		{"too many controls", circuit.NewY(0, 1, 2), ErrUnsupportedControlCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := circuit.New(circuit.NewH(0), tt.gate)
			dc, vm, err := ToDestination(c)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, dc)
			assert.Nil(t, vm)

			var ge *GateError
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, 1, ge.Index)
		})
	}
}

func TestFromDestinationErrors(t *testing.T) {
	s := device.NewCircuit(2).FreshSymbol("s")
	tests := []struct {
		name string
		cmd  func(*device.Circuit)
		want error
	}{
		{"unknown op", func(dc *device.Circuit) { dc.Add(device.OpType(77), []int{0}) }, ErrUnsupportedGate},
		{"two parameters", func(dc *device.Circuit) {
			dc.Add(device.Rx, []int{0}, device.Value(0.1), device.Sym(s))
		}, ErrUnsupportedParameterCount},
		{"missing parameter", func(dc *device.Circuit) { dc.Add(device.Rz, []int{0}) }, ErrMalformedCommand},
		{"stray parameter", func(dc *device.Circuit) { dc.Add(device.X, []int{0}, device.Value(1)) }, ErrMalformedCommand},
		{"wrong arity", func(dc *device.Circuit) { dc.Add(device.CX, []int{0}) }, ErrMalformedCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := device.NewCircuit(2).Add(device.H, []int{1})
			tt.cmd(dc)
			c, err := FromDestination(dc)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, c)
		})
	}
}

func TestFromDestinationDecodesControls(t *testing.T) {
	s := device.NewCircuit(3).FreshSymbol("x")
	dc := device.NewCircuit(3).
		Add(device.CCX, []int{2, 0, 1}).
		Add(device.CSWAP, []int{1, 0, 2}).
		Add(device.CH, []int{0, 2}).
		Add(device.CRy, []int{1, 2}, device.Sym(s)).
		Add(device.Noop, []int{0})

	c, err := FromDestination(dc)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())
	assert.True(t, c.Gate(0).Equivalent(circuit.NewX(1, 2, 0), 0))
	assert.True(t, c.Gate(1).Equivalent(circuit.NewSWAP(0, 2, 1), 0))
	assert.True(t, c.Gate(2).Equivalent(circuit.NewH(2, 0), 0))
	assert.True(t, c.Gate(3).Equivalent(circuit.NewRy(circuit.Named("x"), 2, 1), 0))
	assert.True(t, c.Gate(4).Equivalent(circuit.NewI(0), 0))
}
