package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

func TestRegistry(t *testing.T) {
	n, ok := MaxControls(circuit.X)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, _ = MaxControls(circuit.Rz)
	assert.Equal(t, 1, n)

	n, _ = MaxControls(circuit.I)
	assert.Equal(t, 0, n)

	_, ok = MaxControls(circuit.Kind(42))
	assert.False(t, ok)

	kind, controls, err := Reverse(device.CVdg)
	require.NoError(t, err)
	assert.Equal(t, circuit.Vdg, kind)
	assert.Equal(t, 1, controls)
}

func TestLookup(t *testing.T) {
	op, err := Lookup(circuit.NewCX(0, 1))
	require.NoError(t, err)
	assert.Equal(t, device.CX, op)

	op, err = Lookup(circuit.NewSWAP(0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, device.CSWAP, op)

	_, err = Lookup(circuit.NewGate(circuit.H, nil, nil, circuit.Parameter{}))
	assert.ErrorIs(t, err, ErrMissingTarget)
	assert.NotErrorIs(t, err, ErrUnsupportedMultiTarget)

	_, err = Lookup(circuit.NewGate(circuit.X, []int{0, 1}, nil, circuit.Parameter{}))
	assert.ErrorIs(t, err, ErrUnsupportedMultiTarget)
}
