//go:build !nodevice

package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/arch"
	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

func TestRouteInsertsSwaps(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	line := arch.Line(3)
	c := circuit.New(circuit.NewH(0), circuit.NewCX(0, 2))

	routed, err := r.Route(c, line)
	require.NoError(t, err)

	assert.Equal(t, 1, routed.Swaps)
	assert.GreaterOrEqual(t, routed.Circuit.Depth(), c.Depth())
	// H, three CX for the swap, then the original CX
	assert.Equal(t, 5, routed.Circuit.Len())
	assert.Equal(t, device.Placement{0: 0, 1: 1, 2: 2}, routed.Placement)
	assert.Equal(t, device.Placement{0: 1, 1: 0, 2: 2}, routed.Final)
	assert.Equal(t, []int{0, 1, 2}, routed.Nodes)

	for _, g := range routed.Circuit.Gates() {
		if g.Arity() == 2 {
			q := g.Qubits()
			assert.True(t, line.Adjacent(q[0], q[1]), g.String())
		}
		assert.NotEqual(t, circuit.SWAP, g.Kind)
	}
}

func TestRouteAdjacentNeedsNoSwap(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	c := circuit.New(circuit.NewRx(circuit.Named("a"), 0), circuit.NewCX(0, 1))
	routed, err := r.Route(c, arch.Line(2))
	require.NoError(t, err)
	assert.Zero(t, routed.Swaps)
	assert.Equal(t, c.Len(), routed.Circuit.Len())
	assert.Equal(t, []string{"a"}, routed.Circuit.Variables())
}

func TestRouteOnDevice(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	a, err := arch.Select("ourense", 0)
	require.NoError(t, err)

	c := circuit.New(circuit.NewCX(0, 4), circuit.NewCX(2, 3), circuit.NewZ(0, 4))
	routed, err := r.Route(c, a)
	require.NoError(t, err)
	assert.Positive(t, routed.Swaps)
	assert.GreaterOrEqual(t, routed.Circuit.Depth(), c.Depth())
	for _, g := range routed.Circuit.Gates() {
		q := g.Qubits()
		if len(q) == 2 {
			assert.True(t, a.Adjacent(q[0], q[1]), g.String())
		}
	}
}

func TestRouteErrors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Route(circuit.New(circuit.NewCX(0, 3)), arch.Line(3))
	assert.ErrorIs(t, err, device.ErrInsufficientNodes)

	_, err = r.Route(circuit.New(circuit.NewCCX(0, 1, 2)), arch.Line(3))
	assert.ErrorIs(t, err, device.ErrUnroutable)

	disconnected := arch.New("split", []int{0, 1}, nil)
	_, err = r.Route(circuit.New(circuit.NewCX(0, 1)), disconnected)
	assert.ErrorIs(t, err, device.ErrUnroutable)
}

func TestRouteOntoSparseNodeIDs(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	routed, err := r.Route(circuit.New(circuit.NewCX(0, 1)), arch.FromEdges("x", []arch.Edge{{3, 7}, {7, 9}}))
	require.NoError(t, err)
	assert.Equal(t, device.Placement{0: 3, 1: 7}, routed.Placement)
	assert.Equal(t, []int{3, 7}, routed.Nodes)
	assert.Zero(t, routed.Swaps)
}
