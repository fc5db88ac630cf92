//go:build !nodevice

package analyse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/arch"
	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
	"qanalyse/internal/route"
)

func TestAnalyseRoutes(t *testing.T) {
	line := arch.Line(3)
	c := circuit.New(circuit.NewH(0), circuit.NewCX(0, 2))

	a, err := New(WithArchitecture(line))
	require.NoError(t, err)

	routed, err := a.Analyse(c)
	require.NoError(t, err)
	unrouted, err := a.AnalyseOn(c, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, unrouted.CountOf("CX(2)"))
	assert.Equal(t, 4, routed.CountOf("CX(2)"))
	assert.GreaterOrEqual(t, routed.GateDepth, unrouted.GateDepth)

	explicit, err := a.Route(c, line)
	require.NoError(t, err)
	assert.Equal(t, 1, explicit.Swaps)
}

func TestWithRouter(t *testing.T) {
	r, err := route.New()
	require.NoError(t, err)
	a, err := New(WithRouter(r))
	require.NoError(t, err)
	assert.True(t, a.CanRoute())
}

func TestAnalyseTooFewNodes(t *testing.T) {
	a, err := New(WithArchitecture(arch.Line(2)))
	require.NoError(t, err)

	_, err = a.Analyse(circuit.New(circuit.NewCX(0, 2)))
	assert.ErrorIs(t, err, device.ErrInsufficientNodes)
}
