//go:build nodevice

package analyse

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/arch"
	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

func TestAnalyseFallsBackUnrouted(t *testing.T) {
	var buf bytes.Buffer
	a, err := New(WithArchitecture(arch.Line(3)), WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	assert.False(t, a.CanRoute())

	c := circuit.New(circuit.NewH(0), circuit.NewCX(0, 2))
	routed, err := a.Analyse(c)
	require.NoError(t, err)
	unrouted, err := a.AnalyseOn(c, nil)
	require.NoError(t, err)
	assert.Equal(t, unrouted, routed)
	assert.Equal(t, 1, routed.CountOf("CX(2)"))
	assert.Contains(t, buf.String(), "no router available")

	_, err = a.Route(c, arch.Line(3))
	assert.ErrorIs(t, err, device.ErrCapabilityMissing)
}

func TestPoolWithoutDestination(t *testing.T) {
	a, err := NewPool().Get("line", 3)
	require.NoError(t, err)
	assert.False(t, a.CanRoute())
	assert.Equal(t, 3, a.Architecture().NodeCount())
}
