//go:build nodevice

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

func TestConversionNeedsDestination(t *testing.T) {
	assert.False(t, device.Available())

	dc, vm, err := ToDestination(circuit.New(circuit.NewRx(circuit.Named("a"), 0), circuit.NewCX(0, 1)))
	assert.ErrorIs(t, err, device.ErrCapabilityMissing)
	assert.Nil(t, dc)
	assert.Nil(t, vm)

	c, err := FromDestination(device.NewCircuit(2).Add(device.CX, []int{0, 1}))
	assert.ErrorIs(t, err, device.ErrCapabilityMissing)
	assert.Nil(t, c)
}
