//go:build nodevice

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/device"
)

func TestCommandsWithoutDestination(t *testing.T) {
	path := writeFile(t, "far.qasm", farCX)

	out, err := run(t, "", "analyse", path, "--arch", "line")
	require.NoError(t, err)
	assert.Contains(t, out, "Gate Count:              2\n")

	_, err = run(t, "", "convert", path)
	assert.ErrorIs(t, err, device.ErrCapabilityMissing)

	_, err = run(t, "", "route", path, "--arch", "line")
	assert.ErrorIs(t, err, device.ErrCapabilityMissing)
}
