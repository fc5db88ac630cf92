//go:build nodevice

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutedViewWithoutRouter(t *testing.T) {
	m := newModel(t, Options{Source: farCX, Architecture: "line"})
	require.NoError(t, m.err)
	assert.True(t, m.unrouted)
	require.NotNil(t, m.report)
	assert.Equal(t, 2, m.report.GateCount)

	m = press(m, "c", "c")
	assert.Equal(t, viewRouted, m.mode)
	assert.NoError(t, m.err)
	assert.Zero(t, m.swaps)
	assert.Equal(t, 2, m.shown.Len())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)
	assert.Contains(t, m.View(), "on line (routing unavailable)")
}
