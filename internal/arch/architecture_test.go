package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPath(t *testing.T) {
	a := Line(5)
	assert.Equal(t, []int{0, 1, 2, 3}, a.ShortestPath(0, 3))
	assert.Equal(t, []int{3, 2, 1}, a.ShortestPath(3, 1))
	assert.Equal(t, []int{2}, a.ShortestPath(2, 2))
	assert.Nil(t, a.ShortestPath(0, 9))
	assert.Equal(t, 3, a.Distance(0, 3))
}

func TestShortestPathBreaksTiesByNodeOrder(t *testing.T) {
	// square 0-1-3-2-0: two shortest paths from 0 to 3
	a := FromEdges("square", []Edge{{0, 1}, {1, 3}, {3, 2}, {2, 0}})
	for range 10 {
		assert.Equal(t, []int{0, 1, 3}, a.ShortestPath(0, 3))
	}
}

func TestLargestLine(t *testing.T) {
	a, err := Select("line", MaxNodes)
	require.NoError(t, err)

	p := a.ShortestPath(0, MaxNodes-1)
	require.Len(t, p, MaxNodes)
	assert.Equal(t, MaxNodes-1, p[len(p)-1])
	assert.Equal(t, MaxNodes-1, a.Distance(MaxNodes-1, 0))
	assert.Len(t, a.hops, 2)
}

func TestAdjacency(t *testing.T) {
	a, _ := Select("ourense", 0)
	assert.True(t, a.Adjacent(1, 3))
	assert.True(t, a.Adjacent(3, 1))
	assert.False(t, a.Adjacent(0, 4))
	assert.Equal(t, 3, a.Degree(1))
	assert.Equal(t, 0, a.Degree(42))
	assert.Equal(t, 3, a.Distance(0, 4))
}

func TestDisconnected(t *testing.T) {
	a := New("pair", []int{0, 1, 5}, []Edge{{0, 1}, {4, 4}})
	assert.False(t, a.Connected())
	assert.Equal(t, []int{0, 1, 5}, a.Nodes())
	assert.Equal(t, -1, a.Distance(0, 5))
	assert.Nil(t, a.ShortestPath(1, 5))
}
