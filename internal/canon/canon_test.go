package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanalyse/internal/circuit"
	"qanalyse/internal/convert"
)

func compile(t *testing.T, cfg Config, c *circuit.Circuit) *circuit.Circuit {
	t.Helper()
	out, err := New(cfg).Compile(c)
	require.NoError(t, err)
	return out
}

func fixed(v float64) circuit.Parameter { return circuit.Fixed(v) }

func TestDecompositionsPreserveUnitary(t *testing.T) {
	all := Default()
	all.RyGate, all.YGate, all.VGate = true, true, true

	tests := []struct {
		name string
		gate circuit.Gate
	}{
		{"swap", circuit.NewSWAP(0, 2)},
		{"controlled swap", circuit.NewSWAP(0, 2, 1)},
		{"toffoli", circuit.NewCCX(0, 1, 2)},
		{"toffoli reversed controls", circuit.NewCCX(2, 0, 1)},
		{"cccx", circuit.NewX(3, 0, 1, 2)},
		{"ccy", circuit.NewY(2, 0, 1)},
		{"cccz", circuit.NewZ(0, 1, 2, 3)},
		{"cch", circuit.NewH(2, 0, 1)},
		{"ch", circuit.NewH(1, 0)},
		{"crx", circuit.NewRx(fixed(0.7), 1, 0)},
		{"cry", circuit.NewRy(fixed(-1.3), 0, 1)},
		{"crz", circuit.NewRz(fixed(2.1), 1, 0)},
		{"ccrx", circuit.NewRx(fixed(0.4), 2, 0, 1)},
		{"cccrz", circuit.NewRz(fixed(1.1), 3, 2, 0, 1)},
		{"ccv", circuit.NewV(0, 1, 2)},
		{"cvdg", circuit.NewVdg(1, 0)},
		{"ry", circuit.NewRy(fixed(0.9), 0)},
		{"y", circuit.NewY(1)},
		{"cy", circuit.NewY(1, 0)},
		{"multi target", circuit.NewGate(circuit.H, []int{0, 1, 2}, nil, circuit.Parameter{})},
		{"controlled multi target", circuit.NewGate(circuit.X, []int{1, 2}, []int{0}, circuit.Parameter{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := circuit.New(tt.gate)
			for _, cfg := range []Config{Default(), all} {
				out := compile(t, cfg, c)
				requireSameUnitary(t, c, out)
			}
		})
	}
}

func TestDefaultOutputConverts(t *testing.T) {
	c := circuit.New(
		circuit.NewX(4, 0, 1, 2, 3),
		circuit.NewSWAP(0, 4, 2),
		circuit.NewRz(circuit.Named("a"), 1, 0, 2),
		circuit.NewH(3, 1, 2),
		circuit.NewGate(circuit.Y, []int{0, 1}, []int{2}, circuit.Parameter{}),
	)
	out := compile(t, Default(), c)

	for i, g := range out.Gates() {
		assert.LessOrEqual(t, len(g.Controls), 1, "gate %d: %s", i, g)
		assert.Len(t, g.Targets, 1, "gate %d: %s", i, g)
	}
	for i, g := range out.Gates() {
		_, err := convert.Lookup(g)
		require.NoError(t, err, "gate %d: %s", i, g)
	}
}

func TestCompileKeepsSymbols(t *testing.T) {
	c := circuit.New(circuit.NewRy(circuit.Named("theta"), 1, 0))
	out := compile(t, Default(), c)

	require.Equal(t, 4, out.Len())
	assert.Equal(t, []string{"theta"}, out.Variables())
	assert.Equal(t, "0.5*theta", out.Gate(0).Param.Text)
	assert.Equal(t, "-0.5*theta", out.Gate(2).Param.Text)
}

func TestDisabledFamiliesLeaveGates(t *testing.T) {
	c := circuit.New(
		circuit.NewSWAP(0, 1),
		circuit.NewCCX(0, 1, 2),
		circuit.NewRx(fixed(1), 1, 0),
		circuit.NewH(1, 0),
		circuit.NewRy(fixed(1), 0),
		circuit.NewY(0),
		circuit.NewV(2),
	)
	out := compile(t, Config{}, c)
	require.Equal(t, c.Len(), out.Len())
	for i := 0; i < c.Len(); i++ {
		assert.True(t, c.Gate(i).Equivalent(out.Gate(i), 0))
	}
}

func TestSwapExpansion(t *testing.T) {
	out := compile(t, Config{Swap: true}, circuit.New(circuit.NewSWAP(0, 1)))
	require.Equal(t, 3, out.Len())
	assert.True(t, out.Gate(0).Equivalent(circuit.NewCX(0, 1), 0))
	assert.True(t, out.Gate(1).Equivalent(circuit.NewCX(1, 0), 0))
	assert.True(t, out.Gate(2).Equivalent(circuit.NewCX(0, 1), 0))
}

func TestToffoliExpansion(t *testing.T) {
	out := compile(t, Config{Toffoli: true}, circuit.New(circuit.NewCCX(0, 1, 2)))
	assert.Equal(t, 15, out.Len())

	cx := 0
	for _, g := range out.Gates() {
		if g.Kind == circuit.X {
			cx++
		}
		if g.Kind == circuit.Rz {
			assert.InDelta(t, math.Pi/4, math.Abs(g.Param.Value), 1e-15)
		}
	}
	assert.Equal(t, 6, cx)
}

func TestVGate(t *testing.T) {
	out := compile(t, Config{VGate: true}, circuit.New(circuit.NewV(0), circuit.NewVdg(1)))
	assert.True(t, out.Gate(0).Equivalent(circuit.NewRx(fixed(math.Pi/2), 0), 1e-15))
	assert.True(t, out.Gate(1).Equivalent(circuit.NewRx(fixed(-math.Pi/2), 1), 1e-15))
}

func TestCompilePreservesQubitCount(t *testing.T) {
	c := circuit.WithQubits(6, circuit.NewH(0))
	assert.Equal(t, 6, compile(t, Default(), c).Qubits())
}

func TestCompileIsDeterministic(t *testing.T) {
	c := circuit.New(circuit.NewX(3, 0, 1, 2), circuit.NewRx(circuit.Named("a"), 0, 1, 2))
	k := New(Default())
	a, err := k.Compile(c)
	require.NoError(t, err)
	b, err := k.Compile(c)
	require.NoError(t, err)
	assert.Equal(t, a.QASM(), b.QASM())
}

func TestCompileErrors(t *testing.T) {
	_, err := New(Default()).Compile(circuit.New(circuit.NewCX(0, 0)))
	assert.ErrorIs(t, err, circuit.ErrInvalidGate)

	_, err = New(Default(), WithMaxRounds(1)).Compile(circuit.New(circuit.NewX(3, 0, 1, 2)))
	assert.ErrorIs(t, err, ErrNoFixpoint)
}

func TestConfigIsNotMutated(t *testing.T) {
	cfg := Default()
	k := New(cfg)
	cfg.Swap = false
	assert.True(t, k.Config().Swap)
}
