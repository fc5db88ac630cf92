package canon

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"qanalyse/internal/circuit"
)

// stateVector is a small dense simulator used to check that rewrites keep the
// circuit's unitary up to a global phase.
type stateVector struct {
	amps []complex128
}

func randomState(n int, seed uint64) *stateVector {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	amps := make([]complex128, 1<<n)
	norm := 0.0
	for i := range amps {
		amps[i] = complex(r.NormFloat64(), r.NormFloat64())
		norm += real(amps[i] * cmplx.Conj(amps[i]))
	}
	for i := range amps {
		amps[i] /= complex(math.Sqrt(norm), 0)
	}
	return &stateVector{amps: amps}
}

func (s *stateVector) clone() *stateVector {
	amps := make([]complex128, len(s.amps))
	copy(amps, s.amps)
	return &stateVector{amps: amps}
}

func matrixOf(t *testing.T, g circuit.Gate) [2][2]complex128 {
	t.Helper()
	rot := func(theta float64) (complex128, complex128) {
		return complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
	}
	angle := func() float64 {
		require.Equal(t, circuit.ParamFixed, g.Param.Form, "simulation needs fixed angles: %s", g)
		return g.Param.Value
	}
	rx := func(theta float64) [2][2]complex128 {
		c, s := rot(theta)
		return [2][2]complex128{{c, -1i * s}, {-1i * s, c}}
	}
	h := complex(1/math.Sqrt2, 0)

	switch g.Kind {
	case circuit.I:
		return [2][2]complex128{{1, 0}, {0, 1}}
	case circuit.X:
		return [2][2]complex128{{0, 1}, {1, 0}}
	case circuit.Y:
		return [2][2]complex128{{0, -1i}, {1i, 0}}
	case circuit.Z:
		return [2][2]complex128{{1, 0}, {0, -1}}
	case circuit.H:
		return [2][2]complex128{{h, h}, {h, -h}}
	case circuit.Rx:
		return rx(angle())
	case circuit.Ry:
		c, s := rot(angle())
		return [2][2]complex128{{c, -s}, {s, c}}
	case circuit.Rz:
		theta := angle()
		return [2][2]complex128{{cmplx.Exp(complex(0, -theta/2)), 0}, {0, cmplx.Exp(complex(0, theta/2))}}
	case circuit.V:
		return rx(math.Pi / 2)
	case circuit.Vdg:
		return rx(-math.Pi / 2)
	}
	t.Fatalf("no matrix for %s", g)
	return [2][2]complex128{}
}

// apply runs a single gate. Every control must be set for the gate to act.
func (s *stateVector) apply(t *testing.T, g circuit.Gate) {
	t.Helper()
	mask := 0
	for _, c := range g.Controls {
		mask |= 1 << c
	}

	if g.Kind == circuit.SWAP {
		b1, b2 := 1<<g.Targets[0], 1<<g.Targets[1]
		for i := range s.amps {
			if i&mask == mask && i&b1 != 0 && i&b2 == 0 {
				j := (i &^ b1) | b2
				s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
			}
		}
		return
	}

	m := matrixOf(t, g)
	for _, target := range g.Targets {
		bit := 1 << target
		for i := range s.amps {
			if i&bit == 0 && i&mask == mask {
				j := i | bit
				a0, a1 := s.amps[i], s.amps[j]
				s.amps[i] = m[0][0]*a0 + m[0][1]*a1
				s.amps[j] = m[1][0]*a0 + m[1][1]*a1
			}
		}
	}
}

func (s *stateVector) run(t *testing.T, c *circuit.Circuit) {
	t.Helper()
	for _, g := range c.Gates() {
		s.apply(t, g)
	}
}

// requireSameUnitary checks |<a|b>| = 1 on generic input states, which only
// holds when the two circuits differ by a global phase at most.
func requireSameUnitary(t *testing.T, want, got *circuit.Circuit) {
	t.Helper()
	n := max(want.Qubits(), got.Qubits())
	for seed := uint64(1); seed <= 3; seed++ {
		in := randomState(n, seed)
		a, b := in.clone(), in.clone()
		a.run(t, want)
		b.run(t, got)

		var overlap complex128
		for i := range a.amps {
			overlap += cmplx.Conj(a.amps[i]) * b.amps[i]
		}
		require.InDelta(t, 1, cmplx.Abs(overlap), 1e-9, "seed %d", seed)
	}
}
