package canon

import (
	"math"
	"slices"

	"qanalyse/internal/circuit"
)

// rule rewrites a single gate. It returns false when the gate is left alone.
type rule func(g circuit.Gate) ([]circuit.Gate, bool)

// rules returns the rewrites enabled by cfg in the order they are tried.
// Families without a gate in the source vocabulary contribute nothing.
func rules(cfg Config) []rule {
	var rs []rule
	if cfg.Multitarget {
		rs = append(rs, splitTargets)
	}
	if cfg.Swap {
		rs = append(rs, expandSwap)
	}
	if cfg.Toffoli {
		rs = append(rs, expandToffoli)
	}
	if cfg.CCMax {
		rs = append(rs, reduceControls)
	}
	if cfg.Multicontrol {
		rs = append(rs, squareRootLadder)
	}
	if cfg.ControlledRotation {
		rs = append(rs, expandControlledRotation)
	}
	if cfg.CHGate {
		rs = append(rs, expandCH)
	}
	if cfg.VGate {
		rs = append(rs, expandV)
	}
	if cfg.RyGate {
		rs = append(rs, expandRy)
	}
	if cfg.YGate {
		rs = append(rs, expandY)
	}
	return rs
}

// single reports whether g has exactly one target, the shape every rule but
// splitTargets and expandSwap works on.
func single(g circuit.Gate) bool { return len(g.Targets) == 1 }

func with(controls []int, extra ...int) []int {
	return append(slices.Clone(controls), extra...)
}

// splitTargets applies a multi-target gate once per target.
func splitTargets(g circuit.Gate) ([]circuit.Gate, bool) {
	if g.Kind == circuit.SWAP || len(g.Targets) <= 1 {
		return nil, false
	}
	out := make([]circuit.Gate, 0, len(g.Targets))
	for _, t := range g.Targets {
		out = append(out, circuit.NewGate(g.Kind, []int{t}, g.Controls, g.Param))
	}
	return out, true
}

// expandSwap writes SWAP as three CX. Only the middle one needs the controls.
func expandSwap(g circuit.Gate) ([]circuit.Gate, bool) {
	if g.Kind != circuit.SWAP || len(g.Targets) != 2 {
		return nil, false
	}
	a, b := g.Targets[0], g.Targets[1]
	return []circuit.Gate{
		circuit.NewCX(a, b),
		circuit.NewX(a, with(g.Controls, b)...),
		circuit.NewCX(a, b),
	}, true
}

// expandToffoli is the standard 6 CX network with T written as Rz(pi/4).
func expandToffoli(g circuit.Gate) ([]circuit.Gate, bool) {
	if g.Kind != circuit.X || len(g.Controls) != 2 || !single(g) {
		return nil, false
	}
	a, b, t := g.Controls[0], g.Controls[1], g.Targets[0]
	T := circuit.Fixed(math.Pi / 4)
	Tdg := circuit.Fixed(-math.Pi / 4)
	return []circuit.Gate{
		circuit.NewH(t),
		circuit.NewCX(b, t),
		circuit.NewRz(Tdg, t),
		circuit.NewCX(a, t),
		circuit.NewRz(T, t),
		circuit.NewCX(b, t),
		circuit.NewRz(Tdg, t),
		circuit.NewCX(a, t),
		circuit.NewRz(T, b),
		circuit.NewRz(T, t),
		circuit.NewH(t),
		circuit.NewCX(a, b),
		circuit.NewRz(T, a),
		circuit.NewRz(Tdg, b),
		circuit.NewCX(a, b),
	}, true
}

// reduceControls rewrites Pauli and Hadamard gates with more controls than
// the destination supports into controlled rotations. P = i*R_P(pi), so the
// i becomes a phase kicked back onto the controls as a chain of Rz.
func reduceControls(g circuit.Gate) ([]circuit.Gate, bool) {
	if !single(g) {
		return nil, false
	}
	k := len(g.Controls)
	t := g.Targets[0]
	switch g.Kind {
	case circuit.X:
		if k <= 2 {
			return nil, false
		}
	case circuit.Y, circuit.Z:
		if k < 2 {
			return nil, false
		}
	case circuit.H:
		if k < 2 {
			return nil, false
		}
		return []circuit.Gate{
			circuit.NewRy(circuit.Fixed(-math.Pi/4), t),
			circuit.NewZ(t, g.Controls...),
			circuit.NewRy(circuit.Fixed(math.Pi/4), t),
		}, true
	default:
		return nil, false
	}

	rot := map[circuit.Kind]circuit.Kind{circuit.X: circuit.Rx, circuit.Y: circuit.Ry, circuit.Z: circuit.Rz}[g.Kind]
	out := []circuit.Gate{circuit.NewGate(rot, []int{t}, g.Controls, circuit.Fixed(math.Pi))}
	for j := k - 1; j >= 0; j-- {
		angle := math.Pi / math.Pow(2, float64(k-j))
		out = append(out, circuit.NewRz(circuit.Fixed(angle), g.Controls[j], g.Controls[:j]...))
	}
	return out, true
}

// halfAngle returns W and W^dagger with W*W equal to the rotation g applies.
func halfAngle(g circuit.Gate) (kind circuit.Kind, w, wdg circuit.Parameter, ok bool) {
	switch g.Kind {
	case circuit.Rx, circuit.Ry, circuit.Rz:
		return g.Kind, circuit.Scale(g.Param, 0.5), circuit.Scale(g.Param, -0.5), true
	case circuit.V:
		return circuit.Rx, circuit.Fixed(math.Pi / 4), circuit.Fixed(-math.Pi / 4), true
	case circuit.Vdg:
		return circuit.Rx, circuit.Fixed(-math.Pi / 4), circuit.Fixed(math.Pi / 4), true
	}
	return 0, circuit.Parameter{}, circuit.Parameter{}, false
}

// squareRootLadder peels one control off a multi-controlled rotation:
// C^n U = C(c_n, W) C^{n-1}X(c_n) C(c_n, W^dagger) C^{n-1}X(c_n) C^{n-1}W with W*W = U.
func squareRootLadder(g circuit.Gate) ([]circuit.Gate, bool) {
	if len(g.Controls) < 2 || !single(g) {
		return nil, false
	}
	kind, w, wdg, ok := halfAngle(g)
	if !ok {
		return nil, false
	}
	n := len(g.Controls)
	rest, last := g.Controls[:n-1], g.Controls[n-1]
	t := g.Targets[0]
	return []circuit.Gate{
		circuit.NewGate(kind, []int{t}, []int{last}, w),
		circuit.NewX(last, rest...),
		circuit.NewGate(kind, []int{t}, []int{last}, wdg),
		circuit.NewX(last, rest...),
		circuit.NewGate(kind, []int{t}, rest, w),
	}, true
}

// expandControlledRotation removes the control of a singly controlled rotation
// with two CX and two half-angle rotations. X P(a) X = P(-a) for P in {Y, Z}.
func expandControlledRotation(g circuit.Gate) ([]circuit.Gate, bool) {
	if len(g.Controls) != 1 || !g.Kind.Parametrized() || !single(g) {
		return nil, false
	}
	c, t := g.Controls[0], g.Targets[0]
	kind := g.Kind
	if kind == circuit.Rx {
		kind = circuit.Rz
	}
	body := []circuit.Gate{
		circuit.NewGate(kind, []int{t}, nil, circuit.Scale(g.Param, 0.5)),
		circuit.NewCX(c, t),
		circuit.NewGate(kind, []int{t}, nil, circuit.Scale(g.Param, -0.5)),
		circuit.NewCX(c, t),
	}
	if g.Kind != circuit.Rx {
		return body, true
	}
	out := append([]circuit.Gate{circuit.NewH(t)}, body...)
	return append(out, circuit.NewH(t)), true
}

// expandCH rotates a CZ onto the Hadamard axis.
func expandCH(g circuit.Gate) ([]circuit.Gate, bool) {
	if g.Kind != circuit.H || len(g.Controls) != 1 || !single(g) {
		return nil, false
	}
	t := g.Targets[0]
	return []circuit.Gate{
		circuit.NewRy(circuit.Fixed(-math.Pi/4), t),
		circuit.NewZ(t, g.Controls...),
		circuit.NewRy(circuit.Fixed(math.Pi/4), t),
	}, true
}

func expandV(g circuit.Gate) ([]circuit.Gate, bool) {
	if !single(g) {
		return nil, false
	}
	switch g.Kind {
	case circuit.V:
		return []circuit.Gate{circuit.NewRx(circuit.Fixed(math.Pi/2), g.Targets[0], g.Controls...)}, true
	case circuit.Vdg:
		return []circuit.Gate{circuit.NewRx(circuit.Fixed(-math.Pi/2), g.Targets[0], g.Controls...)}, true
	}
	return nil, false
}

// conjugateZ writes a Y-axis gate as Rz(-pi/2) G_x Rz(pi/2).
func conjugateZ(t int, mid circuit.Gate) []circuit.Gate {
	return []circuit.Gate{
		circuit.NewRz(circuit.Fixed(-math.Pi/2), t),
		mid,
		circuit.NewRz(circuit.Fixed(math.Pi/2), t),
	}
}

func expandRy(g circuit.Gate) ([]circuit.Gate, bool) {
	if g.Kind != circuit.Ry || !single(g) {
		return nil, false
	}
	t := g.Targets[0]
	return conjugateZ(t, circuit.NewRx(g.Param, t, g.Controls...)), true
}

func expandY(g circuit.Gate) ([]circuit.Gate, bool) {
	if g.Kind != circuit.Y || !single(g) {
		return nil, false
	}
	t := g.Targets[0]
	return conjugateZ(t, circuit.NewX(t, g.Controls...)), true
}
