package circuit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrQASM is returned for QASM input outside the supported subset.
var ErrQASM = errors.New("circuit: unsupported qasm")

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]\s*;?$`)
	gateRegex    = regexp.MustCompile(`^([a-z]+)\s*(?:\((.*)\))?\s+(\w+\s*\[\s*\d+\s*\](?:\s*,\s*\w+\s*\[\s*\d+\s*\])*)\s*;?$`)
	operandRegex = regexp.MustCompile(`(\w+)\s*\[\s*(\d+)\s*\]`)
)

// qasmNames maps base (uncontrolled) QASM gate names to kinds. Controlled
// forms prepend one "c" per control: cx, ccx, crz, cswap, csx.
var qasmNames = map[string]Kind{
	"id":   I,
	"x":    X,
	"y":    Y,
	"z":    Z,
	"h":    H,
	"rx":   Rx,
	"ry":   Ry,
	"rz":   Rz,
	"swap": SWAP,
	"sx":   V,
	"sxdg": Vdg,
}

var kindQASM = func() map[Kind]string {
	m := make(map[Kind]string, len(qasmNames))
	for name, k := range qasmNames {
		m[k] = name
	}
	return m
}()

// QASM renders the circuit as OpenQASM 2.0. Multi-target gates other than SWAP
// are written as one line per target, which is equivalent since the targets
// share the same controls.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(c.qubits, 1))

	for _, g := range c.gates {
		name := strings.Repeat("c", len(g.Controls)) + kindQASM[g.Kind]
		if g.Parametrized() {
			name += "(" + g.Param.String() + ")"
		}
		groups := [][]int{g.Targets}
		if g.Kind != SWAP && len(g.Targets) > 1 {
			groups = groups[:0]
			for _, t := range g.Targets {
				groups = append(groups, []int{t})
			}
		}
		for _, targets := range groups {
			operands := make([]string, 0, len(g.Controls)+len(targets))
			for _, q := range append(append([]int{}, g.Controls...), targets...) {
				operands = append(operands, fmt.Sprintf("q[%d]", q))
			}
			fmt.Fprintf(&sb, "%s %s;\n", name, strings.Join(operands, ", "))
		}
	}
	return sb.String()
}

// register is a declared qreg mapped onto the flat qubit index space.
type register struct {
	offset, size int
}

// ParseQASM parses QASM text into a circuit. Several quantum registers are
// concatenated in declaration order. Classical registers, barriers and
// measurements carry no unitary content and are skipped.
func ParseQASM(qasm string) (*Circuit, error) {
	regs := make(map[string]register)
	numQubits := 0
	var gates []Gate

	for lineNo, raw := range strings.Split(qasm, "\n") {
		line := strings.TrimSpace(raw)
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		// Skip headers and non-unitary statements
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") || strings.HasPrefix(line, "barrier") ||
			strings.HasPrefix(line, "measure") {
			continue
		}

		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			if _, dup := regs[matches[1]]; dup {
				return nil, fmt.Errorf("line %d: %w: register %q declared twice", lineNo+1, ErrQASM, matches[1])
			}
			n, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: register size %q", lineNo+1, ErrQASM, matches[2])
			}
			regs[matches[1]] = register{offset: numQubits, size: n}
			numQubits += n
			continue
		}

		gate, err := parseGateLine(line, regs)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		gates = append(gates, gate)
	}

	c := WithQubits(numQubits, gates...)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// parseGateLine parses a single QASM gate application.
func parseGateLine(line string, regs map[string]register) (Gate, error) {
	matches := gateRegex.FindStringSubmatch(line)
	if matches == nil {
		return Gate{}, fmt.Errorf("%w: %q", ErrQASM, line)
	}
	name, paramText, operandText := matches[1], matches[2], matches[3]

	kind, controls, ok := decodeGateName(name)
	if !ok {
		return Gate{}, fmt.Errorf("%w: unknown gate %q", ErrQASM, name)
	}

	var qubits []int
	for _, op := range operandRegex.FindAllStringSubmatch(operandText, -1) {
		reg, ok := regs[op[1]]
		if !ok {
			return Gate{}, fmt.Errorf("%w: undeclared register %q", ErrQASM, op[1])
		}
		idx, err := strconv.Atoi(op[2])
		if err != nil || idx >= reg.size {
			return Gate{}, fmt.Errorf("%w: %s[%s] outside register of size %d", ErrQASM, op[1], op[2], reg.size)
		}
		qubits = append(qubits, reg.offset+idx)
	}
	targets := kind.TargetCount()
	if len(qubits) != controls+targets {
		return Gate{}, fmt.Errorf("%w: %s expects %d qubits, got %d", ErrQASM, name, controls+targets, len(qubits))
	}

	var param Parameter
	if strings.TrimSpace(paramText) != "" {
		p, err := ParseParameter(paramText)
		if err != nil {
			return Gate{}, err
		}
		param = p
	}

	return NewGate(kind, qubits[controls:], qubits[:controls], param), nil
}

// decodeGateName strips leading "c" control markers until a base gate name matches.
func decodeGateName(name string) (Kind, int, bool) {
	for n := 0; n < len(name); n++ {
		if kind, ok := qasmNames[name[n:]]; ok {
			return kind, n, true
		}
		if name[n] != 'c' {
			break
		}
	}
	return 0, 0, false
}
