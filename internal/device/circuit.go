// Package device is the hardware-oriented circuit representation used for
// qubit routing: a flat command list whose angles are stored in half-turns.
package device

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Available reports whether the destination representation was compiled in.
func Available() bool { return available }

// Symbol is a free parameter of a destination circuit. Symbols compare by
// identity; two symbols with the same name from different circuits differ.
type Symbol struct {
	name string
}

// Name returns the symbol's display name.
func (s *Symbol) Name() string { return s.name }

func (s *Symbol) String() string { return s.name }

// Param is a command parameter: a number of half-turns, or a symbol.
type Param struct {
	Value  float64
	Symbol *Symbol
}

// Value returns a numeric parameter in half-turns.
func Value(v float64) Param { return Param{Value: v} }

// Sym returns a symbolic parameter.
func Sym(s *Symbol) Param { return Param{Symbol: s} }

// Symbolic reports whether the parameter is a symbol.
func (p Param) Symbolic() bool { return p.Symbol != nil }

func (p Param) String() string {
	if p.Symbol != nil {
		return p.Symbol.name
	}
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

// Command is a single operation applied to qubit arguments.
type Command struct {
	Op     OpType
	Args   []int
	Params []Param
}

func (cmd Command) String() string {
	var sb strings.Builder
	sb.WriteString(cmd.Op.String())
	if len(cmd.Params) > 0 {
		ps := make([]string, len(cmd.Params))
		for i, p := range cmd.Params {
			ps[i] = p.String()
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(ps, ", "))
	}
	args := make([]string, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = fmt.Sprintf("q[%d]", a)
	}
	fmt.Fprintf(&sb, " %s;", strings.Join(args, ", "))
	return sb.String()
}

// Circuit is a destination circuit. Unlike the source representation it is
// built in place by Add.
type Circuit struct {
	qubits   int
	commands []Command
	symbols  map[string]*Symbol
}

// NewCircuit returns an empty circuit declaring n qubits.
func NewCircuit(n int) *Circuit {
	return &Circuit{qubits: n, symbols: make(map[string]*Symbol)}
}

// derive returns an empty circuit sharing c's symbols and width.
func (c *Circuit) derive() *Circuit {
	out := NewCircuit(c.qubits)
	for name, s := range c.symbols {
		out.symbols[name] = s
	}
	return out
}

// Add appends a command, growing the qubit count to cover its arguments.
func (c *Circuit) Add(op OpType, args []int, params ...Param) *Circuit {
	for _, a := range args {
		if a+1 > c.qubits {
			c.qubits = a + 1
		}
	}
	for _, p := range params {
		if p.Symbol != nil {
			c.symbols[p.Symbol.name] = p.Symbol
		}
	}
	c.commands = append(c.commands, Command{
		Op:     op,
		Args:   slices.Clone(args),
		Params: slices.Clone(params),
	})
	return c
}

// FreshSymbol creates a symbol whose name is unique within c. The requested
// name is used when free, otherwise a numeric suffix is appended.
func (c *Circuit) FreshSymbol(name string) *Symbol {
	candidate := name
	for i := 1; ; i++ {
		if _, taken := c.symbols[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
	s := &Symbol{name: candidate}
	c.symbols[candidate] = s
	return s
}

// Qubits returns the declared qubit count.
func (c *Circuit) Qubits() int { return c.qubits }

// Len returns the number of commands.
func (c *Circuit) Len() int { return len(c.commands) }

// Commands returns a copy of the command list.
func (c *Circuit) Commands() []Command {
	out := make([]Command, len(c.commands))
	for i, cmd := range c.commands {
		out[i] = Command{Op: cmd.Op, Args: slices.Clone(cmd.Args), Params: slices.Clone(cmd.Params)}
	}
	return out
}

// Count returns the number of commands of type op.
func (c *Circuit) Count(op OpType) int {
	n := 0
	for _, cmd := range c.commands {
		if cmd.Op == op {
			n++
		}
	}
	return n
}

func (c *Circuit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "qubits %d\n", c.qubits)
	for _, cmd := range c.commands {
		sb.WriteString(cmd.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
