package device

import "fmt"

// OpType tags a destination command.
type OpType int

const (
	Noop OpType = iota
	X
	CX
	CCX
	Y
	CY
	Z
	CZ
	H
	CH
	Rx
	CRx
	Ry
	CRy
	Rz
	CRz
	SWAP
	CSWAP
	V
	CV
	Vdg
	CVdg
)

type opInfo struct {
	name   string
	arity  int
	params int
}

var opTable = [...]opInfo{
	Noop:  {"Noop", 1, 0},
	X:     {"X", 1, 0},
	CX:    {"CX", 2, 0},
	CCX:   {"CCX", 3, 0},
	Y:     {"Y", 1, 0},
	CY:    {"CY", 2, 0},
	Z:     {"Z", 1, 0},
	CZ:    {"CZ", 2, 0},
	H:     {"H", 1, 0},
	CH:    {"CH", 2, 0},
	Rx:    {"Rx", 1, 1},
	CRx:   {"CRx", 2, 1},
	Ry:    {"Ry", 1, 1},
	CRy:   {"CRy", 2, 1},
	Rz:    {"Rz", 1, 1},
	CRz:   {"CRz", 2, 1},
	SWAP:  {"SWAP", 2, 0},
	CSWAP: {"CSWAP", 3, 0},
	V:     {"V", 1, 0},
	CV:    {"CV", 2, 0},
	Vdg:   {"Vdg", 1, 0},
	CVdg:  {"CVdg", 2, 0},
}

// Known reports whether t is one of the declared command types.
func (t OpType) Known() bool {
	return t >= 0 && int(t) < len(opTable)
}

func (t OpType) String() string {
	if !t.Known() {
		return fmt.Sprintf("OpType(%d)", int(t))
	}
	return opTable[t].name
}

// Arity is the number of qubit arguments a command of this type takes.
func (t OpType) Arity() int {
	if !t.Known() {
		return 0
	}
	return opTable[t].arity
}

// ParamCount is the number of parameters a command of this type takes.
func (t OpType) ParamCount() int {
	if !t.Known() {
		return 0
	}
	return opTable[t].params
}
