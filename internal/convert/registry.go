package convert

import (
	"fmt"

	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

// forward lists, per source kind, the destination command for 0, 1, 2...
// controls. The slice length minus one is the maximum control count.
var forward = map[circuit.Kind][]device.OpType{
	circuit.I:    {device.Noop},
	circuit.X:    {device.X, device.CX, device.CCX},
	circuit.Y:    {device.Y, device.CY},
	circuit.Z:    {device.Z, device.CZ},
	circuit.H:    {device.H, device.CH},
	circuit.Rx:   {device.Rx, device.CRx},
	circuit.Ry:   {device.Ry, device.CRy},
	circuit.Rz:   {device.Rz, device.CRz},
	circuit.SWAP: {device.SWAP, device.CSWAP},
	circuit.V:    {device.V, device.CV},
	circuit.Vdg:  {device.Vdg, device.CVdg},
}

type reverseEntry struct {
	kind     circuit.Kind
	controls int
}

var reverse = map[device.OpType]reverseEntry{
	device.Noop:  {circuit.I, 0},
	device.X:     {circuit.X, 0},
	device.CX:    {circuit.X, 1},
	device.CCX:   {circuit.X, 2},
	device.Y:     {circuit.Y, 0},
	device.CY:    {circuit.Y, 1},
	device.Z:     {circuit.Z, 0},
	device.CZ:    {circuit.Z, 1},
	device.H:     {circuit.H, 0},
	device.CH:    {circuit.H, 1},
	device.Rx:    {circuit.Rx, 0},
	device.CRx:   {circuit.Rx, 1},
	device.Ry:    {circuit.Ry, 0},
	device.CRy:   {circuit.Ry, 1},
	device.Rz:    {circuit.Rz, 0},
	device.CRz:   {circuit.Rz, 1},
	device.SWAP:  {circuit.SWAP, 0},
	device.CSWAP: {circuit.SWAP, 1},
	device.V:     {circuit.V, 0},
	device.CV:    {circuit.V, 1},
	device.Vdg:   {circuit.Vdg, 0},
	device.CVdg:  {circuit.Vdg, 1},
}

// MaxControls returns the largest control count the destination supports for
// kind, and false when the kind cannot be converted at all.
func MaxControls(kind circuit.Kind) (int, bool) {
	ops, ok := forward[kind]
	if !ok {
		return 0, false
	}
	return len(ops) - 1, true
}

// Lookup returns the destination command type for g. A SWAP's two targets
// form its single operand; every other kind must have exactly one target.
func Lookup(g circuit.Gate) (device.OpType, error) {
	if len(g.Targets) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingTarget, g.Kind)
	}
	if len(g.Targets) != g.Kind.TargetCount() {
		return 0, fmt.Errorf("%w: %s has %d targets", ErrUnsupportedMultiTarget, g.Kind, len(g.Targets))
	}
	ops, ok := forward[g.Kind]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedGate, g.Kind)
	}
	if n := len(g.Controls); n > len(ops)-1 {
		return 0, fmt.Errorf("%w: %s with %d controls, at most %d", ErrUnsupportedControlCount, g.Kind, n, len(ops)-1)
	}
	return ops[len(g.Controls)], nil
}

// Reverse returns the source kind and control count a destination command type
// decodes to.
func Reverse(op device.OpType) (circuit.Kind, int, error) {
	e, ok := reverse[op]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedGate, op)
	}
	return e.kind, e.controls, nil
}
