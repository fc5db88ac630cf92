package convert

import (
	"fmt"
	"math"

	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

// VariableMap binds source variable identifiers to destination symbols for a
// single conversion. Every reuse of an identifier yields the same symbol.
type VariableMap map[string]*device.Symbol

// symbol returns the symbol bound to id, creating it in dc on first use.
func (vm VariableMap) symbol(dc *device.Circuit, id string) *device.Symbol {
	if s, ok := vm[id]; ok {
		return s
	}
	s := dc.FreshSymbol(id)
	vm[id] = s
	return s
}

// resolveParam converts a source angle in radians to a destination parameter
// in half-turns, or to a symbol for variables.
func resolveParam(p circuit.Parameter, dc *device.Circuit, vm VariableMap) (device.Param, error) {
	switch p.Form {
	case circuit.ParamFixed:
		return device.Value(p.Value / math.Pi), nil
	case circuit.ParamNamed:
		return device.Sym(vm.symbol(dc, p.Name)), nil
	case circuit.ParamExpression:
		if len(p.Free) != 1 {
			return device.Param{}, fmt.Errorf("%w: %q has %d", ErrAmbiguousParameterExpression, p.Text, len(p.Free))
		}
		return device.Sym(vm.symbol(dc, p.Free[0])), nil
	}
	return device.Param{}, fmt.Errorf("%w: %s", ErrUnsupportedParameterRepresentation, p.Form)
}

// unresolveParams converts the parameters of a destination command back to a
// source parameter.
func unresolveParams(params []device.Param) (circuit.Parameter, error) {
	switch len(params) {
	case 0:
		return circuit.Parameter{}, nil
	case 1:
	default:
		return circuit.Parameter{}, fmt.Errorf("%w: got %d", ErrUnsupportedParameterCount, len(params))
	}
	if s := params[0].Symbol; s != nil {
		return circuit.Named(s.Name()), nil
	}
	return circuit.Fixed(params[0].Value * math.Pi), nil
}
