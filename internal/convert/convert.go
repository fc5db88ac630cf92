// Package convert translates circuits between the source gate representation
// and the destination command representation used for routing.
//
// Angles are radians on the source side and half-turns on the destination
// side. Controls always precede targets in destination argument lists.
package convert

import (
	"fmt"

	"qanalyse/internal/circuit"
	"qanalyse/internal/device"
)

// ToDestination converts c gate by gate. The returned variable map binds each
// source variable to the symbol used for it in the destination circuit.
func ToDestination(c *circuit.Circuit) (*device.Circuit, VariableMap, error) {
	if !device.Available() {
		return nil, nil, device.ErrCapabilityMissing
	}

	dc := device.NewCircuit(c.Qubits())
	vm := make(VariableMap)

	for i, g := range c.Gates() {
		op, err := Lookup(g)
		if err != nil {
			return nil, nil, &GateError{Index: i, Gate: g.String(), Err: err}
		}

		var params []device.Param
		switch {
		case op.ParamCount() == 1:
			if !g.Parametrized() {
				return nil, nil, &GateError{Index: i, Gate: g.String(),
					Err: fmt.Errorf("%w: %s without angle", ErrUnsupportedParameterRepresentation, g.Kind)}
			}
			p, err := resolveParam(g.Param, dc, vm)
			if err != nil {
				return nil, nil, &GateError{Index: i, Gate: g.String(), Err: err}
			}
			params = append(params, p)
		case g.Parametrized():
			return nil, nil, &GateError{Index: i, Gate: g.String(),
				Err: fmt.Errorf("%w: %s takes no angle", ErrUnsupportedParameterRepresentation, g.Kind)}
		}

		dc.Add(op, g.Qubits(), params...)
	}

	return dc, vm, nil
}

// FromDestination converts dc back to a source circuit declaring the same
// number of qubits.
func FromDestination(dc *device.Circuit) (*circuit.Circuit, error) {
	if !device.Available() {
		return nil, device.ErrCapabilityMissing
	}

	gates := make([]circuit.Gate, 0, dc.Len())
	for i, cmd := range dc.Commands() {
		g, err := fromCommand(cmd)
		if err != nil {
			return nil, &GateError{Index: i, Gate: cmd.String(), Err: err}
		}
		gates = append(gates, g)
	}
	return circuit.WithQubits(dc.Qubits(), gates...), nil
}

func fromCommand(cmd device.Command) (circuit.Gate, error) {
	kind, controls, err := Reverse(cmd.Op)
	if err != nil {
		return circuit.Gate{}, err
	}
	param, err := unresolveParams(cmd.Params)
	if err != nil {
		return circuit.Gate{}, err
	}
	if want := cmd.Op.ParamCount(); want != len(cmd.Params) {
		return circuit.Gate{}, fmt.Errorf("%w: %s takes %d parameters, got %d", ErrMalformedCommand, cmd.Op, want, len(cmd.Params))
	}
	if want := controls + kind.TargetCount(); want != len(cmd.Args) {
		return circuit.Gate{}, fmt.Errorf("%w: %s takes %d qubits, got %d", ErrMalformedCommand, cmd.Op, want, len(cmd.Args))
	}
	return circuit.NewGate(kind, cmd.Args[controls:], cmd.Args[:controls], param), nil
}
