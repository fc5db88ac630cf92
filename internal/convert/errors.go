package convert

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedGate                    = errors.New("convert: unsupported gate")
	ErrUnsupportedControlCount            = errors.New("convert: unsupported control count")
	ErrUnsupportedMultiTarget             = errors.New("convert: only single target gates are supported")
	ErrMissingTarget                      = errors.New("convert: gate has no target")
	ErrAmbiguousParameterExpression       = errors.New("convert: parameter expression must have exactly one free variable")
	ErrUnsupportedParameterRepresentation = errors.New("convert: unsupported parameter representation")
	ErrUnsupportedParameterCount          = errors.New("convert: only single or no parameter gates are supported")
	ErrMalformedCommand                   = errors.New("convert: malformed command")
)

// GateError reports the position of the gate or command a conversion stopped at.
type GateError struct {
	Index int
	Gate  string
	Err   error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("gate %d (%s): %v", e.Index, e.Gate, e.Err)
}

func (e *GateError) Unwrap() error { return e.Err }
