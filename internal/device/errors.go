package device

import "errors"

var (
	// ErrCapabilityMissing is returned when the binary was built without the
	// destination representation (build tag nodevice).
	ErrCapabilityMissing = errors.New("device: destination representation not available")

	// ErrUnroutable is returned for commands the mapping pass cannot place on
	// the connectivity graph.
	ErrUnroutable = errors.New("device: command cannot be routed")

	// ErrInsufficientNodes is returned when a circuit needs more qubits than the
	// architecture has nodes.
	ErrInsufficientNodes = errors.New("device: architecture has too few nodes")
)
