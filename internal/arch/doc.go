// Package arch provides the qubit connectivity graphs of known quantum devices.
//
// What:
//
//   - Architecture wraps an undirected gonum graph whose node ids are physical
//     qubit indices, with all-pairs shortest paths computed once at construction.
//   - Select looks a device up by name (case-insensitive); Names lists the catalog.
//   - The "line" entry is parametric and is built from the requested qubit count.
//
// Routing uses Adjacent and ShortestPath; both are deterministic, ties between
// equally short paths go to the lexicographically smallest node sequence.
//
// Errors:
//
//   - ErrArchitectureNotFound: unknown name.
//   - ErrMissingQubitCount: a parametric architecture was requested without a size.
//   - ErrArchitectureTooSmall: the device has fewer nodes than the requested qubits.
package arch
