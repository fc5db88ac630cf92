package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"qanalyse/internal/analyse"
	"qanalyse/internal/arch"
	"qanalyse/internal/circuit"
	"qanalyse/internal/convert"
	"qanalyse/internal/device"
)

const (
	contentJSON    = "application/json"
	contentMsgpack = "application/msgpack"
	maxBodyBytes   = 1 << 20
)

var errBadRequest = errors.New("bad request")

type circuitRequest struct {
	QASM         string `json:"qasm" msgpack:"qasm"`
	Architecture string `json:"architecture" msgpack:"architecture"`
	Qubits       int    `json:"qubits" msgpack:"qubits"`
	Verbose      bool   `json:"verbose" msgpack:"verbose"`
}

type analyseResponse struct {
	ID           string          `json:"id" msgpack:"id"`
	Architecture string          `json:"architecture,omitempty" msgpack:"architecture,omitempty"`
	Report       *analyse.Report `json:"report" msgpack:"report"`
	Summary      string          `json:"summary" msgpack:"summary"`
	Info         string          `json:"info,omitempty" msgpack:"info,omitempty"`
}

type convertResponse struct {
	Qubits   int               `json:"qubits" msgpack:"qubits"`
	Commands []string          `json:"commands" msgpack:"commands"`
	Symbols  map[string]string `json:"symbols" msgpack:"symbols"`
	QASM     string            `json:"qasm" msgpack:"qasm"`
}

type routeResponse struct {
	ID           string           `json:"id" msgpack:"id"`
	Architecture string           `json:"architecture" msgpack:"architecture"`
	Swaps        int              `json:"swaps" msgpack:"swaps"`
	Placement    device.Placement `json:"placement" msgpack:"placement"`
	Final        device.Placement `json:"final" msgpack:"final"`
	Nodes        []int            `json:"nodes" msgpack:"nodes"`
	QASM         string           `json:"qasm" msgpack:"qasm"`
}

type architectureSummary struct {
	Name     string      `json:"name" msgpack:"name"`
	Scalable bool        `json:"scalable" msgpack:"scalable"`
	Nodes    int         `json:"nodes,omitempty" msgpack:"nodes,omitempty"`
	Edges    []arch.Edge `json:"edges,omitempty" msgpack:"edges,omitempty"`
	Degrees  map[int]int `json:"degrees,omitempty" msgpack:"degrees,omitempty"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "qanalyse",
	})
}

func (s *Server) handleArchitectures(w http.ResponseWriter, r *http.Request) {
	out := make([]architectureSummary, 0, len(arch.Names()))
	for _, name := range arch.Names() {
		sum := architectureSummary{Name: name, Scalable: arch.Scalable(name)}
		if !sum.Scalable {
			a, err := arch.Select(name, 0)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			sum.Nodes = a.NodeCount()
		}
		out = append(out, sum)
	}
	s.write(w, r, http.StatusOK, map[string]any{"architectures": out})
}

func (s *Server) handleArchitecture(w http.ResponseWriter, r *http.Request) {
	qubits := 0
	if q := r.URL.Query().Get("qubits"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: qubits %q", errBadRequest, q))
			return
		}
		qubits = n
	}

	a, err := arch.Select(chi.URLParam(r, "name"), qubits)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	degrees := make(map[int]int, a.NodeCount())
	for _, n := range a.Nodes() {
		degrees[n] = a.Degree(n)
	}
	s.write(w, r, http.StatusOK, architectureSummary{
		Name:     a.Name(),
		Scalable: arch.Scalable(a.Name()),
		Nodes:    a.NodeCount(),
		Edges:    a.Edges(),
		Degrees:  degrees,
	})
}

func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	req, c, err := s.decodeCircuit(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	a, err := s.pool.Get(req.Architecture, qubitsFor(req, c))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := a.Analyse(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := analyseResponse{
		ID:           uuid.New().String(),
		Architecture: req.Architecture,
		Report:       report,
		Summary:      report.String(),
	}
	if req.Verbose {
		resp.Info = report.Info()
	}
	s.write(w, r, http.StatusOK, resp)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.decodeCircuit(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dc, vm, err := convert.ToDestination(c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	back, err := convert.FromDestination(dc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := convertResponse{
		Qubits:   dc.Qubits(),
		Commands: make([]string, 0, dc.Len()),
		Symbols:  make(map[string]string, len(vm)),
		QASM:     back.QASM(),
	}
	for _, cmd := range dc.Commands() {
		resp.Commands = append(resp.Commands, cmd.String())
	}
	for v, sym := range vm {
		resp.Symbols[v] = sym.Name()
	}
	s.write(w, r, http.StatusOK, resp)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, c, err := s.decodeCircuit(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Architecture == "" {
		s.writeError(w, r, fmt.Errorf("%w: architecture required", errBadRequest))
		return
	}

	a, err := s.pool.Get(req.Architecture, qubitsFor(req, c))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	routed, err := a.Route(c, a.Architecture())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.write(w, r, http.StatusOK, routeResponse{
		ID:           uuid.New().String(),
		Architecture: req.Architecture,
		Swaps:        routed.Swaps,
		Placement:    routed.Placement,
		Final:        routed.Final,
		Nodes:        routed.Nodes,
		QASM:         routed.Circuit.QASM(),
	})
}

// decodeCircuit reads a circuit request in JSON or msgpack and parses its QASM.
func (s *Server) decodeCircuit(w http.ResponseWriter, r *http.Request) (*circuitRequest, *circuit.Circuit, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	var req circuitRequest
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), contentMsgpack) {
		err = msgpack.NewDecoder(body).Decode(&req)
	} else {
		err = json.NewDecoder(body).Decode(&req)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if req.Qubits < 0 || req.Qubits > arch.MaxNodes {
		return nil, nil, fmt.Errorf("%w: qubit count %d outside [0, %d]", errBadRequest, req.Qubits, arch.MaxNodes)
	}

	c, err := circuit.ParseQASM(req.QASM)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return &req, c, nil
}

// qubitsFor sizes scalable architectures to the circuit when no count is given.
func qubitsFor(req *circuitRequest, c *circuit.Circuit) int {
	if req.Qubits == 0 && req.Architecture != "" && arch.Scalable(req.Architecture) {
		return max(c.Qubits(), 1)
	}
	return req.Qubits
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, arch.ErrArchitectureNotFound):
		return http.StatusNotFound
	case errors.Is(err, device.ErrCapabilityMissing):
		return http.StatusNotImplemented
	case errors.Is(err, arch.ErrArchitectureTooSmall),
		errors.Is(err, arch.ErrArchitectureTooLarge),
		errors.Is(err, arch.ErrMissingQubitCount),
		errors.Is(err, circuit.ErrInvalidGate),
		errors.Is(err, device.ErrUnroutable),
		errors.Is(err, device.ErrInsufficientNodes):
		return http.StatusUnprocessableEntity
	}
	var ge *convert.GateError
	if errors.As(err, &ge) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	s.write(w, r, status, map[string]string{"error": err.Error()})
}

// write encodes data as msgpack when the client accepts it and JSON otherwise.
func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, data any) {
	if strings.Contains(r.Header.Get("Accept"), contentMsgpack) {
		w.Header().Set("Content-Type", contentMsgpack)
		w.WriteHeader(status)
		if err := msgpack.NewEncoder(w).Encode(data); err != nil {
			s.log.Error().Err(err).Msg("Failed to encode msgpack response")
		}
		return
	}

	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
