//go:build !nodevice

package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyseRouted(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/api/analyse", circuitRequest{QASM: farCX}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	unrouted := decode[analyseResponse](t, rec)

	rec = do(t, s, http.MethodPost, "/api/analyse", circuitRequest{QASM: farCX, Architecture: "line"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	routed := decode[analyseResponse](t, rec)

	assert.Equal(t, "line", routed.Architecture)
	assert.Empty(t, routed.Info)
	assert.Equal(t, 2, unrouted.Report.GateCount)
	assert.Equal(t, 5, routed.Report.GateCount)
	assert.NotEqual(t, unrouted.ID, routed.ID)
}

func TestConvert(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/convert", circuitRequest{QASM: rxcx}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[convertResponse](t, rec)
	assert.Equal(t, 2, resp.Qubits)
	assert.Len(t, resp.Commands, 2)
	assert.Equal(t, map[string]string{"a": "a"}, resp.Symbols)
	assert.Contains(t, resp.QASM, "rx(a) q[0];")
	assert.Contains(t, resp.QASM, "cx q[0], q[1];")
}

func TestConvertUnsupported(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/convert",
		circuitRequest{QASM: "qreg q[4];\ncccx q[0], q[1], q[2], q[3];"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "control count")
}

func TestRoute(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/api/route", circuitRequest{QASM: farCX, Architecture: "line", Qubits: 3}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[routeResponse](t, rec)
	assert.Equal(t, 1, resp.Swaps)
	assert.Equal(t, 1, resp.Final[0])
	assert.Equal(t, []int{0, 1, 2}, resp.Nodes)
	assert.Contains(t, resp.QASM, "cx q[0], q[1];")

	rec = do(t, s, http.MethodPost, "/api/route", circuitRequest{QASM: farCX}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyseTooFewNodes(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/analyse",
		circuitRequest{QASM: "qreg q[6];\ncx q[0], q[5];", Architecture: "ourense"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}
