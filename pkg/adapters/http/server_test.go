package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/internal/logging"
	httpadapter "github.com/aretw0/lattice/pkg/adapters/http"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ws, err := lattice.New("robot")
	require.NoError(t, err)
	_, err = ws.DeclareControlLoop("Joints", "JointsCommand", map[string]any{
		"feedback_type": "JointsStatus",
	})
	require.NoError(t, err)
	ws.Freeze()

	srv := httptest.NewServer(httpadapter.NewHandler(ws, logging.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

func TestHandler_Interfaces(t *testing.T) {
	srv := newTestServer(t)

	var names []string
	status := getJSON(t, srv.URL+"/interfaces", &names)
	assert.Equal(t, 200, status)
	assert.Contains(t, names, "Joints")
	assert.Contains(t, names, "JointsController")
}

func TestHandler_InterfaceDetail(t *testing.T) {
	srv := newTestServer(t)

	var iface domain.InterfaceSnapshot
	status := getJSON(t, srv.URL+"/interfaces/JointsController", &iface)
	assert.Equal(t, 200, status)
	assert.Len(t, iface.Ports, 2)

	var errBody map[string]string
	status = getJSON(t, srv.URL+"/interfaces/Nope", &errBody)
	assert.Equal(t, 404, status)
}

func TestHandler_Fulfills(t *testing.T) {
	srv := newTestServer(t)

	var result map[string]any
	status := getJSON(t, srv.URL+"/fulfills?interface=Joints&base=ControlledSystem", &result)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, result["fulfills"])

	status = getJSON(t, srv.URL+"/fulfills?interface=ControlledSystem&base=Joints", &result)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, result["fulfills"])

	status = getJSON(t, srv.URL+"/fulfills", &result)
	assert.Equal(t, 400, status)
}

func TestHandler_Composite(t *testing.T) {
	srv := newTestServer(t)

	var comp domain.CompositeSnapshot
	status := getJSON(t, srv.URL+"/composites/control_loop", &comp)
	assert.Equal(t, 200, status)
	assert.Len(t, comp.Slots, 2)
	assert.Len(t, comp.Specializations, 2)
}
