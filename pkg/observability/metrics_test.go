package observability_test

import (
	"testing"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric family %q not found", name)
	return 0
}

func TestMetrics_CountsBuildActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ws, err := lattice.New("robot", lattice.WithHooks(metrics))
	require.NoError(t, err)

	_, err = ws.DeclareControlLoop("Joints", "JointsCommand", map[string]any{
		"feedback_type": "JointsStatus",
	})
	require.NoError(t, err)

	// Bootstrap defines 2 interfaces, the loop declaration 4 more.
	assert.Equal(t, float64(6), counterValue(t, reg, "lattice_interfaces_defined_total"))
	// Consumer, status, two abstract-capability edges: 4 refinements.
	assert.Equal(t, float64(4), counterValue(t, reg, "lattice_refinement_edges_total"))
	// The generator registered the open and the closed specialization.
	assert.Equal(t, float64(2), counterValue(t, reg, "lattice_specializations_total"))
}

func TestMetrics_InstantiationOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ws, err := lattice.New("robot", lattice.WithHooks(metrics))
	require.NoError(t, err)
	decl, err := ws.DeclareControlLoop("Joints", "JointsCommand", nil)
	require.NoError(t, err)
	require.NoError(t, ws.MarkInstantiable(decl.ControlledSystem))
	ws.Freeze()

	_, err = ws.ControlLoop().Instantiate(nil)
	require.Error(t, err)

	assert.Equal(t, float64(1), counterValue(t, reg, "lattice_instantiations_total"))

	var found *dto.MetricFamily
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "lattice_instantiations_total" {
			found = f
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.GetMetric(), 1)
	labels := found.GetMetric()[0].GetLabel()
	values := map[string]string{}
	for _, l := range labels {
		values[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, "control_loop", values["composite"])
}
