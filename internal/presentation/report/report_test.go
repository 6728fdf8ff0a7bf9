package report_test

import (
	"testing"

	"github.com/aretw0/lattice/internal/presentation/report"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestModel_RendersSections(t *testing.T) {
	snap := domain.Snapshot{
		Name: "robot",
		Interfaces: []domain.InterfaceSnapshot{
			{
				Name:         "SimulatedArm",
				Instantiable: true,
				Ports: []domain.Port{
					domain.In("command_in", "JointsCommand"),
				},
				Refinements: []domain.RefinementSnapshot{
					{Base: "Joints", Mapping: domain.PortMapping{"command_in": "command_in"}},
				},
			},
		},
		Composites: []domain.CompositeSnapshot{
			{
				Name:  "control_loop",
				Slots: []domain.ChildSlot{{Name: "controller", Requires: "Controller"}},
				Specializations: []domain.SpecializationSnapshot{
					{
						Bindings: map[string]string{"controller": "JointsController"},
						Connections: []domain.ConnectionEdge{
							{FromChild: "controller", FromPort: "command_out", ToChild: "controlled_system", ToPort: "command_in"},
						},
						Provides: []string{"Joints"},
					},
				},
			},
		},
	}

	md := report.Model(snap)

	assert.Contains(t, md, "# Model: robot")
	assert.Contains(t, md, "### SimulatedArm `instantiable`")
	assert.Contains(t, md, "| command_in | input | JointsCommand |")
	assert.Contains(t, md, "- fulfills **Joints** (command_in->command_in)")
	assert.Contains(t, md, "- slot **controller** requires Controller")
	assert.Contains(t, md, "- binds controller = JointsController")
	assert.Contains(t, md, "- connects controller.command_out -> controlled_system.command_in")
	assert.Contains(t, md, "- provides Joints")
}

func TestInterface_OmitsInstantiableMarker(t *testing.T) {
	md := report.Interface(domain.InterfaceSnapshot{Name: "Controller"})
	assert.Contains(t, md, "### Controller\n")
	assert.NotContains(t, md, "`instantiable`")
}
