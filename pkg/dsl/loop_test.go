package dsl

import (
	"testing"

	"github.com/aretw0/lattice/pkg/composite"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoopFixture(t *testing.T) (*registry.Registry, *composite.Composite) {
	t.Helper()
	reg := registry.New()
	loop, err := Bootstrap(reg)
	require.NoError(t, err)
	return reg, loop
}

func TestDeclare_JointsControlLoop(t *testing.T) {
	reg, loop := newLoopFixture(t)

	decl, err := ControlLoop(reg, loop, "Joints", "JointsCommand").
		Feedback("JointsStatus").
		CommandProvider().
		Declare()
	require.NoError(t, err)

	// Controller: one command output, one status input.
	ports := decl.Controller.Ports()
	require.Len(t, ports, 2)
	assert.Equal(t, domain.Out(PortCommandOut, "JointsCommand"), ports[0])
	assert.Equal(t, domain.In(PortStatusIn, "JointsStatus"), ports[1])

	// Controlled system: one command input, one status output.
	ports = decl.ControlledSystem.Ports()
	require.Len(t, ports, 2)
	assert.Equal(t, domain.In(PortCommandIn, "JointsCommand"), ports[0])
	assert.Equal(t, domain.Out(PortStatusOut, "JointsStatus"), ports[1])

	// Both refine their abstract capabilities.
	assert.True(t, reg.FulfillsName("JointsController", CapController))
	assert.True(t, reg.FulfillsName("Joints", CapControlledSystem))
	assert.True(t, reg.FulfillsName("Joints", "JointsCommandConsumer"))
	assert.True(t, reg.FulfillsName("Joints", "JointsStatusProvider"))
	assert.True(t, reg.FulfillsName("JointsController", "JointsCommandProvider"))

	// Exactly two specializations on the loop composite.
	specs := loop.Specializations()
	require.Len(t, specs, 2)
	assert.Equal(t, []string{SlotControlledSystem}, specs[0].BoundSlots())
	assert.Equal(t, []string{SlotControlledSystem, SlotController}, specs[1].BoundSlots())
	assert.Equal(t, []string{"Joints"}, specs[0].Provides())
}

func TestDeclare_InstantiationClosesTheLoop(t *testing.T) {
	reg, loop := newLoopFixture(t)

	_, err := ControlLoop(reg, loop, "Joints", "JointsCommand").
		Feedback("JointsStatus").
		Declare()
	require.NoError(t, err)

	// Concrete component interfaces refining the generated pair.
	x, err := reg.Define("TrajectoryController",
		domain.Out("trajectory_out", "JointsCommand"),
		domain.In("joint_state_in", "JointsStatus"))
	require.NoError(t, err)
	require.NoError(t, reg.Extend(x, mustLookup(t, reg, "JointsController"), domain.PortMapping{
		PortCommandOut: "trajectory_out",
		PortStatusIn:   "joint_state_in",
	}))

	y, err := reg.Define("SimulatedArm",
		domain.In("joint_targets_in", "JointsCommand"),
		domain.Out("joint_state_out", "JointsStatus"))
	require.NoError(t, err)
	require.NoError(t, reg.Extend(y, mustLookup(t, reg, "Joints"), domain.PortMapping{
		PortCommandIn: "joint_targets_in",
		PortStatusOut: "joint_state_out",
	}))

	reg.Freeze()
	loop.Freeze()

	inst, err := loop.Instantiate(map[string]*registry.Interface{
		SlotController:       x,
		SlotControlledSystem: y,
	})
	require.NoError(t, err)

	// Exactly the two loop edges, on the concrete interfaces' own ports.
	require.Len(t, inst.Connections, 2)
	assert.Contains(t, inst.Connections, domain.ConnectionEdge{
		FromChild: SlotController, FromPort: "trajectory_out",
		ToChild: SlotControlledSystem, ToPort: "joint_targets_in",
	})
	assert.Contains(t, inst.Connections, domain.ConnectionEdge{
		FromChild: SlotControlledSystem, FromPort: "joint_state_out",
		ToChild: SlotController, ToPort: "joint_state_in",
	})

	// The open specialization applied too: the loop provides Joints and
	// exports the plant ports under their composite-level names.
	assert.Equal(t, []string{"Joints"}, inst.Provides)
	assert.Contains(t, inst.Exports, domain.ExportedPort{
		Name: PortCommandIn, Child: SlotControlledSystem, Port: "joint_targets_in",
	})
}

func TestDeclare_WithoutFeedbackSingleConnection(t *testing.T) {
	reg, loop := newLoopFixture(t)

	decl, err := ControlLoop(reg, loop, "Gripper", "GripperCommand").Declare()
	require.NoError(t, err)

	require.Len(t, decl.Controller.Ports(), 1)
	require.Len(t, decl.ControlledSystem.Ports(), 1)
	assert.Nil(t, decl.Status)
	assert.Nil(t, decl.Provider)
	require.Len(t, decl.Closed.Connections(), 1)
}

func TestDeclare_DuplicateName(t *testing.T) {
	reg, loop := newLoopFixture(t)

	_, err := ControlLoop(reg, loop, "Joints", "JointsCommand").Declare()
	require.NoError(t, err)

	_, err = ControlLoop(reg, loop, "Joints", "JointsCommand").Declare()
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestDeclare_UnknownOptionKey(t *testing.T) {
	reg, loop := newLoopFixture(t)

	_, err := Declare(reg, loop, "Joints", "JointsCommand", map[string]any{
		"feedback_type": "JointsStatus",
		"feedbck_type":  "typo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestDeclare_MapOptions(t *testing.T) {
	reg, loop := newLoopFixture(t)

	decl, err := Declare(reg, loop, "Joints", "JointsCommand", map[string]any{
		"feedback_type":    "JointsStatus",
		"command_provider": true,
	})
	require.NoError(t, err)
	assert.NotNil(t, decl.Status)
	assert.NotNil(t, decl.Provider)
}

func TestDeclare_RecursiveComposability(t *testing.T) {
	reg, loop := newLoopFixture(t)

	decl, err := ControlLoop(reg, loop, "Platform", "PlatformCommand").Declare()
	require.NoError(t, err)

	// An instantiated platform loop provides the Platform interface, so it
	// can fill any slot requiring it elsewhere.
	plant, err := reg.Define("SimPlatform", domain.In("cmd", "PlatformCommand"))
	require.NoError(t, err)
	require.NoError(t, reg.Extend(plant, decl.ControlledSystem, domain.PortMapping{PortCommandIn: "cmd"}))

	inst, err := loop.Instantiate(map[string]*registry.Interface{
		SlotController:       mustLookup(t, reg, "PlatformController"),
		SlotControlledSystem: plant,
	})
	require.NoError(t, err)

	require.Contains(t, inst.Provides, "Platform")
	assert.True(t, reg.FulfillsName("Platform", CapControlledSystem),
		"the provided interface satisfies a controlled-system slot")
}

func mustLookup(t *testing.T, reg *registry.Registry, name string) *registry.Interface {
	t.Helper()
	iface, err := reg.Lookup(name)
	require.NoError(t, err)
	return iface
}
