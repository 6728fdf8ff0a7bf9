package lattice

import (
	"testing"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BootstrapsControlLoop(t *testing.T) {
	ws, err := New("robot")
	require.NoError(t, err)

	assert.True(t, ws.Registry().FulfillsName(dsl.CapController, dsl.CapController))
	loop := ws.ControlLoop()
	require.NotNil(t, loop)
	assert.Len(t, loop.Slots(), 2)
	assert.Equal(t, []string{dsl.CompositeControlLoop}, ws.Composites())
}

func TestDefineComposite_DuplicateName(t *testing.T) {
	ws, err := New("robot")
	require.NoError(t, err)

	_, err = ws.DefineComposite("platform_stack")
	require.NoError(t, err)
	_, err = ws.DefineComposite("platform_stack")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// The bootstrap composite's name is taken as well.
	_, err = ws.DefineComposite(dsl.CompositeControlLoop)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestFreeze_EndsBuildPhase(t *testing.T) {
	ws, err := New("robot")
	require.NoError(t, err)

	_, err = ws.DeclareControlLoop("Joints", "JointsCommand", nil)
	require.NoError(t, err)

	ws.Freeze()
	require.True(t, ws.Frozen())

	_, err = ws.DefineInterface("Late")
	assert.ErrorIs(t, err, domain.ErrFrozen)
	_, err = ws.DefineComposite("late")
	assert.ErrorIs(t, err, domain.ErrFrozen)

	// Freeze is idempotent.
	ws.Freeze()
}

func TestSnapshot_RoundTripsModelShape(t *testing.T) {
	ws, err := New("robot")
	require.NoError(t, err)

	_, err = ws.DeclareControlLoop("Joints", "JointsCommand", map[string]any{
		"feedback_type": "JointsStatus",
	})
	require.NoError(t, err)
	ws.Freeze()

	snap := ws.Snapshot()
	assert.Equal(t, "robot", snap.Name)

	names := make([]string, 0, len(snap.Interfaces))
	for _, iface := range snap.Interfaces {
		names = append(names, iface.Name)
	}
	assert.Contains(t, names, "Joints")
	assert.Contains(t, names, "JointsController")
	assert.Contains(t, names, dsl.CapController)

	require.Len(t, snap.Composites, 1)
	assert.Len(t, snap.Composites[0].Specializations, 2)
}
