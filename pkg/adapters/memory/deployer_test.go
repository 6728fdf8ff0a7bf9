package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Deployer = (*memory.Deployer)(nil)

func TestDeployer_RecordsInstances(t *testing.T) {
	ws, err := lattice.New("robot")
	require.NoError(t, err)
	decl, err := ws.DeclareControlLoop("Joints", "JointsCommand", nil)
	require.NoError(t, err)
	ws.Freeze()

	inst, err := ws.ControlLoop().Instantiate(map[string]*registry.Interface{
		"controller":        decl.Controller,
		"controlled_system": decl.ControlledSystem,
	})
	require.NoError(t, err)

	d := memory.NewDeployer()
	require.NoError(t, d.Deploy(context.Background(), inst))

	deployed := d.Deployed()
	require.Len(t, deployed, 1)
	assert.Equal(t, "control_loop", deployed[0].Composite)
}

func TestDeployer_HonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := memory.NewDeployer()
	err := d.Deploy(ctx, nil)
	require.Error(t, err)
	assert.Empty(t, d.Deployed())
}
