package ports

import (
	"context"
	"testing"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunModelStoreContract verifies that a ModelStore implementation adheres to
// the interface contract. Adapter test suites call it with a fresh store.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()

	snap := &domain.Snapshot{
		Name: "robot",
		Interfaces: []domain.InterfaceSnapshot{
			{
				Name:  "Joints",
				Ports: []domain.Port{domain.In("command_in", "JointsCommand")},
				Refinements: []domain.RefinementSnapshot{
					{Base: "ControlledSystem", Mapping: domain.PortMapping{}},
				},
			},
		},
		Composites: []domain.CompositeSnapshot{
			{
				Name: "control_loop",
				Slots: []domain.ChildSlot{
					{Name: "controlled_system", Requires: "ControlledSystem"},
				},
				Specializations: []domain.SpecializationSnapshot{
					{
						Bindings: map[string]string{"controlled_system": "Joints"},
						Provides: []string{"Joints"},
					},
				},
			},
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "robot", snap))

		loaded, err := store.Load(ctx, "robot")
		require.NoError(t, err)
		assert.Equal(t, snap, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-model")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		changed := *snap
		changed.Name = "robot"
		changed.Composites = nil
		require.NoError(t, store.Save(ctx, "robot", &changed))

		loaded, err := store.Load(ctx, "robot")
		require.NoError(t, err)
		assert.Empty(t, loaded.Composites)

		// Restore for the remaining subtests.
		require.NoError(t, store.Save(ctx, "robot", snap))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "arm", snap))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "robot")
		assert.Contains(t, names, "arm")
		assert.IsIncreasing(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "arm"))
		_, err := store.Load(ctx, "arm")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

		// Deleting again is a no-op.
		require.NoError(t, store.Delete(ctx, "arm"))
	})
}
