package ports

import (
	"context"

	"github.com/aretw0/lattice/pkg/domain"
)

// ModelStore persists frozen workspace snapshots under a name. Snapshots
// are immutable values; Save overwrites any previous snapshot of the same
// name.
type ModelStore interface {
	// Save persists the snapshot under name.
	Save(ctx context.Context, name string, snap *domain.Snapshot) error

	// Load retrieves a snapshot. Returns domain.ErrSnapshotNotFound when
	// the name is unknown.
	Load(ctx context.Context, name string) (*domain.Snapshot, error)

	// Delete removes a snapshot. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored snapshot names, sorted.
	List(ctx context.Context) ([]string, error)
}
