package ports

import (
	"context"

	"github.com/aretw0/lattice/pkg/composite"
)

// Deployer is the component-instantiation engine that turns a merged
// instance into live, wired components. It consumes the instance's
// ConnectionEdge list; implementing it is out of scope for Lattice.
type Deployer interface {
	Deploy(ctx context.Context, inst *composite.Instance) error
}
