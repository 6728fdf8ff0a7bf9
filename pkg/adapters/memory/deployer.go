package memory

import (
	"context"
	"sync"

	"github.com/aretw0/lattice/pkg/composite"
)

// Deployer implements ports.Deployer by recording instances instead of
// standing up components. It is the stand-in deployment engine for tests
// and dry runs.
type Deployer struct {
	mu       sync.Mutex
	deployed []*composite.Instance
}

// NewDeployer creates an empty recording deployer.
func NewDeployer() *Deployer {
	return &Deployer{}
}

// Deploy records the instance.
func (d *Deployer) Deploy(ctx context.Context, inst *composite.Instance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deployed = append(d.deployed, inst)
	return nil
}

// Deployed returns the recorded instances in deployment order.
func (d *Deployer) Deployed() []*composite.Instance {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*composite.Instance, len(d.deployed))
	copy(out, d.deployed)
	return out
}
