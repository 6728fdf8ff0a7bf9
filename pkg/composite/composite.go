// Package composite implements the composite model and its specialization
// engine: abstract child slots, incremental specialization with pairwise
// compatibility checking, and merge-on-instantiation.
package composite

import (
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
)

// Constraint is a user-registered compatibility predicate over a pair of
// specializations. Multiple constraints combine conjunctively and should be
// symmetric in their arguments; the engine evaluates them once per pair.
type Constraint func(s0, s1 *Specialization) bool

// Composite is a template with named child slots, each requiring a
// capability interface. Specializations are added incrementally during the
// build phase; instantiation happens after freeze.
type Composite struct {
	name  string
	reg   *registry.Registry
	hooks domain.BuildHooks

	slots       map[string]domain.ChildSlot
	specs       []*Specialization
	constraints []Constraint

	// compat caches pairwise compatibility by specialization index,
	// normalized so that key[0] < key[1]. Filled on Specialize, consulted
	// on Instantiate.
	compat map[[2]int]bool

	frozen bool
}

// New creates a composite bound to the registry it resolves interfaces from.
func New(name string, reg *registry.Registry) *Composite {
	return &Composite{
		name:   name,
		reg:    reg,
		hooks:  domain.NopHooks{},
		slots:  make(map[string]domain.ChildSlot),
		compat: make(map[[2]int]bool),
	}
}

// SetHooks installs build hooks. Must be called before any declarations.
func (c *Composite) SetHooks(h domain.BuildHooks) {
	if h != nil {
		c.hooks = h
	}
}

// Name returns the composite name.
func (c *Composite) Name() string { return c.name }

// AddSlot declares an abstract child slot requiring the given capability.
// Returns domain.ErrDuplicateChild on a name collision.
func (c *Composite) AddSlot(name string, required *registry.Interface) error {
	const op = "composite.AddSlot"
	if c.frozen {
		return &domain.BuildError{Op: op, Model: c.name, Slot: name, Err: domain.ErrFrozen}
	}
	if _, exists := c.slots[name]; exists {
		return &domain.BuildError{Op: op, Model: c.name, Slot: name, Err: domain.ErrDuplicateChild}
	}
	c.slots[name] = domain.ChildSlot{Name: name, Requires: required.Name()}
	return nil
}

// Slots returns the child slots sorted by name.
func (c *Composite) Slots() []domain.ChildSlot {
	out := make([]domain.ChildSlot, 0, len(c.slots))
	for _, s := range c.slots {
		out = append(out, s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// AddConstraint registers a compatibility predicate. All registered
// predicates must hold for a pair to be compatible; evaluation
// short-circuits on the first failure.
func (c *Composite) AddConstraint(pred Constraint) error {
	if c.frozen {
		return domain.NewBuildError("composite.AddConstraint", c.name, domain.ErrFrozen)
	}
	c.constraints = append(c.constraints, pred)
	return nil
}

// Specializations returns the accepted specializations in insertion order.
func (c *Composite) Specializations() []*Specialization {
	return append([]*Specialization(nil), c.specs...)
}

// Specialize creates a specialization from a map of slot name -> interface
// and the body's exports, connections and extra provided interfaces.
//
// Structure is validated eagerly: unknown slots, bindings that do not
// fulfill the slot requirement, dangling connection or export endpoints and
// payload-type mismatches all abort the declaration. Compatibility against
// every previously accepted specialization is computed and cached here, but
// an incompatible pair is still accepted: the pair only becomes an error
// when both members apply to the same instantiation request.
func (c *Composite) Specialize(bindings map[string]*registry.Interface, body Body) (*Specialization, error) {
	const op = "composite.Specialize"
	if c.frozen {
		return nil, domain.NewBuildError(op, c.name, domain.ErrFrozen)
	}

	s := &Specialization{
		composite:   c,
		bindings:    make(map[string]*registry.Interface, len(bindings)),
		exports:     append([]domain.ExportedPort(nil), body.Exports...),
		provides:    append([]string(nil), body.Provides...),
		connections: append([]domain.ConnectionEdge(nil), body.Connections...),
	}

	for slotName, iface := range bindings {
		slot, ok := c.slots[slotName]
		if !ok {
			return nil, &domain.BuildError{Op: op, Model: c.name, Slot: slotName, Err: domain.ErrUnknownSlot}
		}
		required, err := c.reg.Lookup(slot.Requires)
		if err != nil {
			return nil, err
		}
		if !c.reg.Fulfills(iface, required) {
			return nil, &domain.BuildError{Op: op, Model: c.name, Slot: slotName,
				Err: fmt.Errorf("%q does not fulfill required %q: %w",
					iface.Name(), required.Name(), domain.ErrIncompatiblePort)}
		}
		s.bindings[slotName] = iface
	}

	for _, conn := range s.connections {
		if err := c.checkConnection(s, conn); err != nil {
			return nil, &domain.BuildError{Op: op, Model: c.name, Err: err}
		}
	}
	for _, exp := range s.exports {
		if _, err := s.portOf(exp.Child, exp.Port); err != nil {
			return nil, &domain.BuildError{Op: op, Model: c.name, Slot: exp.Child, Err: err}
		}
	}
	for _, provided := range s.provides {
		if _, err := c.reg.Lookup(provided); err != nil {
			return nil, err
		}
	}

	idx := len(c.specs)
	for prev := idx - 1; prev >= 0; prev-- {
		c.compat[[2]int{prev, idx}] = c.checkCompatible(c.specs[prev], s)
	}
	s.index = idx
	c.specs = append(c.specs, s)
	c.hooks.OnSpecializationAccepted(c.name)
	return s, nil
}

// checkConnection validates one internal edge: both endpoints bound, output
// feeding input, payload types equal.
func (c *Composite) checkConnection(s *Specialization, conn domain.ConnectionEdge) error {
	from, err := s.portOf(conn.FromChild, conn.FromPort)
	if err != nil {
		return err
	}
	to, err := s.portOf(conn.ToChild, conn.ToPort)
	if err != nil {
		return err
	}
	if from.Direction != domain.DirectionOutput || to.Direction != domain.DirectionInput {
		return fmt.Errorf("connection %s.%s -> %s.%s must go output to input: %w",
			conn.FromChild, conn.FromPort, conn.ToChild, conn.ToPort, domain.ErrIncompatiblePort)
	}
	if from.Type != to.Type {
		return fmt.Errorf("connection %s.%s -> %s.%s mixes payload types %q and %q: %w",
			conn.FromChild, conn.FromPort, conn.ToChild, conn.ToPort, from.Type, to.Type,
			domain.ErrIncompatiblePort)
	}
	return nil
}

// Freeze ends the build phase for this composite.
func (c *Composite) Freeze() { c.frozen = true }

// Snapshot exports the composite in serializable form.
func (c *Composite) Snapshot() domain.CompositeSnapshot {
	snap := domain.CompositeSnapshot{
		Name:  c.name,
		Slots: c.Slots(),
	}
	for _, s := range c.specs {
		snap.Specializations = append(snap.Specializations, s.Snapshot())
	}
	return snap
}
