package composite

import (
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
)

// Compatible reports whether two specializations of this composite may be
// merged into one instantiation.
//
// The structural default: every slot bound in both must be comparable, i.e.
// one binding fulfills the other. A shared slot failing comparability makes
// the pair incompatible regardless of user predicates. Pairs with no shared
// slot are trivially compatible. Only structurally compatible pairs are put
// before the registered predicates, which must all hold.
func (c *Composite) Compatible(s0, s1 *Specialization) bool {
	if s0.composite == c && s1.composite == c && s0.index != s1.index {
		lo, hi := s0.index, s1.index
		if lo > hi {
			lo, hi = hi, lo
		}
		if cached, ok := c.compat[[2]int{lo, hi}]; ok {
			return cached
		}
	}
	return c.checkCompatible(s0, s1)
}

func (c *Composite) checkCompatible(s0, s1 *Specialization) bool {
	for slot, i0 := range s0.bindings {
		i1, shared := s1.bindings[slot]
		if !shared {
			continue
		}
		if !c.reg.Fulfills(i0, i1) && !c.reg.Fulfills(i1, i0) {
			return false
		}
	}
	for _, pred := range c.constraints {
		if !pred(s0, s1) {
			return false
		}
	}
	return true
}

// Instance is the result of merging the applicable specializations for one
// instantiation request. Connections and exports are translated onto the
// resolved interfaces' own port names, ready for a deployment engine.
type Instance struct {
	Composite   string
	Bindings    map[string]string // slot -> resolved interface name
	Connections []domain.ConnectionEdge
	Exports     []domain.ExportedPort
	Provides    []string
}

// Instantiate resolves a request (slot name -> concrete interface) against
// the accepted specializations.
//
// A specialization applies when every requested slot it binds is requested
// with an interface fulfilling the binding. If two applicable
// specializations are pairwise incompatible the instantiation fails with
// domain.ErrAmbiguousSpecialization; the caller must narrow the request.
// Otherwise the applicable set is merged: per slot the most refined bound
// interface wins (comparability excludes ties, so it is unique when it
// exists), and connections, exports and provided interfaces are unioned.
//
// A slot absent from the request can still be resolved by specialization
// bindings, but only to an interface the author marked instantiable;
// anything else leaves the slot unresolved and the instantiation fails.
func (c *Composite) Instantiate(request map[string]*registry.Interface) (*Instance, error) {
	const op = "composite.Instantiate"

	fail := func(err error) (*Instance, error) {
		c.hooks.OnInstantiation(c.name, err)
		return nil, err
	}

	for slotName, iface := range request {
		slot, ok := c.slots[slotName]
		if !ok {
			return fail(&domain.BuildError{Op: op, Model: c.name, Slot: slotName, Err: domain.ErrUnknownSlot})
		}
		required, err := c.reg.Lookup(slot.Requires)
		if err != nil {
			return fail(err)
		}
		if !c.reg.Fulfills(iface, required) {
			return fail(&domain.BuildError{Op: op, Model: c.name, Slot: slotName,
				Err: fmt.Errorf("%q does not fulfill required %q: %w",
					iface.Name(), required.Name(), domain.ErrIncompatiblePort)})
		}
	}

	applicable := make([]*Specialization, 0, len(c.specs))
	for _, s := range c.specs {
		if c.applies(s, request) {
			applicable = append(applicable, s)
		}
	}

	for a := 0; a < len(applicable); a++ {
		for b := a + 1; b < len(applicable); b++ {
			if !c.Compatible(applicable[a], applicable[b]) {
				return fail(&domain.BuildError{Op: op, Model: c.name,
					Err: fmt.Errorf("specializations %d and %d both apply: %w",
						applicable[a].index, applicable[b].index, domain.ErrAmbiguousSpecialization)})
			}
		}
	}

	resolved, err := c.resolveSlots(request, applicable)
	if err != nil {
		return fail(err)
	}

	inst := &Instance{
		Composite: c.name,
		Bindings:  make(map[string]string, len(resolved)),
	}
	for slotName, iface := range resolved {
		inst.Bindings[slotName] = iface.Name()
	}

	for _, s := range applicable {
		for _, conn := range s.connections {
			translated, terr := c.translateConnection(s, conn, resolved)
			if terr != nil {
				return fail(&domain.BuildError{Op: op, Model: c.name, Err: terr})
			}
			inst.Connections = appendConnection(inst.Connections, translated)
		}
		for _, exp := range s.exports {
			translated, terr := c.translateExport(s, exp, resolved)
			if terr != nil {
				return fail(&domain.BuildError{Op: op, Model: c.name, Slot: exp.Child, Err: terr})
			}
			inst.Exports = appendExport(inst.Exports, translated)
		}
		for _, provided := range s.provides {
			inst.Provides = appendString(inst.Provides, provided)
		}
	}
	sort.Strings(inst.Provides)

	c.hooks.OnInstantiation(c.name, nil)
	return inst, nil
}

// applies reports whether s is selected by the request: every slot s binds
// that the request also names must be requested with an interface
// fulfilling the binding.
func (c *Composite) applies(s *Specialization, request map[string]*registry.Interface) bool {
	for slot, bound := range s.bindings {
		concrete, ok := request[slot]
		if !ok {
			continue
		}
		if !c.reg.Fulfills(concrete, bound) {
			return false
		}
	}
	return true
}

// resolveSlots merges the request with the applicable bindings: per slot the
// most refined candidate, which is unique because all candidates for a slot
// are pairwise comparable once the compatibility gate has passed.
func (c *Composite) resolveSlots(request map[string]*registry.Interface, applicable []*Specialization) (map[string]*registry.Interface, error) {
	const op = "composite.Instantiate"

	resolved := make(map[string]*registry.Interface, len(c.slots))
	for slotName, iface := range request {
		resolved[slotName] = iface
	}

	for _, s := range applicable {
		for slotName, bound := range s.bindings {
			current, ok := resolved[slotName]
			if !ok {
				resolved[slotName] = bound
				continue
			}
			switch {
			case c.reg.Fulfills(current, bound):
				// current is at least as refined; keep it.
			case c.reg.Fulfills(bound, current):
				resolved[slotName] = bound
			default:
				return nil, &domain.BuildError{Op: op, Model: c.name, Slot: slotName,
					Err: fmt.Errorf("bindings %q and %q are not comparable: %w",
						current.Name(), bound.Name(), domain.ErrAmbiguousSpecialization)}
			}
		}
	}

	for slotName := range c.slots {
		iface, ok := resolved[slotName]
		if !ok {
			return nil, &domain.BuildError{Op: op, Model: c.name, Slot: slotName, Err: domain.ErrUnresolvedSlot}
		}
		if _, requested := request[slotName]; !requested && !iface.Instantiable() {
			return nil, &domain.BuildError{Op: op, Model: c.name, Slot: slotName,
				Err: fmt.Errorf("%q is not instantiable: %w", iface.Name(), domain.ErrUnresolvedSlot)}
		}
	}
	return resolved, nil
}

// translateConnection rewrites a connection declared against the
// specialization's bound interfaces onto the resolved interfaces, using the
// registry's composed port mappings.
func (c *Composite) translateConnection(s *Specialization, conn domain.ConnectionEdge, resolved map[string]*registry.Interface) (domain.ConnectionEdge, error) {
	fromPort, err := c.translatePort(s, conn.FromChild, conn.FromPort, resolved)
	if err != nil {
		return domain.ConnectionEdge{}, err
	}
	toPort, err := c.translatePort(s, conn.ToChild, conn.ToPort, resolved)
	if err != nil {
		return domain.ConnectionEdge{}, err
	}
	return domain.ConnectionEdge{
		FromChild: conn.FromChild, FromPort: fromPort,
		ToChild: conn.ToChild, ToPort: toPort,
	}, nil
}

func (c *Composite) translateExport(s *Specialization, exp domain.ExportedPort, resolved map[string]*registry.Interface) (domain.ExportedPort, error) {
	port, err := c.translatePort(s, exp.Child, exp.Port, resolved)
	if err != nil {
		return domain.ExportedPort{}, err
	}
	return domain.ExportedPort{Name: exp.Name, Child: exp.Child, Port: port}, nil
}

func (c *Composite) translatePort(s *Specialization, child, port string, resolved map[string]*registry.Interface) (string, error) {
	bound := s.bindings[child]
	concrete, ok := resolved[child]
	if !ok || bound == nil {
		return "", fmt.Errorf("child %q not resolved: %w", child, domain.ErrUnresolvedSlot)
	}
	mapping, ok := c.reg.MappingTo(concrete, bound)
	if !ok {
		return "", fmt.Errorf("%q does not fulfill %q: %w",
			concrete.Name(), bound.Name(), domain.ErrIncompatiblePort)
	}
	own, ok := mapping[port]
	if !ok {
		return "", fmt.Errorf("no mapping for port %q of %q: %w",
			port, bound.Name(), domain.ErrIncompatiblePort)
	}
	return own, nil
}

func appendConnection(list []domain.ConnectionEdge, c domain.ConnectionEdge) []domain.ConnectionEdge {
	for _, existing := range list {
		if existing == c {
			return list
		}
	}
	return append(list, c)
}

func appendExport(list []domain.ExportedPort, e domain.ExportedPort) []domain.ExportedPort {
	for _, existing := range list {
		if existing == e {
			return list
		}
	}
	return append(list, e)
}

func appendString(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
