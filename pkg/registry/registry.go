// Package registry implements the capability registry: named interfaces,
// their port sets, and the refinement ("fulfills") graph between them.
//
// Refinement edges form a DAG, enforced at definition time. Fulfillment
// queries are answered from a per-interface transitive closure that is
// memoized lazily and invalidated for all dependents whenever a new edge is
// inserted during the build phase. After Freeze the registry is read-only
// and safe for concurrent readers.
package registry

import (
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/domain"
)

// Interface is a named capability contract: a set of typed, directional
// ports plus refinement edges to the interfaces it fulfills.
type Interface struct {
	name         string
	ports        map[string]domain.Port
	edges        []refinement
	instantiable bool

	// closure maps every (transitively) fulfilled base name to the
	// composed port mapping base-port -> own-port. nil means "not yet
	// computed"; it never includes the interface itself.
	closure map[string]domain.PortMapping
}

type refinement struct {
	base    string
	mapping domain.PortMapping // base port name -> own port name
}

// Name returns the interface name.
func (i *Interface) Name() string { return i.name }

// Instantiable reports whether the author designated this interface as
// directly realizable by a concrete component. Only instantiable interfaces
// can resolve a child slot without an explicit request binding.
func (i *Interface) Instantiable() bool { return i.instantiable }

// Ports returns the interface's ports sorted by name.
func (i *Interface) Ports() []domain.Port {
	out := make([]domain.Port, 0, len(i.ports))
	for _, p := range i.ports {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Port looks up a port by name.
func (i *Interface) Port(name string) (domain.Port, bool) {
	p, ok := i.ports[name]
	return p, ok
}

// Registry stores capability interfaces and answers fulfillment queries.
// It is not safe for concurrent mutation; the build phase is single-threaded
// by design. Once frozen it is immutable and freely shareable.
type Registry struct {
	interfaces map[string]*Interface
	hooks      domain.BuildHooks
	frozen     bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		interfaces: make(map[string]*Interface),
		hooks:      domain.NopHooks{},
	}
}

// SetHooks installs build hooks. Must be called before any declarations.
func (r *Registry) SetHooks(h domain.BuildHooks) {
	if h != nil {
		r.hooks = h
	}
}

// Define registers a new interface with the given ports.
// Returns domain.ErrDuplicateName if the name is already taken.
func (r *Registry) Define(name string, ports ...domain.Port) (*Interface, error) {
	const op = "registry.Define"
	if r.frozen {
		return nil, domain.NewBuildError(op, name, domain.ErrFrozen)
	}
	if _, exists := r.interfaces[name]; exists {
		return nil, domain.NewBuildError(op, name, domain.ErrDuplicateName)
	}

	iface := &Interface{
		name:  name,
		ports: make(map[string]domain.Port, len(ports)),
	}
	for _, p := range ports {
		if _, dup := iface.ports[p.Name]; dup {
			return nil, domain.NewBuildError(op, name,
				fmt.Errorf("port %q declared twice: %w", p.Name, domain.ErrIncompatiblePort))
		}
		iface.ports[p.Name] = p
	}

	r.interfaces[name] = iface
	r.hooks.OnInterfaceDefined(name)
	return iface, nil
}

// MarkInstantiable designates iface as realizable by a concrete component.
// Build-phase only.
func (r *Registry) MarkInstantiable(iface *Interface) error {
	if r.frozen {
		return domain.NewBuildError("registry.MarkInstantiable", iface.name, domain.ErrFrozen)
	}
	iface.instantiable = true
	return nil
}

// Lookup resolves an interface by name.
func (r *Registry) Lookup(name string) (*Interface, error) {
	iface, ok := r.interfaces[name]
	if !ok {
		return nil, domain.NewBuildError("registry.Lookup", name, domain.ErrUnknownInterface)
	}
	return iface, nil
}

// Names returns all defined interface names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.interfaces))
	for n := range r.interfaces {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Extend declares that anything implementing iface also satisfies base.
// The mapping must cover every port of base with a port of iface of matching
// direction and payload type (domain.ErrIncompatiblePort otherwise). An edge
// that would close a cycle is rejected immediately with
// domain.ErrCyclicRefinement; the check runs at definition time, not at
// query time.
func (r *Registry) Extend(iface, base *Interface, mapping domain.PortMapping) error {
	const op = "registry.Extend"
	if r.frozen {
		return domain.NewBuildError(op, iface.name, domain.ErrFrozen)
	}

	if iface == base || iface.name == base.name {
		return domain.NewBuildError(op, iface.name, domain.ErrCyclicRefinement)
	}
	// base must not already reach iface.
	if r.Fulfills(base, iface) {
		return &domain.BuildError{Op: op, Model: iface.name,
			Err: fmt.Errorf("%q already fulfills %q: %w", base.name, iface.name, domain.ErrCyclicRefinement)}
	}

	if err := checkMapping(iface, base, mapping); err != nil {
		return &domain.BuildError{Op: op, Model: iface.name, Err: err}
	}

	iface.edges = append(iface.edges, refinement{base: base.name, mapping: mapping})
	r.invalidate(iface.name)
	r.hooks.OnRefinementAdded(iface.name, base.name)
	return nil
}

// checkMapping verifies that mapping is a total function from base's ports
// to iface's ports preserving direction and payload type.
func checkMapping(iface, base *Interface, mapping domain.PortMapping) error {
	for name, basePort := range base.ports {
		ownName, ok := mapping[name]
		if !ok {
			return fmt.Errorf("mapping misses base port %q: %w", name, domain.ErrIncompatiblePort)
		}
		ownPort, ok := iface.ports[ownName]
		if !ok {
			return fmt.Errorf("mapping targets unknown port %q: %w", ownName, domain.ErrIncompatiblePort)
		}
		if !ownPort.Compatible(basePort) {
			return fmt.Errorf("port %q does not match base port %q (%s %s vs %s %s): %w",
				ownName, name, ownPort.Direction, ownPort.Type, basePort.Direction, basePort.Type,
				domain.ErrIncompatiblePort)
		}
	}
	for name := range mapping {
		if _, ok := base.ports[name]; !ok {
			return fmt.Errorf("mapping names unknown base port %q: %w", name, domain.ErrIncompatiblePort)
		}
	}
	return nil
}

// invalidate drops the cached closure of changed and of every interface
// whose closure reaches changed. During the single-threaded build phase this
// is the only cache mutation.
func (r *Registry) invalidate(changed string) {
	for _, iface := range r.interfaces {
		if iface.name == changed {
			iface.closure = nil
			continue
		}
		if iface.closure != nil {
			if _, dependent := iface.closure[changed]; dependent {
				iface.closure = nil
			}
		}
	}
}

// Fulfills reports whether a == b or a path of refinement edges with
// composable port mappings connects a to b.
func (r *Registry) Fulfills(a, b *Interface) bool {
	if a == nil || b == nil {
		return false
	}
	if a.name == b.name {
		r.hooks.OnFulfillsQuery(true)
		return true
	}
	r.hooks.OnFulfillsQuery(a.closure != nil)
	_, ok := r.closureOf(a)[b.name]
	return ok
}

// FulfillsName is Fulfills over interface names. Unknown names never fulfill
// anything.
func (r *Registry) FulfillsName(a, b string) bool {
	ia, oka := r.interfaces[a]
	ib, okb := r.interfaces[b]
	return oka && okb && r.Fulfills(ia, ib)
}

// MappingTo returns the composed port mapping (base port -> a's port) for a
// fulfilled base. For a == base it returns the identity mapping over a's
// ports. The second result is false when a does not fulfill base.
func (r *Registry) MappingTo(a, base *Interface) (domain.PortMapping, bool) {
	if a.name == base.name {
		id := make(domain.PortMapping, len(a.ports))
		for name := range a.ports {
			id[name] = name
		}
		return id, true
	}
	m, ok := r.closureOf(a)[base.name]
	return m, ok
}

// closureOf returns the memoized transitive closure of iface, computing it
// on demand. Composition: if iface reaches mid with m1 (mid->iface ports)
// and mid reaches base with m2 (base->mid ports), then iface reaches base
// with m1 ∘ m2.
func (r *Registry) closureOf(iface *Interface) map[string]domain.PortMapping {
	if iface.closure != nil {
		return iface.closure
	}
	closure := make(map[string]domain.PortMapping)
	for _, edge := range iface.edges {
		if _, seen := closure[edge.base]; !seen {
			closure[edge.base] = edge.mapping
		}
		baseIface, ok := r.interfaces[edge.base]
		if !ok {
			continue
		}
		for transitive, baseMapping := range r.closureOf(baseIface) {
			if _, seen := closure[transitive]; seen {
				continue
			}
			composed := make(domain.PortMapping, len(baseMapping))
			for basePort, midPort := range baseMapping {
				composed[basePort] = edge.mapping[midPort]
			}
			closure[transitive] = composed
		}
	}
	// Cache during build too; invalidate() clears dependents on edge insert.
	iface.closure = closure
	return closure
}

// Freeze ends the build phase. It materializes every closure so that frozen
// registries answer queries without mutating shared state, then flips the
// registry read-only.
func (r *Registry) Freeze() {
	if r.frozen {
		return
	}
	for _, iface := range r.interfaces {
		r.closureOf(iface)
	}
	r.frozen = true
}

// Frozen reports whether the build phase has ended.
func (r *Registry) Frozen() bool { return r.frozen }

// Snapshot exports every interface in serializable form, sorted by name.
func (r *Registry) Snapshot() []domain.InterfaceSnapshot {
	out := make([]domain.InterfaceSnapshot, 0, len(r.interfaces))
	for _, name := range r.Names() {
		iface := r.interfaces[name]
		snap := domain.InterfaceSnapshot{
			Name:         iface.name,
			Ports:        iface.Ports(),
			Instantiable: iface.instantiable,
		}
		for _, edge := range iface.edges {
			snap.Refinements = append(snap.Refinements, domain.RefinementSnapshot{
				Base:    edge.base,
				Mapping: edge.mapping,
			})
		}
		out = append(out, snap)
	}
	return out
}
