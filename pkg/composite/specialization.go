package composite

import (
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
)

// Body carries the declarative payload of a specialization beyond its slot
// bindings: composite-level exported ports, internal connections between
// children, and extra interfaces the specialized composite provides as a
// whole.
type Body struct {
	Exports     []domain.ExportedPort
	Provides    []string
	Connections []domain.ConnectionEdge
}

// Specialization is a partial binding of a composite's child slots to
// concrete interfaces, plus the Body it was declared with. Immutable after
// acceptance.
type Specialization struct {
	composite *Composite
	index     int

	bindings    map[string]*registry.Interface
	exports     []domain.ExportedPort
	provides    []string
	connections []domain.ConnectionEdge
}

// Binding returns the interface bound to the given slot, if any.
func (s *Specialization) Binding(slot string) (*registry.Interface, bool) {
	iface, ok := s.bindings[slot]
	return iface, ok
}

// BoundSlots returns the names of the slots this specialization binds,
// sorted.
func (s *Specialization) BoundSlots() []string {
	out := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Provides returns the extra interfaces the specialized composite offers.
func (s *Specialization) Provides() []string {
	return append([]string(nil), s.provides...)
}

// Exports returns the composite-level exported ports.
func (s *Specialization) Exports() []domain.ExportedPort {
	return append([]domain.ExportedPort(nil), s.exports...)
}

// Connections returns the internal connection edges.
func (s *Specialization) Connections() []domain.ConnectionEdge {
	return append([]domain.ConnectionEdge(nil), s.connections...)
}

// portOf resolves a (child, port) endpoint against this specialization's
// bindings.
func (s *Specialization) portOf(child, port string) (domain.Port, error) {
	iface, ok := s.bindings[child]
	if !ok {
		return domain.Port{}, fmt.Errorf("child %q not bound: %w", child, domain.ErrUnknownSlot)
	}
	p, ok := iface.Port(port)
	if !ok {
		return domain.Port{}, fmt.Errorf("interface %q has no port %q: %w",
			iface.Name(), port, domain.ErrIncompatiblePort)
	}
	return p, nil
}

// Snapshot exports the specialization in serializable form.
func (s *Specialization) Snapshot() domain.SpecializationSnapshot {
	snap := domain.SpecializationSnapshot{
		Bindings:    make(map[string]string, len(s.bindings)),
		Exports:     s.Exports(),
		Provides:    s.Provides(),
		Connections: s.Connections(),
	}
	for slot, iface := range s.bindings {
		snap.Bindings[slot] = iface.Name()
	}
	return snap
}
