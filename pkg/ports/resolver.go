package ports

import "github.com/aretw0/lattice/pkg/domain"

// TypeResolver resolves payload-type names to stable identifiers. The real
// type registry is an external collaborator; the model only needs the
// identifiers to be stable and comparable.
type TypeResolver interface {
	// Resolve returns the stable identifier for a payload-type name, or
	// false if the name is unknown.
	Resolve(name string) (domain.PayloadType, bool)

	// Known returns all registered type names, sorted.
	Known() []string
}
