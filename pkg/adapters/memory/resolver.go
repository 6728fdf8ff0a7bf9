package memory

import (
	"sort"
	"sync"

	"github.com/aretw0/lattice/pkg/domain"
)

// Resolver implements ports.TypeResolver with a simple registration map.
// Identifiers are the registered names themselves, which is sufficient for
// a single-process model build.
type Resolver struct {
	mu    sync.RWMutex
	types map[string]domain.PayloadType
}

// NewResolver creates a resolver pre-registered with the given type names.
func NewResolver(names ...string) *Resolver {
	r := &Resolver{types: make(map[string]domain.PayloadType, len(names))}
	for _, name := range names {
		r.types[name] = domain.PayloadType(name)
	}
	return r
}

// Register adds a payload-type name. Re-registering is a no-op.
func (r *Resolver) Register(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = domain.PayloadType(name)
}

// Resolve returns the stable identifier for name.
func (r *Resolver) Resolve(name string) (domain.PayloadType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Known returns all registered type names, sorted.
func (r *Resolver) Known() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
