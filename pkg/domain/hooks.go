package domain

// BuildHooks receives notifications about model construction. Implementations
// must be cheap and must not mutate the model; the primary implementation is
// the Prometheus collector in pkg/observability.
type BuildHooks interface {
	// OnInterfaceDefined fires after an interface is accepted by the registry.
	OnInterfaceDefined(name string)
	// OnRefinementAdded fires after a refinement edge is accepted.
	OnRefinementAdded(iface, base string)
	// OnFulfillsQuery fires on every fulfills lookup. cached reports whether
	// the transitive closure was already materialized for the subject.
	OnFulfillsQuery(cached bool)
	// OnSpecializationAccepted fires after a specialization is added to a
	// composite.
	OnSpecializationAccepted(composite string)
	// OnInstantiation fires after an instantiation attempt. err is nil on
	// success.
	OnInstantiation(composite string, err error)
}

// NopHooks is the default BuildHooks implementation; it does nothing.
type NopHooks struct{}

func (NopHooks) OnInterfaceDefined(string)        {}
func (NopHooks) OnRefinementAdded(string, string) {}
func (NopHooks) OnFulfillsQuery(bool)             {}
func (NopHooks) OnSpecializationAccepted(string)  {}
func (NopHooks) OnInstantiation(string, error)    {}
