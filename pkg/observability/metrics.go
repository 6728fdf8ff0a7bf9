package observability

import (
	"errors"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements domain.BuildHooks on Prometheus counters.
type Metrics struct {
	interfacesDefined prometheus.Counter
	refinementEdges   prometheus.Counter
	fulfillsQueries   *prometheus.CounterVec
	specializations   *prometheus.CounterVec
	instantiations    *prometheus.CounterVec
}

var _ domain.BuildHooks = (*Metrics)(nil)

// NewMetrics creates the collector and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		interfacesDefined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lattice_interfaces_defined_total",
			Help: "Capability interfaces accepted by the registry.",
		}),
		refinementEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lattice_refinement_edges_total",
			Help: "Refinement edges accepted by the registry.",
		}),
		fulfillsQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_fulfills_queries_total",
			Help: "Fulfillment queries by closure cache state.",
		}, []string{"cache"}),
		specializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_specializations_total",
			Help: "Specializations accepted per composite.",
		}, []string{"composite"}),
		instantiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_instantiations_total",
			Help: "Instantiation attempts per composite and outcome.",
		}, []string{"composite", "outcome"}),
	}
	reg.MustRegister(
		m.interfacesDefined,
		m.refinementEdges,
		m.fulfillsQueries,
		m.specializations,
		m.instantiations,
	)
	return m
}

func (m *Metrics) OnInterfaceDefined(string) {
	m.interfacesDefined.Inc()
}

func (m *Metrics) OnRefinementAdded(string, string) {
	m.refinementEdges.Inc()
}

func (m *Metrics) OnFulfillsQuery(cached bool) {
	if cached {
		m.fulfillsQueries.WithLabelValues("hit").Inc()
	} else {
		m.fulfillsQueries.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) OnSpecializationAccepted(composite string) {
	m.specializations.WithLabelValues(composite).Inc()
}

func (m *Metrics) OnInstantiation(composite string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, domain.ErrAmbiguousSpecialization):
		outcome = "ambiguous"
	case err != nil:
		outcome = "error"
	}
	m.instantiations.WithLabelValues(composite, outcome).Inc()
}
