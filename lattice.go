package lattice

import (
	"log/slog"
	"sort"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/pkg/composite"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/dsl"
	"github.com/aretw0/lattice/pkg/registry"
)

// Workspace is the explicit build-phase context: it owns the capability
// registry and the composite models and is passed by reference into
// generators and declaration code. There is no process-wide registry.
//
// All declaration methods are single-threaded by design. After Freeze the
// workspace is read-only and safe for concurrent readers.
type Workspace struct {
	name       string
	reg        *registry.Registry
	loop       *composite.Composite
	composites map[string]*composite.Composite
	logger     *slog.Logger
	hooks      domain.BuildHooks
	frozen     bool
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger injects a logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) { w.logger = l }
}

// WithHooks installs build hooks, e.g. the Prometheus collector from
// pkg/observability.
func WithHooks(h domain.BuildHooks) Option {
	return func(w *Workspace) { w.hooks = h }
}

// New creates a workspace and bootstraps the abstract Controller and
// ControlledSystem capabilities plus the generic control-loop composite.
func New(name string, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		name:       name,
		reg:        registry.New(),
		composites: make(map[string]*composite.Composite),
		logger:     logging.NewNop(),
		hooks:      domain.NopHooks{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.reg.SetHooks(w.hooks)

	loop, err := dsl.Bootstrap(w.reg)
	if err != nil {
		return nil, err
	}
	loop.SetHooks(w.hooks)
	w.loop = loop
	w.composites[loop.Name()] = loop

	w.logger.Debug("workspace created", "name", name)
	return w, nil
}

// Name returns the workspace name.
func (w *Workspace) Name() string { return w.name }

// Registry returns the capability registry.
func (w *Workspace) Registry() *registry.Registry { return w.reg }

// ControlLoop returns the generic control-loop composite.
func (w *Workspace) ControlLoop() *composite.Composite { return w.loop }

// DefineInterface registers a capability interface.
func (w *Workspace) DefineInterface(name string, ports ...domain.Port) (*registry.Interface, error) {
	iface, err := w.reg.Define(name, ports...)
	if err != nil {
		return nil, err
	}
	w.logger.Debug("interface defined", "name", name, "ports", len(ports))
	return iface, nil
}

// ExtendInterface declares that iface also satisfies base, with mapping
// translating base's port names onto iface's.
func (w *Workspace) ExtendInterface(iface, base *registry.Interface, mapping domain.PortMapping) error {
	if err := w.reg.Extend(iface, base, mapping); err != nil {
		return err
	}
	w.logger.Debug("refinement added", "interface", iface.Name(), "base", base.Name())
	return nil
}

// MarkInstantiable designates iface as realizable by a concrete component.
func (w *Workspace) MarkInstantiable(iface *registry.Interface) error {
	return w.reg.MarkInstantiable(iface)
}

// DefineComposite creates a composite model owned by this workspace.
func (w *Workspace) DefineComposite(name string) (*composite.Composite, error) {
	const op = "lattice.DefineComposite"
	if w.frozen {
		return nil, domain.NewBuildError(op, name, domain.ErrFrozen)
	}
	if _, exists := w.composites[name]; exists {
		return nil, domain.NewBuildError(op, name, domain.ErrDuplicateName)
	}
	c := composite.New(name, w.reg)
	c.SetHooks(w.hooks)
	w.composites[name] = c
	w.logger.Debug("composite defined", "name", name)
	return c, nil
}

// Composite resolves a composite by name.
func (w *Workspace) Composite(name string) (*composite.Composite, error) {
	c, ok := w.composites[name]
	if !ok {
		return nil, domain.NewBuildError("lattice.Composite", name, domain.ErrUnknownInterface)
	}
	return c, nil
}

// Composites returns all composite names, sorted.
func (w *Workspace) Composites() []string {
	out := make([]string, 0, len(w.composites))
	for name := range w.composites {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DeclareControlLoop synthesizes a matched controller/controlled-system
// interface pair for the given loop name and payload type and registers the
// connecting specializations on the control-loop composite.
//
// Recognized option keys: "feedback_type" (string), "command_provider"
// (bool). Anything else fails with domain.ErrInvalidOption.
func (w *Workspace) DeclareControlLoop(name string, payload domain.PayloadType, opts map[string]any) (*dsl.Declaration, error) {
	decl, err := dsl.Declare(w.reg, w.loop, name, payload, opts)
	if err != nil {
		return nil, err
	}
	w.logger.Info("control loop declared",
		"name", name, "payload", string(payload), "feedback", decl.Status != nil)
	return decl, nil
}

// Freeze ends the build phase: every closure is materialized, all mutation
// is rejected from here on, and the workspace becomes safe to share.
func (w *Workspace) Freeze() {
	if w.frozen {
		return
	}
	w.reg.Freeze()
	for _, c := range w.composites {
		c.Freeze()
	}
	w.frozen = true
	w.logger.Info("workspace frozen",
		"interfaces", len(w.reg.Names()), "composites", len(w.composites))
}

// Frozen reports whether the build phase has ended.
func (w *Workspace) Frozen() bool { return w.frozen }

// Snapshot exports the workspace in serializable form, for model stores and
// inspection adapters.
func (w *Workspace) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Name:       w.name,
		Interfaces: w.reg.Snapshot(),
	}
	for _, name := range w.Composites() {
		snap.Composites = append(snap.Composites, w.composites[name].Snapshot())
	}
	return snap
}
