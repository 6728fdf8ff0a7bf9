package dsl

import (
	"github.com/aretw0/lattice/pkg/composite"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
)

// Declaration is the result of a control-loop declaration: the synthesized
// interfaces and the two specializations registered on the control-loop
// composite.
type Declaration struct {
	// Controller commands the controlled system. One output port of the
	// loop's payload type, plus a status input when feedback is declared.
	Controller *registry.Interface
	// ControlledSystem is the interface concrete plants implement. Named
	// after the loop itself.
	ControlledSystem *registry.Interface

	// Consumer is the command-consumer contract the controlled system
	// refines. Provider and Status are only set when the corresponding
	// option was declared.
	Consumer *registry.Interface
	Provider *registry.Interface
	Status   *registry.Interface

	// Open binds only the controlled system and exports its ports at the
	// composite level; the specialized composite itself provides the
	// controlled-system interface, so an instantiated loop can fill a
	// controlled-system slot elsewhere.
	Open *composite.Specialization
	// Closed binds controller and controlled system and wires the loop
	// shut.
	Closed *composite.Specialization
}

// LoopBuilder accumulates the options of one control-loop declaration.
type LoopBuilder struct {
	reg     *registry.Registry
	loop    *composite.Composite
	name    string
	payload domain.PayloadType

	feedback        domain.PayloadType
	commandProvider bool
}

// ControlLoop starts a declaration for the given loop name and command
// payload type.
func ControlLoop(reg *registry.Registry, loop *composite.Composite, name string, payload domain.PayloadType) *LoopBuilder {
	return &LoopBuilder{reg: reg, loop: loop, name: name, payload: payload}
}

// Feedback declares a status stream of the given payload type flowing from
// the controlled system back to the controller.
func (b *LoopBuilder) Feedback(t domain.PayloadType) *LoopBuilder {
	b.feedback = t
	return b
}

// CommandProvider additionally declares a standalone command-provider
// interface, so that command sources other than the controller can be
// modeled for this loop.
func (b *LoopBuilder) CommandProvider() *LoopBuilder {
	b.commandProvider = true
	return b
}

// Declare synthesizes the interfaces and registers the two specializations.
// A loop name that is already taken surfaces as domain.ErrDuplicateName from
// the first interface definition.
func (b *LoopBuilder) Declare() (*Declaration, error) {
	decl := &Declaration{}
	var err error

	decl.Consumer, err = b.reg.Define(b.name+"CommandConsumer", domain.In(PortCommandIn, b.payload))
	if err != nil {
		return nil, err
	}

	if b.feedback != "" {
		decl.Status, err = b.reg.Define(b.name+"StatusProvider", domain.Out(PortStatusOut, b.feedback))
		if err != nil {
			return nil, err
		}
	}

	if b.commandProvider {
		decl.Provider, err = b.reg.Define(b.name+"CommandProvider", domain.Out(PortCommandOut, b.payload))
		if err != nil {
			return nil, err
		}
	}

	if decl.Controller, err = b.declareController(decl); err != nil {
		return nil, err
	}
	if decl.ControlledSystem, err = b.declareControlledSystem(decl); err != nil {
		return nil, err
	}

	if decl.Open, decl.Closed, err = b.specialize(decl); err != nil {
		return nil, err
	}
	return decl, nil
}

// declareController defines <name>Controller: command output, optional
// status input, refining the abstract Controller capability (identity
// mapping over its empty port set) and the command-provider contract when
// present.
func (b *LoopBuilder) declareController(decl *Declaration) (*registry.Interface, error) {
	ports := []domain.Port{domain.Out(PortCommandOut, b.payload)}
	if b.feedback != "" {
		ports = append(ports, domain.In(PortStatusIn, b.feedback))
	}
	controller, err := b.reg.Define(b.name+"Controller", ports...)
	if err != nil {
		return nil, err
	}

	abstract, err := b.reg.Lookup(CapController)
	if err != nil {
		return nil, err
	}
	if err := b.reg.Extend(controller, abstract, domain.PortMapping{}); err != nil {
		return nil, err
	}
	if decl.Provider != nil {
		err := b.reg.Extend(controller, decl.Provider, domain.PortMapping{PortCommandOut: PortCommandOut})
		if err != nil {
			return nil, err
		}
	}
	return controller, nil
}

// declareControlledSystem defines the interface named after the loop:
// command input, optional status output, refining the command-consumer and
// status contracts and the abstract ControlledSystem capability.
func (b *LoopBuilder) declareControlledSystem(decl *Declaration) (*registry.Interface, error) {
	ports := []domain.Port{domain.In(PortCommandIn, b.payload)}
	if b.feedback != "" {
		ports = append(ports, domain.Out(PortStatusOut, b.feedback))
	}
	controlled, err := b.reg.Define(b.name, ports...)
	if err != nil {
		return nil, err
	}

	if err := b.reg.Extend(controlled, decl.Consumer, domain.PortMapping{PortCommandIn: PortCommandIn}); err != nil {
		return nil, err
	}
	if decl.Status != nil {
		err := b.reg.Extend(controlled, decl.Status, domain.PortMapping{PortStatusOut: PortStatusOut})
		if err != nil {
			return nil, err
		}
	}

	abstract, err := b.reg.Lookup(CapControlledSystem)
	if err != nil {
		return nil, err
	}
	if err := b.reg.Extend(controlled, abstract, domain.PortMapping{}); err != nil {
		return nil, err
	}
	return controlled, nil
}

// specialize registers the open specialization (controlled system only,
// ports exported, loop provides the controlled-system interface) and the
// closed one (controller wired to controlled system).
func (b *LoopBuilder) specialize(decl *Declaration) (*composite.Specialization, *composite.Specialization, error) {
	exports := []domain.ExportedPort{
		{Name: PortCommandIn, Child: SlotControlledSystem, Port: PortCommandIn},
	}
	if b.feedback != "" {
		exports = append(exports, domain.ExportedPort{
			Name: PortStatusOut, Child: SlotControlledSystem, Port: PortStatusOut,
		})
	}
	open, err := b.loop.Specialize(
		map[string]*registry.Interface{SlotControlledSystem: decl.ControlledSystem},
		composite.Body{Exports: exports, Provides: []string{b.name}},
	)
	if err != nil {
		return nil, nil, err
	}

	connections := []domain.ConnectionEdge{{
		FromChild: SlotController, FromPort: PortCommandOut,
		ToChild: SlotControlledSystem, ToPort: PortCommandIn,
	}}
	if b.feedback != "" {
		connections = append(connections, domain.ConnectionEdge{
			FromChild: SlotControlledSystem, FromPort: PortStatusOut,
			ToChild: SlotController, ToPort: PortStatusIn,
		})
	}
	closed, err := b.loop.Specialize(
		map[string]*registry.Interface{
			SlotController:       decl.Controller,
			SlotControlledSystem: decl.ControlledSystem,
		},
		composite.Body{Connections: connections},
	)
	if err != nil {
		return nil, nil, err
	}
	return open, closed, nil
}
