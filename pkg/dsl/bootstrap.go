package dsl

import (
	"github.com/aretw0/lattice/pkg/composite"
	"github.com/aretw0/lattice/pkg/registry"
)

// Well-known names of the bootstrap model elements every workspace carries.
const (
	// CapController is the abstract capability every controller fulfills.
	CapController = "Controller"
	// CapControlledSystem is the abstract capability every controlled
	// system fulfills.
	CapControlledSystem = "ControlledSystem"

	// CompositeControlLoop is the generic control-loop composite.
	CompositeControlLoop = "control_loop"

	// SlotController and SlotControlledSystem are its two child slots.
	SlotController       = "controller"
	SlotControlledSystem = "controlled_system"
)

// Port names synthesized by the control-loop generator.
const (
	PortCommandIn  = "command_in"
	PortCommandOut = "command_out"
	PortStatusIn   = "status_in"
	PortStatusOut  = "status_out"
)

// Bootstrap defines the abstract Controller and ControlledSystem
// capabilities and the generic control-loop composite with its two child
// slots. Called once per workspace before any loop declarations.
func Bootstrap(reg *registry.Registry) (*composite.Composite, error) {
	controller, err := reg.Define(CapController)
	if err != nil {
		return nil, err
	}
	controlled, err := reg.Define(CapControlledSystem)
	if err != nil {
		return nil, err
	}

	loop := composite.New(CompositeControlLoop, reg)
	if err := loop.AddSlot(SlotController, controller); err != nil {
		return nil, err
	}
	if err := loop.AddSlot(SlotControlledSystem, controlled); err != nil {
		return nil, err
	}
	return loop, nil
}
