/*
Package dsl provides the declaration generators that turn one name and one
payload type into a full set of model elements: a matched controller /
controlled-system interface pair plus the specializations and port wiring
that close the control loop.

It offers a fluent builder for Go callers and a map-options entry point for
declaration front ends:

	decl, err := dsl.ControlLoop(reg, loop, "Joints", "JointsCommand").
		Feedback("JointsStatus").
		CommandProvider().
		Declare()

The resulting declaration registers two specializations on the generic
control-loop composite: one that lets the specialized composite itself act
as a controlled system elsewhere (recursive composability), and one that
binds controller and controlled system and wires the loop shut.
*/
package dsl
