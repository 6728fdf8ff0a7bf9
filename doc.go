/*
Package lattice builds reusable abstract models of software components for
assembling control architectures from swappable parts: a controller driving
a controlled system.

The model is built declaratively during a single-threaded build phase inside
a Workspace, then frozen. Frozen models are immutable and safe to share
across any number of concurrent readers: inspection servers, deployment
engines, tooling.

# Concept

Capability interfaces are named contracts with typed, directional ports.
A refinement ("fulfills") relation between them forms a DAG: anything
implementing a refined interface also satisfies its bases, with port names
translated through the refinement's mapping. Composites are templates with
abstract child slots; specializations bind slots to narrower interfaces and
carry exported ports and internal connections. At instantiation time the
engine merges every applicable specialization, taking the most refined
binding per slot, or reports the request as ambiguous.

# Usage

	ws, err := lattice.New("robot")
	if err != nil {
		log.Fatal(err)
	}

	// One call synthesizes a matched controller/controlled-system pair
	// plus the specializations wiring them into a closed loop.
	decl, err := ws.DeclareControlLoop("Joints", "JointsCommand", map[string]any{
		"feedback_type": "JointsStatus",
	})
	if err != nil {
		log.Fatal(err)
	}

	ws.Freeze()

	inst, err := ws.ControlLoop().Instantiate(map[string]*registry.Interface{
		"controller":        myController,
		"controlled_system": myArm,
	})
	// inst.Connections is the wiring list a deployment engine consumes.

The author-facing declaration syntax lives in internal/manifest (YAML), and
the runtime that turns instances into live components is a separate system
consuming Instance values through pkg/ports.
*/
package lattice
