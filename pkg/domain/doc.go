/*
Package domain contains the core data model for Lattice: ports, capability
interfaces, child slots, connections and the build-time error taxonomy.

These types are plain values with no behavior beyond validation helpers.
The behavior lives in pkg/registry (refinement graph) and pkg/composite
(specialization engine), keeping the model decoupled from the algorithms
that operate on it.
*/
package domain
