/*
Package observability provides monitoring for model construction.

The Prometheus collector implements domain.BuildHooks, so it plugs into a
workspace via lattice.WithHooks and counts interface definitions, refinement
edges, fulfillment cache behavior, accepted specializations and
instantiation outcomes.
*/
package observability
