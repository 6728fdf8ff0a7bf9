/*
Package ports defines the driven-side interfaces of Lattice: model snapshot
persistence, payload-type resolution and deployment.

Adapters live in pkg/adapters; the engine and tooling depend only on these
contracts. RunModelStoreContract lets every store implementation prove it
honors the same semantics.
*/
package ports
