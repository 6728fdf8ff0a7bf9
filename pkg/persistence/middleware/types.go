// Package middleware provides composable wrappers for model stores:
// encryption at rest and redaction of proprietary composite internals.
package middleware

import "github.com/aretw0/lattice/pkg/ports"

// Middleware allows wrapping a ModelStore to add behavior.
type Middleware func(ports.ModelStore) ports.ModelStore
