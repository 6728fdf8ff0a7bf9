package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the build-time taxonomy. Callers match them with
// errors.Is; the BuildError wrapper carries the identifying context.
var (
	// ErrDuplicateName is returned when an interface or composite name is
	// already taken in the workspace.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrIncompatiblePort is returned when a port mapping is not a total
	// function over the base's ports, or maps ports of mismatched
	// direction or payload type.
	ErrIncompatiblePort = errors.New("incompatible port")

	// ErrCyclicRefinement is returned when adding a refinement edge would
	// close a cycle in the refinement graph. Checked at definition time.
	ErrCyclicRefinement = errors.New("cyclic refinement")

	// ErrDuplicateChild is returned when a composite already has a child
	// slot with the given name.
	ErrDuplicateChild = errors.New("duplicate child slot")

	// ErrInvalidOption is returned when a declaration is given an option
	// key it does not understand.
	ErrInvalidOption = errors.New("invalid option")

	// ErrAmbiguousSpecialization is returned at instantiation time when
	// two applicable specializations are mutually incompatible. The caller
	// recovers by narrowing the instantiation request.
	ErrAmbiguousSpecialization = errors.New("ambiguous specialization")

	// ErrUnknownInterface is returned when a name does not resolve to a
	// defined capability interface.
	ErrUnknownInterface = errors.New("unknown interface")

	// ErrUnknownSlot is returned when a binding names a child slot the
	// composite does not have.
	ErrUnknownSlot = errors.New("unknown child slot")

	// ErrUnresolvedSlot is returned at instantiation time when no binding
	// resolves one of the composite's child slots.
	ErrUnresolvedSlot = errors.New("unresolved child slot")

	// ErrFrozen is returned when a mutating operation is attempted after
	// the build phase has ended.
	ErrFrozen = errors.New("model is frozen")

	// ErrSnapshotNotFound is returned by model stores when no snapshot
	// exists under the requested name.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// BuildError wraps a sentinel error with enough context (operation, model
// and slot names) for the author to fix the declaration. Declarations are
// pure functions of their inputs, so there is no retry path; the error is
// surfaced as-is.
type BuildError struct {
	Op    string // operation that failed, e.g. "registry.Extend"
	Model string // interface or composite involved
	Slot  string // child slot, when relevant
	Err   error
}

func (e *BuildError) Error() string {
	switch {
	case e.Slot != "":
		return fmt.Sprintf("%s %s[%s]: %v", e.Op, e.Model, e.Slot, e.Err)
	case e.Model != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Model, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *BuildError) Unwrap() error { return e.Err }

// NewBuildError creates a BuildError for the given operation and model.
func NewBuildError(op, model string, err error) *BuildError {
	return &BuildError{Op: op, Model: model, Err: err}
}
