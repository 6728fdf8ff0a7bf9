package domain

// Direction indicates whether a port consumes or produces values.
type Direction string

const (
	// DirectionInput marks a port that consumes values.
	DirectionInput Direction = "input"
	// DirectionOutput marks a port that produces values.
	DirectionOutput Direction = "output"
)

// PayloadType is a stable identifier for the type of values flowing through
// a port. Resolution of identifiers to concrete types is the job of an
// external type registry (see ports.TypeResolver); the model only compares
// identifiers for equality.
type PayloadType string

// Port is a named, directionally-typed attachment point for a value stream.
// Ports are immutable once defined.
type Port struct {
	Name      string      `json:"name" yaml:"name"`
	Direction Direction   `json:"direction" yaml:"direction"`
	Type      PayloadType `json:"type" yaml:"type"`
}

// In creates an input port.
func In(name string, t PayloadType) Port {
	return Port{Name: name, Direction: DirectionInput, Type: t}
}

// Out creates an output port.
func Out(name string, t PayloadType) Port {
	return Port{Name: name, Direction: DirectionOutput, Type: t}
}

// Compatible reports whether p can stand in for other, i.e. same direction
// and same payload type. Names are allowed to differ; mapping names is the
// job of refinement port mappings.
func (p Port) Compatible(other Port) bool {
	return p.Direction == other.Direction && p.Type == other.Type
}
