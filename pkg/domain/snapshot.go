package domain

// Snapshot is the serializable form of a frozen workspace. It is what model
// stores persist and what inspection adapters (HTTP, MCP, CLI) render.
// Field order inside the slices is deterministic (sorted by name) so that
// snapshots of the same model compare equal.
type Snapshot struct {
	Name       string              `json:"name" yaml:"name"`
	Interfaces []InterfaceSnapshot `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Composites []CompositeSnapshot `json:"composites,omitempty" yaml:"composites,omitempty"`

	// Encrypted carries the ciphertext envelope written by the encryption
	// store middleware. A snapshot with Encrypted set has no readable
	// interfaces or composites until it is decrypted.
	Encrypted string `json:"encrypted,omitempty" yaml:"encrypted,omitempty"`
}

// InterfaceSnapshot is the serializable form of a capability interface.
type InterfaceSnapshot struct {
	Name         string               `json:"name" yaml:"name"`
	Ports        []Port               `json:"ports" yaml:"ports"`
	Instantiable bool                 `json:"instantiable,omitempty" yaml:"instantiable,omitempty"`
	Refinements  []RefinementSnapshot `json:"refinements,omitempty" yaml:"refinements,omitempty"`
}

// RefinementSnapshot records one refinement edge with its port mapping.
type RefinementSnapshot struct {
	Base    string      `json:"base" yaml:"base"`
	Mapping PortMapping `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// CompositeSnapshot is the serializable form of a composite model.
type CompositeSnapshot struct {
	Name            string                   `json:"name" yaml:"name"`
	Slots           []ChildSlot              `json:"slots" yaml:"slots"`
	Specializations []SpecializationSnapshot `json:"specializations,omitempty" yaml:"specializations,omitempty"`
}

// SpecializationSnapshot is the serializable form of one specialization.
type SpecializationSnapshot struct {
	Bindings    map[string]string `json:"bindings" yaml:"bindings"`
	Exports     []ExportedPort    `json:"exports,omitempty" yaml:"exports,omitempty"`
	Provides    []string          `json:"provides,omitempty" yaml:"provides,omitempty"`
	Connections []ConnectionEdge  `json:"connections,omitempty" yaml:"connections,omitempty"`
}
