// Package dto holds the wire representation of model manifests. It uses
// "mapstructure" tags so the YAML front end can decode loosely-typed
// documents and still reject unknown keys.
package dto

// Manifest is a complete declarative model description.
type Manifest struct {
	Model        string            `json:"model" mapstructure:"model"`
	Types        []string          `json:"types" mapstructure:"types"`
	ControlLoops []ControlLoopDecl `json:"control_loops" mapstructure:"control_loops"`
	Interfaces   []InterfaceDecl   `json:"interfaces" mapstructure:"interfaces"`
	Composites   []CompositeDecl   `json:"composites" mapstructure:"composites"`
}

// ControlLoopDecl invokes the control-loop generator.
type ControlLoopDecl struct {
	Name        string         `json:"name" mapstructure:"name"`
	PayloadType string         `json:"payload_type" mapstructure:"payload_type"`
	Options     map[string]any `json:"options" mapstructure:"options"`
}

// InterfaceDecl declares a capability interface.
type InterfaceDecl struct {
	Name         string       `json:"name" mapstructure:"name"`
	Instantiable bool         `json:"instantiable" mapstructure:"instantiable"`
	Ports        []PortDecl   `json:"ports" mapstructure:"ports"`
	Extends      []ExtendDecl `json:"extends" mapstructure:"extends"`
}

// PortDecl declares one port.
type PortDecl struct {
	Name      string `json:"name" mapstructure:"name"`
	Direction string `json:"direction" mapstructure:"direction"`
	Type      string `json:"type" mapstructure:"type"`
}

// ExtendDecl declares a refinement edge with its port mapping
// (base port -> own port).
type ExtendDecl struct {
	Base    string            `json:"base" mapstructure:"base"`
	Mapping map[string]string `json:"mapping" mapstructure:"mapping"`
}

// CompositeDecl declares a composite model with its slots and
// specializations.
type CompositeDecl struct {
	Name            string               `json:"name" mapstructure:"name"`
	Slots           []SlotDecl           `json:"slots" mapstructure:"slots"`
	Specializations []SpecializationDecl `json:"specializations" mapstructure:"specializations"`
}

// SlotDecl declares one abstract child slot.
type SlotDecl struct {
	Name     string `json:"name" mapstructure:"name"`
	Requires string `json:"requires" mapstructure:"requires"`
}

// SpecializationDecl declares one specialization.
type SpecializationDecl struct {
	Bindings    map[string]string `json:"bindings" mapstructure:"bindings"`
	Exports     []ExportDecl      `json:"exports" mapstructure:"exports"`
	Provides    []string          `json:"provides" mapstructure:"provides"`
	Connections []ConnectionDecl  `json:"connections" mapstructure:"connections"`
}

// ExportDecl promotes a child port to the composite level.
type ExportDecl struct {
	Name  string `json:"name" mapstructure:"name"`
	Child string `json:"child" mapstructure:"child"`
	Port  string `json:"port" mapstructure:"port"`
}

// ConnectionDecl declares one internal connection edge.
type ConnectionDecl struct {
	FromChild string `json:"from_child" mapstructure:"from_child"`
	FromPort  string `json:"from_port" mapstructure:"from_port"`
	ToChild   string `json:"to_child" mapstructure:"to_child"`
	ToPort    string `json:"to_port" mapstructure:"to_port"`
}
