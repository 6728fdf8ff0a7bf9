package domain

// ChildSlot is an abstract child position of a composite model. Whatever
// fills the slot must fulfill the required capability interface.
type ChildSlot struct {
	Name     string `json:"name" yaml:"name"`
	Requires string `json:"requires" yaml:"requires"`
}

// ConnectionEdge is a directed edge from one child's output port to another
// child's input port. Payload types of the two ports must match.
type ConnectionEdge struct {
	FromChild string `json:"from_child" yaml:"from_child"`
	FromPort  string `json:"from_port" yaml:"from_port"`
	ToChild   string `json:"to_child" yaml:"to_child"`
	ToPort    string `json:"to_port" yaml:"to_port"`
}

// ExportedPort promotes a child port to a composite-level port, making it
// visible to whatever embeds the composite.
type ExportedPort struct {
	Name  string `json:"name" yaml:"name"`
	Child string `json:"child" yaml:"child"`
	Port  string `json:"port" yaml:"port"`
}

// PortMapping maps port names of a base interface onto port names of a
// refining interface. It must be total over the base's ports.
type PortMapping map[string]string
