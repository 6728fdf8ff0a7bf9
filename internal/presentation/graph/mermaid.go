package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/lattice/pkg/domain"
)

// Overlay contains dynamic data to visualize on top of the static model,
// typically the interfaces an instantiation resolved its slots to.
type Overlay struct {
	BoundInterfaces []string
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a model
// snapshot. It applies semantic styling:
// - Instantiable interface: [[Subroutine]]
// - Abstract interface: [Rectangle]
// - Composite slot: [/Parallelogram/]
// Refinement edges are solid arrows to the base; slot requirements are
// dotted arrows. Overlay highlights (bound interfaces) are applied last.
func GenerateMermaid(snap domain.Snapshot, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, iface := range snap.Interfaces {
		safeID := sanitizeMermaidID(iface.Name)

		opener, closer := "[", "]"
		if iface.Instantiable {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, iface.Name, closer))

		for _, ref := range iface.Refinements {
			safeBase := sanitizeMermaidID(ref.Base)
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, safeBase))
		}
	}

	for _, comp := range snap.Composites {
		safeComp := sanitizeMermaidID(comp.Name)
		sb.WriteString(fmt.Sprintf("\n    subgraph %s\n", safeComp))
		for _, slot := range comp.Slots {
			slotID := safeComp + "_" + sanitizeMermaidID(slot.Name)
			sb.WriteString(fmt.Sprintf("        %s[/\"%s\"/]\n", slotID, slot.Name))
		}
		sb.WriteString("    end\n")
		for _, slot := range comp.Slots {
			slotID := safeComp + "_" + sanitizeMermaidID(slot.Name)
			safeReq := sanitizeMermaidID(slot.Requires)
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", slotID, safeReq))
		}
	}

	if overlay != nil && len(overlay.BoundInterfaces) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high-contrast on light backgrounds, regardless
		// of theme.
		sb.WriteString("    classDef bound fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		names := append([]string(nil), overlay.BoundInterfaces...)
		sort.Strings(names)
		for _, name := range names {
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s bound;\n", safeID))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
