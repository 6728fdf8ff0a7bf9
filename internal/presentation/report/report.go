// Package report renders model snapshots as markdown, ready for the
// terminal renderer in internal/presentation/tui or for plain output.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/lattice/pkg/domain"
)

// Model renders the whole snapshot.
func Model(snap domain.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Model: %s\n\n", snap.Name)

	if len(snap.Interfaces) > 0 {
		sb.WriteString("## Interfaces\n\n")
		for _, iface := range snap.Interfaces {
			writeInterface(&sb, iface)
		}
	}

	if len(snap.Composites) > 0 {
		sb.WriteString("## Composites\n\n")
		for _, comp := range snap.Composites {
			writeComposite(&sb, comp)
		}
	}
	return sb.String()
}

// Interface renders a single interface section.
func Interface(iface domain.InterfaceSnapshot) string {
	var sb strings.Builder
	writeInterface(&sb, iface)
	return sb.String()
}

func writeInterface(sb *strings.Builder, iface domain.InterfaceSnapshot) {
	marker := ""
	if iface.Instantiable {
		marker = " `instantiable`"
	}
	fmt.Fprintf(sb, "### %s%s\n\n", iface.Name, marker)

	if len(iface.Ports) > 0 {
		sb.WriteString("| Port | Direction | Type |\n")
		sb.WriteString("|------|-----------|------|\n")
		for _, p := range iface.Ports {
			fmt.Fprintf(sb, "| %s | %s | %s |\n", p.Name, p.Direction, p.Type)
		}
		sb.WriteString("\n")
	}

	for _, ref := range iface.Refinements {
		fmt.Fprintf(sb, "- fulfills **%s**", ref.Base)
		if len(ref.Mapping) > 0 {
			pairs := make([]string, 0, len(ref.Mapping))
			for base, own := range ref.Mapping {
				pairs = append(pairs, fmt.Sprintf("%s->%s", base, own))
			}
			sort.Strings(pairs)
			fmt.Fprintf(sb, " (%s)", strings.Join(pairs, ", "))
		}
		sb.WriteString("\n")
	}
	if len(iface.Refinements) > 0 {
		sb.WriteString("\n")
	}
}

func writeComposite(sb *strings.Builder, comp domain.CompositeSnapshot) {
	fmt.Fprintf(sb, "### %s\n\n", comp.Name)
	for _, slot := range comp.Slots {
		fmt.Fprintf(sb, "- slot **%s** requires %s\n", slot.Name, slot.Requires)
	}
	if len(comp.Slots) > 0 {
		sb.WriteString("\n")
	}

	for i, spec := range comp.Specializations {
		fmt.Fprintf(sb, "**Specialization %d**\n\n", i)
		for _, slot := range sortedKeys(spec.Bindings) {
			fmt.Fprintf(sb, "- binds %s = %s\n", slot, spec.Bindings[slot])
		}
		for _, conn := range spec.Connections {
			fmt.Fprintf(sb, "- connects %s.%s -> %s.%s\n",
				conn.FromChild, conn.FromPort, conn.ToChild, conn.ToPort)
		}
		for _, exp := range spec.Exports {
			fmt.Fprintf(sb, "- exports %s = %s.%s\n", exp.Name, exp.Child, exp.Port)
		}
		if len(spec.Provides) > 0 {
			fmt.Fprintf(sb, "- provides %s\n", strings.Join(spec.Provides, ", "))
		}
		sb.WriteString("\n")
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
