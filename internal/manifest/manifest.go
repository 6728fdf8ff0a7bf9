// Package manifest is the author-facing YAML front end: it parses a model
// manifest and compiles it into workspace declarations.
//
// Compilation order inside one manifest is fixed: payload types, control
// loops, interfaces, composites. Interfaces may therefore refine the
// interfaces a control-loop declaration generated.
package manifest

import (
	"fmt"
	"sort"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/internal/dto"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/composite"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parse decodes raw YAML into a manifest. Unknown keys anywhere in the
// document fail with domain.ErrInvalidOption.
func Parse(data []byte) (*dto.Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	var m dto.Manifest
	var meta mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &m,
		Metadata: &meta,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode manifest: %w: %v", domain.ErrInvalidOption, err)
	}
	if len(meta.Unused) > 0 {
		sort.Strings(meta.Unused)
		return nil, fmt.Errorf("unknown manifest keys %v: %w", meta.Unused, domain.ErrInvalidOption)
	}
	return &m, nil
}

// Compile turns a manifest into a workspace. The workspace is left
// unfrozen so callers can add programmatic declarations before freezing.
// Options (logger, build hooks) are forwarded to lattice.New.
func Compile(m *dto.Manifest, opts ...lattice.Option) (*lattice.Workspace, error) {
	name := m.Model
	if name == "" {
		name = "model"
	}
	ws, err := lattice.New(name, opts...)
	if err != nil {
		return nil, err
	}

	resolver := memory.NewResolver(m.Types...)

	for _, loop := range m.ControlLoops {
		payload, err := resolveType(resolver, loop.PayloadType)
		if err != nil {
			return nil, domain.NewBuildError("manifest.Compile", loop.Name, err)
		}
		if feedback, ok := loop.Options["feedback_type"].(string); ok {
			if _, err := resolveType(resolver, feedback); err != nil {
				return nil, domain.NewBuildError("manifest.Compile", loop.Name, err)
			}
		}
		if _, err := ws.DeclareControlLoop(loop.Name, payload, loop.Options); err != nil {
			return nil, err
		}
	}

	for _, decl := range m.Interfaces {
		if err := compileInterface(ws, resolver, decl); err != nil {
			return nil, err
		}
	}

	for _, decl := range m.Composites {
		if err := compileComposite(ws, decl); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

// Load is Parse followed by Compile.
func Load(data []byte, opts ...lattice.Option) (*lattice.Workspace, error) {
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(m, opts...)
}

func resolveType(resolver ports.TypeResolver, name string) (domain.PayloadType, error) {
	if name == "" {
		return "", fmt.Errorf("missing payload type: %w", domain.ErrInvalidOption)
	}
	t, ok := resolver.Resolve(name)
	if !ok {
		return "", fmt.Errorf("payload type %q not declared under 'types': %w", name, domain.ErrInvalidOption)
	}
	return t, nil
}

func compileInterface(ws *lattice.Workspace, resolver ports.TypeResolver, decl dto.InterfaceDecl) error {
	ifacePorts := make([]domain.Port, 0, len(decl.Ports))
	for _, p := range decl.Ports {
		t, err := resolveType(resolver, p.Type)
		if err != nil {
			return domain.NewBuildError("manifest.Compile", decl.Name, err)
		}
		switch p.Direction {
		case string(domain.DirectionInput):
			ifacePorts = append(ifacePorts, domain.In(p.Name, t))
		case string(domain.DirectionOutput):
			ifacePorts = append(ifacePorts, domain.Out(p.Name, t))
		default:
			return domain.NewBuildError("manifest.Compile", decl.Name,
				fmt.Errorf("port %q has direction %q, want input or output: %w",
					p.Name, p.Direction, domain.ErrInvalidOption))
		}
	}

	iface, err := ws.DefineInterface(decl.Name, ifacePorts...)
	if err != nil {
		return err
	}

	for _, ext := range decl.Extends {
		base, err := ws.Registry().Lookup(ext.Base)
		if err != nil {
			return err
		}
		mapping := make(domain.PortMapping, len(ext.Mapping))
		for basePort, ownPort := range ext.Mapping {
			mapping[basePort] = ownPort
		}
		if err := ws.ExtendInterface(iface, base, mapping); err != nil {
			return err
		}
	}

	if decl.Instantiable {
		if err := ws.MarkInstantiable(iface); err != nil {
			return err
		}
	}
	return nil
}

func compileComposite(ws *lattice.Workspace, decl dto.CompositeDecl) error {
	comp, err := ws.DefineComposite(decl.Name)
	if err != nil {
		return err
	}

	for _, slot := range decl.Slots {
		required, err := ws.Registry().Lookup(slot.Requires)
		if err != nil {
			return err
		}
		if err := comp.AddSlot(slot.Name, required); err != nil {
			return err
		}
	}

	for _, spec := range decl.Specializations {
		bindings := make(map[string]*registry.Interface, len(spec.Bindings))
		for slot, ifaceName := range spec.Bindings {
			iface, err := ws.Registry().Lookup(ifaceName)
			if err != nil {
				return err
			}
			bindings[slot] = iface
		}

		body := composite.Body{Provides: spec.Provides}
		for _, exp := range spec.Exports {
			body.Exports = append(body.Exports, domain.ExportedPort{
				Name: exp.Name, Child: exp.Child, Port: exp.Port,
			})
		}
		for _, conn := range spec.Connections {
			body.Connections = append(body.Connections, domain.ConnectionEdge{
				FromChild: conn.FromChild, FromPort: conn.FromPort,
				ToChild: conn.ToChild, ToPort: conn.ToPort,
			})
		}
		if _, err := comp.Specialize(bindings, body); err != nil {
			return err
		}
	}
	return nil
}
