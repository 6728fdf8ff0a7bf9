package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/composite"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/mitchellh/mapstructure"
)

// Options is the decoded form of a control-loop option map, as supplied by
// declaration front ends (YAML manifests, external tooling).
type Options struct {
	FeedbackType    string `mapstructure:"feedback_type"`
	CommandProvider bool   `mapstructure:"command_provider"`
}

// DecodeOptions decodes a raw option map. Unknown keys fail with
// domain.ErrInvalidOption; the offending keys are listed in the error.
func DecodeOptions(raw map[string]any) (Options, error) {
	var opts Options
	var meta mapstructure.Metadata

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		Metadata:    &meta,
		ErrorUnused: false,
	})
	if err != nil {
		return Options{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("decode options: %w: %v", domain.ErrInvalidOption, err)
	}
	if len(meta.Unused) > 0 {
		sort.Strings(meta.Unused)
		return Options{}, fmt.Errorf("unknown option keys %v: %w", meta.Unused, domain.ErrInvalidOption)
	}
	return opts, nil
}

// Declare is the map-options entry point: it decodes opts and runs the
// builder. See LoopBuilder for the fluent equivalent.
func Declare(reg *registry.Registry, loop *composite.Composite, name string, payload domain.PayloadType, opts map[string]any) (*Declaration, error) {
	decoded, err := DecodeOptions(opts)
	if err != nil {
		return nil, domain.NewBuildError("dsl.Declare", name, err)
	}

	b := ControlLoop(reg, loop, name, payload)
	if decoded.FeedbackType != "" {
		b.Feedback(domain.PayloadType(decoded.FeedbackType))
	}
	if decoded.CommandProvider {
		b.CommandProvider()
	}
	return b.Declare()
}
