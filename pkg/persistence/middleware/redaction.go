package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
)

type redactionMiddleware struct {
	next     ports.ModelStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that strips the
// specializations of composites whose names match the patterns before
// persisting. The published snapshot keeps the composite's slots (its
// outer shape) but not the internal wiring, so a model can be shared
// without exposing proprietary architecture detail.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ModelStore) ports.ModelStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	// Clone before mutating so the in-memory snapshot held by the caller is
	// untouched.
	cloned := *snap
	cloned.Composites = make([]domain.CompositeSnapshot, len(snap.Composites))
	copy(cloned.Composites, snap.Composites)

	for i, comp := range cloned.Composites {
		if m.matches(comp.Name) {
			cloned.Composites[i].Specializations = nil
		}
	}
	return m.next.Save(ctx, name, &cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	return m.next.Load(ctx, name)
}

func (m *redactionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
