package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/persistence/middleware"
)

func TestRedactionMiddleware_StripsMatchingComposites(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw := middleware.NewRedactionMiddleware([]string{"^proprietary_"})
	store := mw(underlyingStore)

	ctx := context.Background()
	snap := &domain.Snapshot{
		Name: "plant",
		Composites: []domain.CompositeSnapshot{
			{
				Name:  "proprietary_mixer",
				Slots: []domain.ChildSlot{{Name: "agitator", Requires: "Agitator"}},
				Specializations: []domain.SpecializationSnapshot{
					{Bindings: map[string]string{"agitator": "FastAgitator"}},
				},
			},
			{
				Name: "control_loop",
				Specializations: []domain.SpecializationSnapshot{
					{Bindings: map[string]string{"controller": "PID"}},
				},
			},
		},
	}

	if err := store.Save(ctx, "plant", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := underlyingStore.Load(ctx, "plant")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}

	if got := stored.Composites[0].Specializations; got != nil {
		t.Errorf("Expected proprietary_mixer specializations stripped, got %v", got)
	}
	// The outer shape survives.
	if len(stored.Composites[0].Slots) != 1 {
		t.Error("Expected proprietary_mixer slots to survive redaction")
	}
	if len(stored.Composites[1].Specializations) != 1 {
		t.Error("Expected control_loop specializations untouched")
	}

	// The caller's snapshot is not mutated.
	if len(snap.Composites[0].Specializations) != 1 {
		t.Error("Expected in-memory snapshot to be unchanged")
	}
}
