package memory_test

import (
	"testing"

	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, memory.NewStore())
}

func TestResolver(t *testing.T) {
	r := memory.NewResolver("JointsCommand")
	r.Register("JointsStatus")

	id, ok := r.Resolve("JointsCommand")
	assert.True(t, ok)
	assert.NotEmpty(t, id)

	_, ok = r.Resolve("Unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"JointsCommand", "JointsStatus"}, r.Known())
}

var _ ports.ModelStore = (*memory.Store)(nil)
var _ ports.TypeResolver = (*memory.Resolver)(nil)
