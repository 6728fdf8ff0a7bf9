package registry

import (
	"testing"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine_DuplicateName(t *testing.T) {
	r := New()

	_, err := r.Define("Velocity", domain.In("command_in", "VelocityCommand"))
	require.NoError(t, err)

	_, err = r.Define("Velocity")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestFulfills_Reflexive(t *testing.T) {
	r := New()

	iface, err := r.Define("Platform", domain.In("command_in", "PlatformCommand"))
	require.NoError(t, err)

	assert.True(t, r.Fulfills(iface, iface))
}

func TestFulfills_Transitive(t *testing.T) {
	r := New()

	// C is the most abstract, A the most refined: A -> B -> C.
	c, err := r.Define("Sink", domain.In("value_in", "Scalar"))
	require.NoError(t, err)
	b, err := r.Define("Consumer", domain.In("command_in", "Scalar"))
	require.NoError(t, err)
	a, err := r.Define("Actuator",
		domain.In("target_in", "Scalar"),
		domain.Out("status_out", "Status"))
	require.NoError(t, err)

	require.NoError(t, r.Extend(b, c, domain.PortMapping{"value_in": "command_in"}))
	require.NoError(t, r.Extend(a, b, domain.PortMapping{"command_in": "target_in"}))

	assert.True(t, r.Fulfills(a, b))
	assert.True(t, r.Fulfills(b, c))
	assert.True(t, r.Fulfills(a, c), "fulfills must be transitive")
	assert.False(t, r.Fulfills(c, a))

	// The composed mapping resolves Sink's port onto Actuator's own port.
	m, ok := r.MappingTo(a, c)
	require.True(t, ok)
	assert.Equal(t, "target_in", m["value_in"])
}

func TestExtend_MissingTargetPort(t *testing.T) {
	r := New()

	base, err := r.Define("Base",
		domain.In("command_in", "Command"),
		domain.Out("status_out", "Status"))
	require.NoError(t, err)
	iface, err := r.Define("Narrow", domain.In("command_in", "Command"))
	require.NoError(t, err)

	// Mapping misses status_out entirely.
	err = r.Extend(iface, base, domain.PortMapping{"command_in": "command_in"})
	assert.ErrorIs(t, err, domain.ErrIncompatiblePort)
}

func TestExtend_DirectionMismatch(t *testing.T) {
	r := New()

	base, err := r.Define("Base", domain.Out("value", "Scalar"))
	require.NoError(t, err)
	iface, err := r.Define("Wrong", domain.In("value", "Scalar"))
	require.NoError(t, err)

	err = r.Extend(iface, base, domain.PortMapping{"value": "value"})
	assert.ErrorIs(t, err, domain.ErrIncompatiblePort)
}

func TestExtend_PayloadMismatch(t *testing.T) {
	r := New()

	base, err := r.Define("Base", domain.Out("value", "Scalar"))
	require.NoError(t, err)
	iface, err := r.Define("Wrong", domain.Out("value", "Vector"))
	require.NoError(t, err)

	err = r.Extend(iface, base, domain.PortMapping{"value": "value"})
	assert.ErrorIs(t, err, domain.ErrIncompatiblePort)
}

func TestExtend_CycleRejectedAtDefinitionTime(t *testing.T) {
	r := New()

	a, err := r.Define("A", domain.In("x", "T"))
	require.NoError(t, err)
	b, err := r.Define("B", domain.In("y", "T"))
	require.NoError(t, err)

	require.NoError(t, r.Extend(a, b, domain.PortMapping{"y": "x"}))

	// Closing the loop must fail on the second call, not on a later query.
	err = r.Extend(b, a, domain.PortMapping{"x": "y"})
	assert.ErrorIs(t, err, domain.ErrCyclicRefinement)

	// Self-edges are cycles too.
	err = r.Extend(a, a, domain.PortMapping{"x": "x"})
	assert.ErrorIs(t, err, domain.ErrCyclicRefinement)
}

func TestFulfills_CacheInvalidatedOnEdgeInsert(t *testing.T) {
	r := New()

	base, err := r.Define("Base", domain.In("cmd", "T"))
	require.NoError(t, err)
	mid, err := r.Define("Mid", domain.In("cmd", "T"))
	require.NoError(t, err)
	top, err := r.Define("Top", domain.In("cmd", "T"))
	require.NoError(t, err)

	require.NoError(t, r.Extend(top, mid, domain.PortMapping{"cmd": "cmd"}))

	// Materialize Top's closure, then grow the graph underneath it.
	assert.True(t, r.Fulfills(top, mid))
	assert.False(t, r.Fulfills(top, base))

	require.NoError(t, r.Extend(mid, base, domain.PortMapping{"cmd": "cmd"}))

	// The dependent closure must have been invalidated.
	assert.True(t, r.Fulfills(top, base))
}

func TestFreeze_RejectsMutation(t *testing.T) {
	r := New()

	a, err := r.Define("A", domain.In("x", "T"))
	require.NoError(t, err)
	b, err := r.Define("B", domain.In("y", "T"))
	require.NoError(t, err)

	r.Freeze()

	_, err = r.Define("C")
	assert.ErrorIs(t, err, domain.ErrFrozen)
	err = r.Extend(a, b, domain.PortMapping{"y": "x"})
	assert.ErrorIs(t, err, domain.ErrFrozen)

	// Queries keep working.
	assert.True(t, r.Fulfills(a, a))
}
