package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lattice/pkg/adapters/redis"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redis.StoreOption) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunModelStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	snap := &domain.Snapshot{Name: "robot"}
	require.NoError(t, store.Save(ctx, "robot", snap))

	_, err := store.Load(ctx, "robot")
	require.NoError(t, err)

	// miniredis advances expiry virtually.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "robot")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("other:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "robot", &domain.Snapshot{Name: "robot"}))
	assert.True(t, mr.Exists("other:robot"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"robot"}, names)
}

var _ ports.ModelStore = (*redis.Store)(nil)
