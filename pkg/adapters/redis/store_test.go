package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/arrangement"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ArrangementStore = (*redis.Store)(nil)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	ports.RunArrangementStoreContract(t, store, func(suffix string) string {
		return suffix
	})
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", []string{"A"}))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"short-lived"}, names)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrMissingManifest)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

// refuseSRem fails every SREM sent outside a pipeline.
type refuseSRem struct{}

func (refuseSRem) DialHook(next backend.DialHook) backend.DialHook { return next }

func (refuseSRem) ProcessHook(next backend.ProcessHook) backend.ProcessHook {
	return func(ctx context.Context, cmd backend.Cmder) error {
		if cmd.Name() == "srem" {
			return errors.New("srem refused")
		}
		return next(ctx, cmd)
	}
}

func (refuseSRem) ProcessPipelineHook(next backend.ProcessPipelineHook) backend.ProcessPipelineHook {
	return next
}

func TestRedisStore_ListPruneError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	client.AddHook(refuseSRem{})
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", []string{"A"}))
	mr.FastForward(2 * time.Second)

	_, err := store.List(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short-lived")
	assert.Contains(t, err.Error(), "srem refused")
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "arr", []string{"A", "B"}))

	raw, err := mr.Get("test:arr")
	require.NoError(t, err)
	assert.JSONEq(t, `["A","B"]`, raw)

	_, err = store.Load(ctx, "other")
	var missing *domain.MissingManifestError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "test:other", missing.Path)
}

func TestRedisStore_InvalidName(t *testing.T) {
	store, _ := newStore(t)

	err := store.Save(context.Background(), "arr", []string{"bad\nname"})
	var invalid *arrangement.InvalidNameError
	assert.ErrorAs(t, err, &invalid)
}
